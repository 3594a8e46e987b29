package analyzer

import (
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/builtins"
	"github.com/viant/fegraph/analyzer/depgraph"
	"github.com/viant/fegraph/diag"
)

// Kind discriminates the variants of Item.
type Kind int

const (
	KindIngot Kind = iota
	KindModule
	KindType
	KindGenericType
	KindEvent
	KindFunction
	KindConstant
	KindBuiltinFunction
	KindIntrinsic
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindIngot:
		return "ingot"
	case KindModule:
		return "module"
	case KindType:
		return "type"
	case KindGenericType:
		return "generic type"
	case KindEvent:
		return "event"
	case KindFunction:
		return "function"
	case KindConstant:
		return "constant"
	case KindBuiltinFunction:
		return "builtin function"
	case KindIntrinsic:
		return "intrinsic"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// TypeDefKind discriminates the variants of TypeDef.
type TypeDefKind int

const (
	TypeDefAlias TypeDefKind = iota
	TypeDefStruct
	TypeDefContract
	TypeDefPrimitive
)

// TypeDef is every kind of thing a name can resolve to as a *type*: a user
// type alias, a user struct, a user contract, or a builtin primitive. It is
// a plain comparable struct (not an interface) so it can be embedded in
// Item and used as a map key, per the spec's requirement that items stay
// copyable and hashable.
type TypeDef struct {
	Kind      TypeDefKind
	Alias     TypeAliasId
	Struct    StructId
	Contract  ContractId
	Primitive builtins.Base
}

// Name returns the type's declared or builtin name.
func (t TypeDef) Name(db *Database) string {
	switch t.Kind {
	case TypeDefAlias:
		return db.typeAliases.Lookup(t.Alias).Name
	case TypeDefStruct:
		return db.structs.Lookup(t.Struct).Name
	case TypeDefContract:
		return db.contracts.Lookup(t.Contract).Name
	case TypeDefPrimitive:
		return t.Primitive.Name()
	default:
		return ""
	}
}

// Item is every kind of thing a name can resolve to in a scope: an ingot,
// a module, a type, a generic type constructor, an event, a function, a
// module-level constant, or one of the fixed builtin kinds (function,
// intrinsic, object). Like TypeDef, it is a plain comparable struct, never
// an interface, so Item values are cheap to copy and valid map keys —
// the ordered mapping the rest of this package builds (ItemMap) depends on
// that.
type Item struct {
	kind Kind

	ingot     IngotId
	module    ModuleId
	typ       TypeDef
	generic   builtins.GenericType
	event     EventId
	function  FunctionId
	constant  ModuleConstantId
	builtinFn builtins.GlobalFunction
	intrinsic builtins.Intrinsic
	object    builtins.GlobalObject
}

func ItemIngot(id IngotId) Item          { return Item{kind: KindIngot, ingot: id} }
func ItemModule(id ModuleId) Item        { return Item{kind: KindModule, module: id} }
func ItemType(t TypeDef) Item            { return Item{kind: KindType, typ: t} }
func ItemGenericType(g builtins.GenericType) Item {
	return Item{kind: KindGenericType, generic: g}
}
func ItemEvent(id EventId) Item       { return Item{kind: KindEvent, event: id} }
func ItemFunction(id FunctionId) Item { return Item{kind: KindFunction, function: id} }
func ItemConstant(id ModuleConstantId) Item {
	return Item{kind: KindConstant, constant: id}
}
func ItemBuiltinFunction(f builtins.GlobalFunction) Item {
	return Item{kind: KindBuiltinFunction, builtinFn: f}
}
func ItemIntrinsic(i builtins.Intrinsic) Item { return Item{kind: KindIntrinsic, intrinsic: i} }
func ItemObject(o builtins.GlobalObject) Item { return Item{kind: KindObject, object: o} }

// Kind reports which variant an Item holds.
func (it Item) Kind() Kind { return it.kind }

// AsIngot returns the backing IngotId and whether it holds one.
func (it Item) AsIngot() (IngotId, bool) {
	if it.kind != KindIngot {
		return 0, false
	}
	return it.ingot, true
}

// AsModule returns the backing ModuleId and whether it holds one.
func (it Item) AsModule() (ModuleId, bool) {
	if it.kind != KindModule {
		return 0, false
	}
	return it.module, true
}

// AsType returns the backing TypeDef and whether it holds one.
func (it Item) AsType() (TypeDef, bool) {
	if it.kind != KindType {
		return TypeDef{}, false
	}
	return it.typ, true
}

// AsFunction returns the backing FunctionId and whether it holds one.
func (it Item) AsFunction() (FunctionId, bool) {
	if it.kind != KindFunction {
		return 0, false
	}
	return it.function, true
}

// AsContract returns the contract TypeDef wraps, if Item is a type whose
// TypeDefKind is TypeDefContract. This mirrors the original's Class
// grouping: contracts are the one type variant that also behaves like a
// function-method scope (see Class in struct_.go).
func (it Item) AsContract() (ContractId, bool) {
	if it.kind != KindType || it.typ.Kind != TypeDefContract {
		return 0, false
	}
	return it.typ.Contract, true
}

// IsBuiltin reports whether the item is one of the fixed prelude kinds
// rather than something declared in user source.
func (it Item) IsBuiltin() bool {
	switch it.kind {
	case KindGenericType, KindBuiltinFunction, KindIntrinsic, KindObject:
		return true
	case KindType:
		return it.typ.Kind == TypeDefPrimitive
	default:
		return false
	}
}

// Name returns the item's display name.
func (it Item) Name(db *Database) string {
	switch it.kind {
	case KindIngot:
		return db.ingots.Lookup(it.ingot).Name
	case KindModule:
		return db.modules.Lookup(it.module).Name
	case KindType:
		return it.typ.Name(db)
	case KindGenericType:
		return it.generic.String()
	case KindEvent:
		return db.events.Lookup(it.event).Name
	case KindFunction:
		return db.functions.Lookup(it.function).Name
	case KindConstant:
		return db.moduleConstants.Lookup(it.constant).Name
	case KindBuiltinFunction:
		return it.builtinFn.String()
	case KindIntrinsic:
		return it.intrinsic.String()
	case KindObject:
		return it.object.String()
	default:
		return ""
	}
}

// Parent returns the item that lexically contains this one, if any. Ingots
// and builtins have no parent.
func (it Item) Parent(db *Database) (Item, bool) {
	switch it.kind {
	case KindModule:
		rec := db.modules.Lookup(it.module)
		if rec.Parent != nil {
			return ItemModule(*rec.Parent), true
		}
		return ItemIngot(rec.Ingot), true
	case KindType:
		switch it.typ.Kind {
		case TypeDefAlias:
			return ItemModule(db.typeAliases.Lookup(it.typ.Alias).Module), true
		case TypeDefStruct:
			return ItemModule(db.structs.Lookup(it.typ.Struct).Module), true
		case TypeDefContract:
			return ItemModule(db.contracts.Lookup(it.typ.Contract).Module), true
		}
	case KindEvent:
		return ItemType(TypeDef{Kind: TypeDefContract, Contract: db.events.Lookup(it.event).Contract}), true
	case KindFunction:
		rec := db.functions.Lookup(it.function)
		if rec.Contract != nil {
			return ItemType(TypeDef{Kind: TypeDefContract, Contract: *rec.Contract}), true
		}
		if rec.Struct != nil {
			return ItemType(TypeDef{Kind: TypeDefStruct, Struct: *rec.Struct}), true
		}
		return ItemModule(rec.Module), true
	case KindConstant:
		return ItemModule(db.moduleConstants.Lookup(it.constant).Module), true
	}
	return Item{}, false
}

// Items returns the item's own namespace — the names reachable as
// `item::name` — as an ordered map. A contract exposes its functions and
// events (ContractItems) and a struct its functions (StructItems); aliases,
// primitives, events, functions, constants and builtins return an empty
// map, per Open Question resolution #1 in DESIGN.md.
func (it Item) Items(db *Database) *ItemMap {
	switch it.kind {
	case KindIngot:
		return db.IngotRootItems(it.ingot)
	case KindModule:
		return db.ModuleAllItems(it.module)
	case KindType:
		switch it.typ.Kind {
		case TypeDefContract:
			return db.ContractItems(it.typ.Contract)
		case TypeDefStruct:
			return db.StructItems(it.typ.Struct)
		}
	}
	return NewItemMap()
}

// SinkDiagnostics pushes every diagnostic produced while resolving this
// item's own declaration (not its descendants) to sink, in the composition
// order of that kind's own *Diagnostics query (ContractDiagnostics,
// StructDiagnostics, ...).
func (it Item) SinkDiagnostics(db *Database, sink diag.Sink) {
	switch it.kind {
	case KindModule:
		db.ModuleDiagnostics(it.module).SinkDiagnostics(sink)
	case KindType:
		switch it.typ.Kind {
		case TypeDefContract:
			db.ContractDiagnostics(it.typ.Contract).SinkDiagnostics(sink)
		case TypeDefStruct:
			db.StructDiagnostics(it.typ.Struct).SinkDiagnostics(sink)
		case TypeDefAlias:
			db.TypeAliasDiagnostics(it.typ.Alias).SinkDiagnostics(sink)
		}
	case KindFunction:
		db.FunctionDiagnostics(it.function).SinkDiagnostics(sink)
	case KindEvent:
		db.EventDiagnostics(it.event).SinkDiagnostics(sink)
	case KindConstant:
		db.ModuleConstantDiagnostics(it.constant).SinkDiagnostics(sink)
	}
}

// DependencyGraph returns the per-item dependency graph rooted at it, per
// spec §4.F.
func (it Item) DependencyGraph(db *Database) *depgraph.Graph[Item] {
	return db.ItemDependencyGraph(it)
}

// NameSpan locates the item's name in source, for diagnostics that want to
// point precisely at a declaration instead of just naming it — addLayer
// (module.go) uses this to anchor a prelude/declaration collision at the
// colliding name's own span rather than only describing it in prose. Types,
// functions, events, and constants all carry a name span; everything else
// (modules, ingots, prelude/builtin entries) returns nil.
func (it Item) NameSpan(db *Database) *ast.Span {
	switch it.kind {
	case KindFunction:
		s := db.functions.Lookup(it.function).NameSpan
		return &s
	case KindEvent:
		s := db.events.Lookup(it.event).NameSpan
		return &s
	case KindConstant:
		s := db.moduleConstants.Lookup(it.constant).NameSpan
		return &s
	case KindType:
		switch it.typ.Kind {
		case TypeDefAlias:
			s := db.typeAliases.Lookup(it.typ.Alias).NameSpan
			return &s
		case TypeDefStruct:
			s := db.structs.Lookup(it.typ.Struct).NameSpan
			return &s
		case TypeDefContract:
			s := db.contracts.Lookup(it.typ.Contract).NameSpan
			return &s
		}
	}
	return nil
}

// ItemMap is an insertion-order-preserving name -> Item mapping. The spec
// calls this out as load-bearing ("ordered mapping is required, not a hash
// map"): Go's native map type has randomized iteration order, so every
// namespace the query engine produces (module scopes, contract/struct
// members, ingot roots) is built on ItemMap instead.
type ItemMap struct {
	keys   []string
	values map[string]Item
}

// NewItemMap returns an empty ordered map.
func NewItemMap() *ItemMap {
	return &ItemMap{values: make(map[string]Item)}
}

// Set inserts name -> item, or overwrites the existing value for name
// without changing its position if name is already present.
func (m *ItemMap) Set(name string, item Item) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = item
}

// Get looks up name.
func (m *ItemMap) Get(name string) (Item, bool) {
	it, ok := m.values[name]
	return it, ok
}

// Len reports how many entries the map holds.
func (m *ItemMap) Len() int { return len(m.keys) }

// Keys returns every name in insertion order.
func (m *ItemMap) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Range calls fn for every entry in insertion order, stopping early if fn
// returns false.
func (m *ItemMap) Range(fn func(name string, item Item) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Merge copies every entry of other into m in other's order, for names not
// already present in m. Existing entries in m win silently; scope layers
// that must diagnose collisions are combined with Database.addLayer
// instead.
func (m *ItemMap) Merge(other *ItemMap) {
	other.Range(func(name string, item Item) bool {
		if _, ok := m.values[name]; !ok {
			m.Set(name, item)
		}
		return true
	})
}
