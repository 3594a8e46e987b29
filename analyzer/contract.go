package analyzer

import (
	"github.com/viant/fegraph/analyzer/depgraph"
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// ContractId identifies an interned contract declaration.
type ContractId uint32

// contractRecord holds a pointer to the originating ast.Contract rather
// than copying its Fields/Functions/Events slices, which would make the
// record incomparable and unusable as an intern.Table key.
type contractRecord struct {
	Name     string
	Module   ModuleId
	NameSpan ast.Span
	Decl     *ast.Contract
}

func (db *Database) internContract(m ModuleId, decl *ast.Contract) ContractId {
	id := db.contracts.Intern(contractRecord{
		Name: decl.Name.Kind, Module: m, NameSpan: decl.Name.Span, Decl: decl,
	})

	for i := range decl.Fields {
		f := &decl.Fields[i]
		db.contractFields.Intern(contractFieldRecord{
			Contract: id, Name: f.Name.Kind, NameSpan: f.Name.Span, Decl: f,
		})
	}
	for i := range decl.Events {
		db.internEvent(id, &decl.Events[i])
	}
	for i := range decl.Functions {
		fn := &decl.Functions[i]
		db.functions.Intern(functionRecord{
			Name: fn.Name.Kind, Module: m, Contract: &id, NameSpan: fn.Name.Span, Decl: fn,
		})
	}

	return id
}

// ContractEvents returns a contract's declared events, in interning order.
func (db *Database) ContractEvents(id ContractId) []EventId {
	var out []EventId
	for i := uint32(0); i < uint32(db.events.Len()); i++ {
		eid := EventId(i)
		if db.events.Lookup(eid).Contract == id {
			out = append(out, eid)
		}
	}
	return out
}

// ContractFunctions returns every function declared on a contract, in
// interning order.
func (db *Database) ContractFunctions(id ContractId) []FunctionId {
	var out []FunctionId
	for i := uint32(0); i < uint32(db.functions.Len()); i++ {
		fid := FunctionId(i)
		rec := db.functions.Lookup(fid)
		if rec.Contract != nil && *rec.Contract == id {
			out = append(out, fid)
		}
	}
	return out
}

// ContractModule returns the module a contract is declared in.
func (db *Database) ContractModule(id ContractId) ModuleId {
	return db.contracts.Lookup(id).Module
}

// ContractItems is a contract's own namespace: its functions and events,
// resolvable as `Contract::name`. original_source's Contract::resolve_name
// additionally falls back to the *module*'s scope for an unqualified
// lookup from inside a contract method body; that fallback is exposed
// separately as ResolveInContract, since it is a name-resolution policy
// rather than a namespace view.
func (db *Database) ContractItems(id ContractId) *ItemMap {
	return query(db, cacheKey("ContractItems", id), func() *ItemMap {
		m := NewItemMap()
		for _, fid := range db.ContractFunctions(id) {
			m.Set(db.functions.Lookup(fid).Name, ItemFunction(fid))
		}
		for _, eid := range db.ContractEvents(id) {
			m.Set(db.events.Lookup(eid).Name, ItemEvent(eid))
		}
		return m
	})
}

// ContractDiagnostics reports duplicate-name diagnostics among a
// contract's own fields, functions, and events, composed in that order,
// with each function's and each event's own diagnostics following its
// duplicate check.
func (db *Database) ContractDiagnostics(id ContractId) diag.Analysis[struct{}] {
	var diags []diag.Diagnostic
	seen := map[string]bool{}
	for _, fid := range db.ContractFields(id) {
		name := db.ContractFieldName(fid)
		if seen[name] {
			diags = append(diags, diag.Errorf("field %q declared more than once", name))
		}
		seen[name] = true
	}
	seen = map[string]bool{}
	for _, fnid := range db.ContractFunctions(id) {
		name := db.functions.Lookup(fnid).Name
		if seen[name] {
			diags = append(diags, diag.Errorf("function %q declared more than once", name))
		}
		seen[name] = true
		diags = append(diags, db.FunctionDiagnostics(fnid).Diagnostics...)
	}
	seen = map[string]bool{}
	for _, eid := range db.ContractEvents(id) {
		name := db.events.Lookup(eid).Name
		if seen[name] {
			diags = append(diags, diag.Errorf("event %q declared more than once", name))
		}
		seen[name] = true
		diags = append(diags, db.EventDiagnostics(eid).Diagnostics...)
	}
	return diag.WithDiagnostics(struct{}{}, diags)
}

// ContractFieldMap is the contract's declared fields keyed by name,
// matching spec's contract_field_map query. It is a plain Go map, so its
// iteration order is not declaration order; ContractFields lists the
// fields in declaration order. A name declared twice keeps its first
// occurrence here; ContractDiagnostics reports the collision.
func (db *Database) ContractFieldMap(id ContractId) map[string]ContractFieldId {
	out := make(map[string]ContractFieldId)
	for _, fid := range db.ContractFields(id) {
		name := db.ContractFieldName(fid)
		if _, ok := out[name]; !ok {
			out[name] = fid
		}
	}
	return out
}

// ContractEventMap is the contract's declared events keyed by name,
// matching spec's contract_event_map query.
func (db *Database) ContractEventMap(id ContractId) map[string]EventId {
	out := make(map[string]EventId)
	for _, eid := range db.ContractEvents(id) {
		name := db.events.Lookup(eid).Name
		if _, ok := out[name]; !ok {
			out[name] = eid
		}
	}
	return out
}

// ContractFunctionMap is every function declared on the contract, keyed by
// name, matching spec's contract_function_map query.
func (db *Database) ContractFunctionMap(id ContractId) map[string]FunctionId {
	out := make(map[string]FunctionId)
	for _, fid := range db.ContractFunctions(id) {
		name := db.functions.Lookup(fid).Name
		if _, ok := out[name]; !ok {
			out[name] = fid
		}
	}
	return out
}

// ContractPublicFunctionMap is the subset of ContractFunctionMap whose
// declaration is marked `pub`, matching spec's contract_public_function_map
// query — the functions reachable from outside the contract's own code.
func (db *Database) ContractPublicFunctionMap(id ContractId) map[string]FunctionId {
	out := make(map[string]FunctionId)
	for name, fid := range db.ContractFunctionMap(id) {
		if db.FunctionDecl(fid).Pub {
			out[name] = fid
		}
	}
	return out
}

// ContractInitFunction returns the contract's `__init__` function, if it
// declares one, matching spec's contract_init_function query.
func (db *Database) ContractInitFunction(id ContractId) (FunctionId, bool) {
	fid, ok := db.ContractFunctionMap(id)["__init__"]
	return fid, ok
}

// ContractCallFunction returns the contract's `__call__` function, if it
// declares one, matching spec's contract_call_function query.
func (db *Database) ContractCallFunction(id ContractId) (FunctionId, bool) {
	fid, ok := db.ContractFunctionMap(id)["__call__"]
	return fid, ok
}

// ContractName returns a contract's declared name.
func (db *Database) ContractName(id ContractId) string { return db.contracts.Lookup(id).Name }

// ContractDependencyGraph is Item(TypeDefContract).DependencyGraph's named
// form, matching spec's contract_dependency_graph query.
func (db *Database) ContractDependencyGraph(id ContractId) *depgraph.Graph[Item] {
	return db.ItemDependencyGraph(ItemType(TypeDef{Kind: TypeDefContract, Contract: id}))
}

// ContractRuntimeDependencyGraph models the imaginary dispatcher function
// that invokes every public function of the contract: the transitive
// closure of Local edges reachable from the public function set, matching
// spec's contract_runtime_dependency_graph query.
func (db *Database) ContractRuntimeDependencyGraph(id ContractId) *depgraph.Graph[Item] {
	return query(db, cacheKey("ContractRuntimeDependencyGraph", id), func() *depgraph.Graph[Item] {
		g := depgraph.New[Item]()
		contractItem := ItemType(TypeDef{Kind: TypeDefContract, Contract: id})
		g.AddNode(contractItem)
		for _, fid := range db.ContractFunctions(id) {
			if !db.FunctionDecl(fid).Pub {
				continue
			}
			fnItem := ItemFunction(fid)
			g.AddEdge(contractItem, fnItem, depgraph.Local)
			fg := db.ItemDependencyGraph(fnItem)
			depgraph.WalkLocal(fg, fnItem, func(n Item) {
				for _, e := range fg.Successors(n) {
					if e.Locality == depgraph.Local {
						g.AddEdge(n, e.To, depgraph.Local)
					}
				}
			})
		}
		return g
	})
}

// ResolveInContract implements original_source's Contract::resolve_name
// precedence: a non-self function on the contract first, then an event,
// then fall back to the enclosing module's scope.
func (db *Database) ResolveInContract(id ContractId, name string) (Item, bool) {
	if fid, ok := db.ContractFunctionMap(id)[name]; ok && !db.FunctionIsSelfTaking(fid) {
		return ItemFunction(fid), true
	}
	if eid, ok := db.ContractEventMap(id)[name]; ok {
		return ItemEvent(eid), true
	}
	return db.ResolveName(db.contracts.Lookup(id).Module, name)
}
