package analyzer

import (
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/analyzer/depgraph"
)

// ItemDependencyGraph builds the per-item dependency graph rooted at root,
// per spec §4.F: every path reference in an item's own declaration (a
// function's parameter/return types and body, a constant's type and value
// expression, a struct's or contract's field types, an alias's target, an
// event's field types) becomes an edge to the Item that path resolves to,
// and each resolved item is visited the same way. The edge is labeled by
// locality: External for any contract target, otherwise Local when both
// items belong to the same ingot and External when they do not. A
// contract's graph follows its field types only; its own functions and
// events are not added as nodes. This mirrors original_source's DepGraph/DepLocality/walk_local_dependencies
// built over a petgraph DiGraphMap, here hand-rolled since no graph
// library appears anywhere in the example pack.
func (db *Database) ItemDependencyGraph(root Item) *depgraph.Graph[Item] {
	return query(db, cacheKey("ItemDependencyGraph", root), func() *depgraph.Graph[Item] {
		g := depgraph.New[Item]()
		visited := map[Item]bool{}
		var visit func(it Item)
		visit = func(it Item) {
			if visited[it] {
				return
			}
			visited[it] = true
			g.AddNode(it)
			for _, p := range db.itemRefPaths(it) {
				resolved, ok := db.resolveRefPath(it, p)
				if !ok {
					continue
				}
				loc := db.locality(it, resolved)
				g.AddEdge(it, resolved, loc)
				visit(resolved)
			}
		}
		visit(root)
		return g
	})
}

// locality reports whether to is co-compiled into the same deployed unit
// as from, per spec §4.F: a reference to another contract is always
// External — a contract is its own deployment, reachable only through its
// address/interface, even when both contracts happen to be declared in the
// same ingot or file — regardless of what "from" is.
func (db *Database) locality(from, to Item) depgraph.Locality {
	if _, ok := to.AsContract(); ok {
		return depgraph.External
	}
	fromIngot, fromOK := db.itemIngot(from)
	toIngot, toOK := db.itemIngot(to)
	if fromOK && toOK && fromIngot == toIngot {
		return depgraph.Local
	}
	return depgraph.External
}

func (db *Database) itemIngot(it Item) (IngotId, bool) {
	switch it.kind {
	case KindIngot:
		return it.ingot, true
	case KindModule:
		return db.Ingot(it.module), true
	case KindType:
		switch it.typ.Kind {
		case TypeDefAlias:
			return db.Ingot(db.TypeAliasModule(it.typ.Alias)), true
		case TypeDefStruct:
			return db.Ingot(db.StructModule(it.typ.Struct)), true
		case TypeDefContract:
			return db.Ingot(db.ContractModule(it.typ.Contract)), true
		}
	case KindFunction:
		return db.Ingot(db.FunctionModule(it.function)), true
	case KindEvent:
		return db.Ingot(db.ContractModule(db.EventContract(it.event))), true
	case KindConstant:
		return db.Ingot(db.ConstantModule(it.constant)), true
	}
	return IngotId(0), false
}

// itemRefPaths collects every path expression reachable directly from an
// item's own declaration: a function's body and parameter/return types, a
// constant's value expression, a field's type, an event's field types.
func (db *Database) itemRefPaths(it Item) []ast.Path {
	var paths []ast.Path
	collectType := func(t ast.TypeNode) {
		paths = append(paths, t.Path)
		for _, arg := range t.Args {
			paths = append(paths, arg.Path)
		}
	}
	switch it.kind {
	case KindFunction:
		decl := db.FunctionDecl(it.function)
		for _, p := range decl.Params {
			collectType(p.Type)
		}
		if decl.Return != nil {
			collectType(*decl.Return)
		}
		for _, s := range decl.Body {
			paths = append(paths, s.Refs...)
		}
	case KindConstant:
		decl := db.ConstantDecl(it.constant)
		collectType(decl.Type)
		paths = append(paths, decl.Value.Refs...)
	case KindType:
		switch it.typ.Kind {
		case TypeDefAlias:
			collectType(db.AliasedType(it.typ.Alias))
		case TypeDefStruct:
			for _, fid := range db.StructFields(it.typ.Struct) {
				collectType(db.StructFieldType(fid))
			}
		case TypeDefContract:
			for _, fid := range db.ContractFields(it.typ.Contract) {
				collectType(db.ContractFieldType(fid))
			}
		}
	case KindEvent:
		for _, f := range db.EventDecl(it.event).Fields {
			collectType(f.Type)
		}
	}
	return paths
}

// resolveRefPath resolves a path reference found inside from's own
// declaration, starting from the module from is declared in.
func (db *Database) resolveRefPath(from Item, p ast.Path) (Item, bool) {
	if len(p.Segments) == 0 {
		return Item{}, false
	}
	mod, ok := db.owningModule(from)
	if !ok {
		return Item{}, false
	}
	resolved := db.ResolvePathFrom(mod, p)
	if len(resolved.Diagnostics) > 0 {
		return Item{}, false
	}
	return resolved.Value, true
}

func (db *Database) owningModule(it Item) (ModuleId, bool) {
	switch it.kind {
	case KindModule:
		return it.module, true
	case KindFunction:
		return db.FunctionModule(it.function), true
	case KindConstant:
		return db.ConstantModule(it.constant), true
	case KindEvent:
		return db.ContractModule(db.EventContract(it.event)), true
	case KindType:
		switch it.typ.Kind {
		case TypeDefAlias:
			return db.TypeAliasModule(it.typ.Alias), true
		case TypeDefStruct:
			return db.StructModule(it.typ.Struct), true
		case TypeDefContract:
			return db.ContractModule(it.typ.Contract), true
		}
	}
	return ModuleId(0), false
}
