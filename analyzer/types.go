package analyzer

import (
	"github.com/viant/fegraph/analyzer/depgraph"
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// resolveTypeNode resolves a type reference's head path against m's scope,
// the way every "*_type" query in spec §4.B does: `u256` resolves to the
// primitive Item, `a::b::T` resolves to whatever Item T names in module b,
// `Array<u256, 10>` resolves its head to the Array generic-type-constructor
// Item (its Args are left for a future lowering pass to instantiate against
// — this core only needs to know *which* names a type references for
// dependency-graph construction, per §4.F, not to fully elaborate generic
// instantiations). A path resolving to anything other than a type or a
// generic-type constructor is a type error (§7.4).
func (db *Database) resolveTypeNode(m ModuleId, t ast.TypeNode) diag.Analysis[Item] {
	if len(t.Path.Segments) == 0 {
		return diag.WithDiagnostics(Item{}, []diag.Diagnostic{diag.Errorf("empty type reference")})
	}
	resolved := db.ResolvePathFrom(m, t.Path)
	if len(resolved.Diagnostics) > 0 {
		return resolved
	}
	switch resolved.Value.Kind() {
	case KindType, KindGenericType:
		return resolved
	default:
		return diag.WithDiagnostics(Item{}, []diag.Diagnostic{
			diag.Errorf("%q does not name a type", resolved.Value.Name(db)),
		})
	}
}

// ContractFieldResolvedType resolves a contract field's declared type
// against the contract's enclosing module, matching spec's
// contract_field_type query.
func (db *Database) ContractFieldResolvedType(id ContractFieldId) diag.Analysis[Item] {
	return query(db, cacheKey("ContractFieldResolvedType", id), func() diag.Analysis[Item] {
		rec := db.contractFields.Lookup(id)
		m := db.ContractModule(rec.Contract)
		return db.resolveTypeNode(m, rec.Decl.Type)
	})
}

// StructFieldResolvedType resolves a struct field's declared type against
// the struct's enclosing module, matching spec's struct_field_type query.
func (db *Database) StructFieldResolvedType(id StructFieldId) diag.Analysis[Item] {
	return query(db, cacheKey("StructFieldResolvedType", id), func() diag.Analysis[Item] {
		rec := db.structFields.Lookup(id)
		m := db.StructModule(rec.Struct)
		return db.resolveTypeNode(m, rec.Decl.Type)
	})
}

// TypeAliasResolvedType resolves what a `type` alias stands for, matching
// spec's type_alias_type query.
func (db *Database) TypeAliasResolvedType(id TypeAliasId) diag.Analysis[Item] {
	return query(db, cacheKey("TypeAliasResolvedType", id), func() diag.Analysis[Item] {
		return db.resolveTypeNode(db.TypeAliasModule(id), db.AliasedType(id))
	})
}

// EventFieldTypes resolves every field type an event declares, in
// declaration order, matching spec's event_type query — an event has no
// single type of its own, only a tuple of typed fields.
func (db *Database) EventFieldTypes(id EventId) []diag.Analysis[Item] {
	return query(db, cacheKey("EventFieldTypes", id), func() []diag.Analysis[Item] {
		m := db.ContractModule(db.EventContract(id))
		decl := db.EventDecl(id)
		out := make([]diag.Analysis[Item], len(decl.Fields))
		for i, f := range decl.Fields {
			out[i] = db.resolveTypeNode(m, f.Type)
		}
		return out
	})
}

// ModuleConstantType resolves a module constant's declared type, matching
// spec's module_constant_type query. Evaluating its *value* is a separate
// query (EvaluateConstant), delegated to the injected ConstantEvaluator.
func (db *Database) ModuleConstantType(id ModuleConstantId) diag.Analysis[Item] {
	return query(db, cacheKey("ModuleConstantType", id), func() diag.Analysis[Item] {
		return db.resolveTypeNode(db.ConstantModule(id), db.ConstantDecl(id).Type)
	})
}

// FunctionSignature is a function's parameter and return types, each
// resolved against the function's enclosing module, matching spec's
// function_signature query.
type FunctionSignature struct {
	SelfTaking bool
	Params     []ParamType
	Return     *diag.Analysis[Item]
}

// ParamType is one resolved, named function parameter.
type ParamType struct {
	Name string
	Type diag.Analysis[Item]
}

// FunctionSignature resolves id's parameter and return types.
func (db *Database) FunctionSignature(id FunctionId) FunctionSignature {
	return query(db, cacheKey("FunctionSignature", id), func() FunctionSignature {
		decl := db.FunctionDecl(id)
		m := db.FunctionModule(id)
		sig := FunctionSignature{SelfTaking: db.FunctionIsSelfTaking(id)}
		for _, p := range decl.Params {
			if p.Self {
				continue
			}
			sig.Params = append(sig.Params, ParamType{
				Name: p.Name.Kind,
				Type: db.resolveTypeNode(m, p.Type),
			})
		}
		if decl.Return != nil {
			r := db.resolveTypeNode(m, *decl.Return)
			sig.Return = &r
		}
		return sig
	})
}

// FunctionBody returns the function's parsed statement body, matching
// spec's function_body query. Statement-level type checking is out of
// this core's scope (§1); this exists so dependency-graph construction and
// downstream passes have somewhere to read the body from by ID rather than
// threading the AST pointer around.
func (db *Database) FunctionBody(id FunctionId) []ast.Stmt {
	return db.FunctionDecl(id).Body
}

// FunctionName returns a function's declared name.
func (db *Database) FunctionName(id FunctionId) string { return db.functions.Lookup(id).Name }

// FunctionDependencyGraph is Item(Function).DependencyGraph's named form,
// matching spec's function_dependency_graph query.
func (db *Database) FunctionDependencyGraph(id FunctionId) *depgraph.Graph[Item] {
	return db.ItemDependencyGraph(ItemFunction(id))
}
