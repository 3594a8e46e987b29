package analyzer

import (
	"github.com/viant/fegraph/analyzer/depgraph"
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// StructId identifies an interned struct declaration.
type StructId uint32

type structRecord struct {
	Name     string
	Module   ModuleId
	NameSpan ast.Span
	Decl     *ast.Struct
}

func (db *Database) internStruct(m ModuleId, decl *ast.Struct) StructId {
	id := db.structs.Intern(structRecord{
		Name: decl.Name.Kind, Module: m, NameSpan: decl.Name.Span, Decl: decl,
	})

	for i := range decl.Fields {
		f := &decl.Fields[i]
		db.structFields.Intern(structFieldRecord{
			Struct: id, Name: f.Name.Kind, NameSpan: f.Name.Span, Decl: f,
		})
	}
	for i := range decl.Functions {
		fn := &decl.Functions[i]
		db.functions.Intern(functionRecord{
			Name: fn.Name.Kind, Module: m, Struct: &id, NameSpan: fn.Name.Span, Decl: fn,
		})
	}

	return id
}

// StructFunctions returns every function declared on a struct, in
// interning order.
func (db *Database) StructFunctions(id StructId) []FunctionId {
	var out []FunctionId
	for i := uint32(0); i < uint32(db.functions.Len()); i++ {
		fid := FunctionId(i)
		rec := db.functions.Lookup(fid)
		if rec.Struct != nil && *rec.Struct == id {
			out = append(out, fid)
		}
	}
	return out
}

// StructModule returns the module a struct is declared in.
func (db *Database) StructModule(id StructId) ModuleId {
	return db.structs.Lookup(id).Module
}

// StructItems is a struct's own namespace: its functions, resolvable as
// `Struct::name`. Fields are value members, not namespace members — they
// are reached through a value of the struct's type, not through the type
// item itself.
func (db *Database) StructItems(id StructId) *ItemMap {
	return query(db, cacheKey("StructItems", id), func() *ItemMap {
		m := NewItemMap()
		for _, fid := range db.StructFunctions(id) {
			m.Set(db.functions.Lookup(fid).Name, ItemFunction(fid))
		}
		return m
	})
}

// StructDiagnostics reports duplicate-name diagnostics among a struct's
// own fields and functions.
func (db *Database) StructDiagnostics(id StructId) diag.Analysis[struct{}] {
	var diags []diag.Diagnostic
	seen := map[string]bool{}
	for _, fid := range db.StructFields(id) {
		name := db.StructFieldName(fid)
		if seen[name] {
			diags = append(diags, diag.Errorf("field %q declared more than once", name))
		}
		seen[name] = true
	}
	seen = map[string]bool{}
	for _, fnid := range db.StructFunctions(id) {
		name := db.functions.Lookup(fnid).Name
		if seen[name] {
			diags = append(diags, diag.Errorf("function %q declared more than once", name))
		}
		seen[name] = true
		diags = append(diags, db.FunctionDiagnostics(fnid).Diagnostics...)
	}
	return diag.WithDiagnostics(struct{}{}, diags)
}

// StructFieldMap is the struct's declared fields keyed by name, matching
// spec's struct_field_map query. A name declared twice keeps its first
// occurrence; StructDiagnostics reports the collision.
func (db *Database) StructFieldMap(id StructId) map[string]StructFieldId {
	out := make(map[string]StructFieldId)
	for _, fid := range db.StructFields(id) {
		name := db.StructFieldName(fid)
		if _, ok := out[name]; !ok {
			out[name] = fid
		}
	}
	return out
}

// StructFunctionMap is every function declared on the struct, keyed by
// name, matching spec's struct_function_map query.
func (db *Database) StructFunctionMap(id StructId) map[string]FunctionId {
	out := make(map[string]FunctionId)
	for _, fid := range db.StructFunctions(id) {
		name := db.functions.Lookup(fid).Name
		if _, ok := out[name]; !ok {
			out[name] = fid
		}
	}
	return out
}

// StructName returns a struct's declared name.
func (db *Database) StructName(id StructId) string { return db.structs.Lookup(id).Name }

// StructType returns the struct wrapped as a resolved TypeDef, matching
// spec's struct_type query.
func (db *Database) StructType(id StructId) TypeDef {
	return TypeDef{Kind: TypeDefStruct, Struct: id}
}

// StructDependencyGraph is Item(TypeDefStruct).DependencyGraph's named
// form, matching spec's struct_dependency_graph query.
func (db *Database) StructDependencyGraph(id StructId) *depgraph.Graph[Item] {
	return db.ItemDependencyGraph(ItemType(db.StructType(id)))
}

// Class unifies Contract and Struct as the two type kinds that can own
// self-taking methods, mirroring original_source's Class enum. It exists
// so call sites that only care about "a type with functions" (for example
// a caller resolving `self.foo()`) don't need a type switch over TypeDef.
type Class struct {
	Contract *ContractId
	Struct   *StructId
}

// ClassOf returns the Class view of t, if t is a contract or struct.
func ClassOf(t TypeDef) (Class, bool) {
	switch t.Kind {
	case TypeDefContract:
		c := t.Contract
		return Class{Contract: &c}, true
	case TypeDefStruct:
		s := t.Struct
		return Class{Struct: &s}, true
	default:
		return Class{}, false
	}
}

// Functions returns the class's declared functions, in interning order.
func (c Class) Functions(db *Database) []FunctionId {
	if c.Contract != nil {
		return db.ContractFunctions(*c.Contract)
	}
	if c.Struct != nil {
		return db.StructFunctions(*c.Struct)
	}
	return nil
}

// Module returns the module the class's type is declared in.
func (c Class) Module(db *Database) ModuleId {
	if c.Contract != nil {
		return db.ContractModule(*c.Contract)
	}
	return db.StructModule(*c.Struct)
}
