package analyzer

import "github.com/viant/fegraph/ast"

// ContractFieldId identifies an interned contract field.
type ContractFieldId uint32

// StructFieldId identifies an interned struct field.
type StructFieldId uint32

// contractFieldRecord and structFieldRecord hold a pointer to the
// originating ast.Field rather than a copy of it: ast.Field's Type is an
// ast.TypeNode, which carries a slice (Args), so a value copy would not be
// comparable and could not back an intern.Table[K comparable]. Decl gives
// cheap, stable identity instead (see DESIGN.md's AST-identity
// resolution).
type contractFieldRecord struct {
	Contract ContractId
	Name     string
	NameSpan ast.Span
	Decl     *ast.Field
}

type structFieldRecord struct {
	Struct   StructId
	Name     string
	NameSpan ast.Span
	Decl     *ast.Field
}

// ContractFieldName, ContractFieldType and ContractFieldPublic read a
// contract field's attributes.
func (db *Database) ContractFieldName(id ContractFieldId) string {
	return db.contractFields.Lookup(id).Name
}
func (db *Database) ContractFieldType(id ContractFieldId) ast.TypeNode {
	return db.contractFields.Lookup(id).Decl.Type
}
func (db *Database) ContractFieldPublic(id ContractFieldId) bool {
	return db.contractFields.Lookup(id).Decl.Public
}

// StructFieldName, StructFieldType and StructFieldPublic read a struct
// field's attributes.
func (db *Database) StructFieldName(id StructFieldId) string {
	return db.structFields.Lookup(id).Name
}
func (db *Database) StructFieldType(id StructFieldId) ast.TypeNode {
	return db.structFields.Lookup(id).Decl.Type
}
func (db *Database) StructFieldPublic(id StructFieldId) bool {
	return db.structFields.Lookup(id).Decl.Public
}

// ContractFields returns a contract's declared fields, in interning order.
func (db *Database) ContractFields(id ContractId) []ContractFieldId {
	var out []ContractFieldId
	for i := uint32(0); i < uint32(db.contractFields.Len()); i++ {
		fid := ContractFieldId(i)
		if db.contractFields.Lookup(fid).Contract == id {
			out = append(out, fid)
		}
	}
	return out
}

// StructFields returns a struct's declared fields, in interning order.
func (db *Database) StructFields(id StructId) []StructFieldId {
	var out []StructFieldId
	for i := uint32(0); i < uint32(db.structFields.Len()); i++ {
		fid := StructFieldId(i)
		if db.structFields.Lookup(fid).Struct == id {
			out = append(out, fid)
		}
	}
	return out
}
