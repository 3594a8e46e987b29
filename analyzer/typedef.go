package analyzer

import (
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// TypeAliasId identifies an interned type alias declaration.
type TypeAliasId uint32

// typeAliasRecord holds a pointer to the originating ast.TypeAlias rather
// than copying its Type (an ast.TypeNode, which carries a slice of type
// arguments and so is not comparable).
type typeAliasRecord struct {
	Name     string
	Module   ModuleId
	NameSpan ast.Span
	Decl     *ast.TypeAlias
}

// AliasedType returns the type expression a `type` alias stands for.
func (db *Database) AliasedType(id TypeAliasId) ast.TypeNode {
	return db.typeAliases.Lookup(id).Decl.Type
}

// TypeAliasModule returns the module a type alias is declared in.
func (db *Database) TypeAliasModule(id TypeAliasId) ModuleId {
	return db.typeAliases.Lookup(id).Module
}

// TypeAliasDiagnostics reports diagnostics from resolving a single type
// alias declaration. Aliases have no inner namespace and no nested
// declarations, so this is always empty; it exists as its own query so
// Item.SinkDiagnostics has one call per kind regardless of whether that
// kind ever produces anything.
func (db *Database) TypeAliasDiagnostics(id TypeAliasId) diag.Analysis[struct{}] {
	return diag.Ok(struct{}{})
}
