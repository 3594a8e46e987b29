package analyzer

import (
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// FunctionId identifies an interned function declaration, whether
// module-level, a contract method, or a struct method.
type FunctionId uint32

type functionRecord struct {
	Name     string
	Module   ModuleId
	Contract *ContractId
	Struct   *StructId
	NameSpan ast.Span
	Decl     *ast.Function
}

// FunctionModule returns the module a function's declaration lives in,
// regardless of whether it is a free function or a method.
func (db *Database) FunctionModule(id FunctionId) ModuleId {
	return db.functions.Lookup(id).Module
}

// FunctionOwner returns the contract or struct a function is a method of,
// if any. A module-level free function has no owner.
func (db *Database) FunctionOwner(id FunctionId) (Class, bool) {
	rec := db.functions.Lookup(id)
	if rec.Contract != nil {
		return Class{Contract: rec.Contract}, true
	}
	if rec.Struct != nil {
		return Class{Struct: rec.Struct}, true
	}
	return Class{}, false
}

// FunctionDecl returns the parsed declaration backing a function.
func (db *Database) FunctionDecl(id FunctionId) *ast.Function {
	return db.functions.Lookup(id).Decl
}

// FunctionIsSelfTaking reports whether the function's first parameter is
// `self`, which original_source's Contract::resolve_name treats as
// disqualifying it from unqualified-call resolution within the same
// contract (a self-taking method must be called through a receiver).
func (db *Database) FunctionIsSelfTaking(id FunctionId) bool {
	decl := db.FunctionDecl(id)
	return len(decl.Params) > 0 && decl.Params[0].Self
}

// FunctionDiagnostics reports diagnostics from a function's own
// declaration: currently just duplicate parameter names, since parameter
// and body type checking are out of this core's scope.
func (db *Database) FunctionDiagnostics(id FunctionId) diag.Analysis[struct{}] {
	var diags []diag.Diagnostic
	seen := map[string]bool{}
	for _, p := range db.FunctionDecl(id).Params {
		if p.Self {
			continue
		}
		if seen[p.Name.Kind] {
			diags = append(diags, diag.At(p.Name.Span, "parameter declared more than once", p.Name.Kind))
		}
		seen[p.Name.Kind] = true
	}
	return diag.WithDiagnostics(struct{}{}, diags)
}
