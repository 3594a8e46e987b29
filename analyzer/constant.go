package analyzer

import (
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// ModuleConstantId identifies an interned module-level constant
// declaration.
type ModuleConstantId uint32

type moduleConstantRecord struct {
	Name     string
	Module   ModuleId
	NameSpan ast.Span
	Decl     *ast.ConstantDecl
}

// ConstantDecl returns the parsed declaration backing a module constant.
func (db *Database) ConstantDecl(id ModuleConstantId) *ast.ConstantDecl {
	return db.moduleConstants.Lookup(id).Decl
}

// ConstantModule returns the module a constant is declared in.
func (db *Database) ConstantModule(id ModuleConstantId) ModuleId {
	return db.moduleConstants.Lookup(id).Module
}

// EvaluateConstant runs the injected ConstantEvaluator over a constant's
// value expression. This core never computes the value itself; it only
// knows which declaration a name resolved to.
func (db *Database) EvaluateConstant(id ModuleConstantId) diag.Analysis[any] {
	return query(db, cacheKey("EvaluateConstant", id), func() diag.Analysis[any] {
		if db.constEval == nil {
			return diag.WithDiagnostics[any](nil, []diag.Diagnostic{
				diag.Errorf("constant %s: no constant evaluator configured", db.ConstantDecl(id).Name.Kind),
			})
		}
		return db.constEval.EvaluateConstant(db.ConstantDecl(id))
	})
}

// ModuleConstantDiagnostics reports diagnostics from a constant's own
// declaration. Value-expression diagnostics belong to the injected
// ConstantEvaluator and surface through EvaluateConstant, not here.
func (db *Database) ModuleConstantDiagnostics(id ModuleConstantId) diag.Analysis[struct{}] {
	return diag.Ok(struct{}{})
}
