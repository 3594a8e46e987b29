package analyzer

import (
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// EventId identifies an interned event declaration.
type EventId uint32

type eventRecord struct {
	Name     string
	Contract ContractId
	NameSpan ast.Span
	Decl     *ast.Event
}

func (db *Database) internEvent(contract ContractId, decl *ast.Event) EventId {
	return db.events.Intern(eventRecord{
		Name: decl.Name.Kind, Contract: contract, NameSpan: decl.Name.Span, Decl: decl,
	})
}

// EventDecl returns the parsed declaration backing an event.
func (db *Database) EventDecl(id EventId) *ast.Event {
	return db.events.Lookup(id).Decl
}

// EventContract returns the contract an event is declared on.
func (db *Database) EventContract(id EventId) ContractId {
	return db.events.Lookup(id).Contract
}

// EventDiagnostics reports diagnostics from an event's own declaration:
// duplicate field names among its parameters.
func (db *Database) EventDiagnostics(id EventId) diag.Analysis[struct{}] {
	var diags []diag.Diagnostic
	seen := map[string]bool{}
	for _, f := range db.EventDecl(id).Fields {
		if seen[f.Name.Kind] {
			diags = append(diags, diag.At(f.Name.Span, "field declared more than once", f.Name.Kind))
		}
		seen[f.Name.Kind] = true
	}
	return diag.WithDiagnostics(struct{}{}, diags)
}
