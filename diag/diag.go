// Package diag defines the diagnostic accumulation contract every query in
// this core uses instead of throwing: problems are collected, never
// raised, and every query returns a best-effort value alongside them.
package diag

import (
	"fmt"

	"github.com/viant/fegraph/ast"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single surfaced problem, optionally anchored to a source
// span.
type Diagnostic struct {
	Severity Severity
	Message  string
	Label    string // short description of what went wrong at Span, eg "not found"
	Span     *ast.Span
}

// Errorf builds an error-severity Diagnostic with no span.
func Errorf(format string, args ...any) Diagnostic {
	return Severityf(Error, format, args...)
}

// Severityf builds a Diagnostic at the given severity with no span, for
// call sites whose severity is a configuration-dependent choice (eg
// Config.StrictPrelude) rather than always Error.
func Severityf(sev Severity, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: sev, Message: fmt.Sprintf(format, args...)}
}

// At builds an error-severity Diagnostic anchored to span, with a short
// label describing the problem (mirrors the original compiler's
// "message / label at span" shape, eg "unresolved path item / not found").
func At(span ast.Span, message, label string) Diagnostic {
	return AtSeverity(Error, span, message, label)
}

// AtSeverity is At with an explicit severity, for call sites whose severity
// is a configuration-dependent choice rather than always Error.
func AtSeverity(sev Severity, span ast.Span, message, label string) Diagnostic {
	s := span
	return Diagnostic{Severity: sev, Message: message, Label: label, Span: &s}
}

// Sink accumulates diagnostics from many sources. The default accumulator
// (List) preserves insertion order across every query that pushes into it,
// matching the spec's ordering guarantee for the flattened output stream.
type Sink interface {
	Push(d Diagnostic)
	PushAll(ds []Diagnostic)
}

// List is the default, order-preserving Sink implementation.
type List []Diagnostic

func (l *List) Push(d Diagnostic) {
	*l = append(*l, d)
}

func (l *List) PushAll(ds []Diagnostic) {
	*l = append(*l, ds...)
}

// Analysis pairs a query's best-effort result with whatever diagnostics
// were produced computing it. Callers may use Value even when Diagnostics
// is non-empty; this is the "partial progress" contract every memoized
// query in this core honors.
type Analysis[T any] struct {
	Value       T
	Diagnostics []Diagnostic
}

// SinkDiagnostics pushes a's diagnostics into sink.
func (a Analysis[T]) SinkDiagnostics(sink Sink) {
	sink.PushAll(a.Diagnostics)
}

// Ok wraps a value with no diagnostics.
func Ok[T any](v T) Analysis[T] {
	return Analysis[T]{Value: v}
}

// WithDiagnostics wraps a value with the given diagnostics.
func WithDiagnostics[T any](v T, ds []Diagnostic) Analysis[T] {
	return Analysis[T]{Value: v, Diagnostics: ds}
}
