package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "error", diag.Error.String())
	assert.Equal(t, "warning", diag.Warning.String())
}

func TestErrorf_FormatsMessageWithNoSpan(t *testing.T) {
	d := diag.Errorf("unresolved name %q", "foo")
	assert.Equal(t, diag.Error, d.Severity)
	assert.Equal(t, `unresolved name "foo"`, d.Message)
	assert.Nil(t, d.Span)
}

func TestAt_AnchorsDiagnosticToSpan(t *testing.T) {
	span := ast.Span{Start: 3, End: 7}
	d := diag.At(span, "name already declared in this scope", "address")

	assert.Equal(t, diag.Error, d.Severity)
	assert.Equal(t, "name already declared in this scope", d.Message)
	assert.Equal(t, "address", d.Label)
	require.NotNil(t, d.Span)
	assert.Equal(t, span, *d.Span)
}

func TestSeverityf_UsesGivenSeverity(t *testing.T) {
	d := diag.Severityf(diag.Warning, "name %q already declared in this scope", "address")
	assert.Equal(t, diag.Warning, d.Severity)
	assert.Equal(t, `name "address" already declared in this scope`, d.Message)
	assert.Nil(t, d.Span)
}

func TestAtSeverity_UsesGivenSeverity(t *testing.T) {
	span := ast.Span{Start: 3, End: 7}
	d := diag.AtSeverity(diag.Warning, span, "name already declared in this scope", "address")

	assert.Equal(t, diag.Warning, d.Severity)
	require.NotNil(t, d.Span)
	assert.Equal(t, span, *d.Span)
}

func TestList_PushAndPushAllPreserveOrder(t *testing.T) {
	var sink diag.List
	sink.Push(diag.Errorf("first"))
	sink.PushAll([]diag.Diagnostic{diag.Errorf("second"), diag.Errorf("third")})

	require.Len(t, sink, 3)
	assert.Equal(t, "first", sink[0].Message)
	assert.Equal(t, "second", sink[1].Message)
	assert.Equal(t, "third", sink[2].Message)
}

func TestAnalysis_OkHasNoDiagnostics(t *testing.T) {
	a := diag.Ok(42)
	assert.Equal(t, 42, a.Value)
	assert.Empty(t, a.Diagnostics)
}

func TestAnalysis_WithDiagnosticsKeepsPartialValue(t *testing.T) {
	ds := []diag.Diagnostic{diag.Errorf("boom")}
	a := diag.WithDiagnostics("partial", ds)

	assert.Equal(t, "partial", a.Value, "best-effort value must survive alongside diagnostics")
	assert.Equal(t, ds, a.Diagnostics)
}

func TestAnalysis_SinkDiagnosticsForwardsToSink(t *testing.T) {
	a := diag.WithDiagnostics(0, []diag.Diagnostic{diag.Errorf("a"), diag.Errorf("b")})

	var sink diag.List
	a.SinkDiagnostics(&sink)
	assert.Len(t, sink, 2)
}
