package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/fegraph/analyzer"
	"github.com/viant/fegraph/builtins"
)

func TestItemMap_SetPreservesInsertionOrderAndFirstPosition(t *testing.T) {
	m := analyzer.NewItemMap()
	m.Set("b", analyzer.ItemGenericType(builtins.Map))
	m.Set("a", analyzer.ItemGenericType(builtins.Array))
	m.Set("b", analyzer.ItemGenericType(builtins.Array)) // overwrite, must not move

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	assert.Equal(t, 2, m.Len())

	it, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, analyzer.ItemGenericType(builtins.Array), it, "overwrite must replace the value in place")
}

func TestItemMap_GetMissing(t *testing.T) {
	m := analyzer.NewItemMap()
	_, ok := m.Get("nope")
	assert.False(t, ok)
}

func TestItemMap_RangeVisitsInOrderAndCanStopEarly(t *testing.T) {
	m := analyzer.NewItemMap()
	m.Set("one", analyzer.ItemGenericType(builtins.Array))
	m.Set("two", analyzer.ItemGenericType(builtins.Map))
	m.Set("three", analyzer.ItemGenericType(builtins.Array))

	var seen []string
	m.Range(func(name string, _ analyzer.Item) bool {
		seen = append(seen, name)
		return name != "two"
	})
	assert.Equal(t, []string{"one", "two"}, seen, "Range must stop as soon as fn returns false")
}

func TestItemMap_MergeKeepsExistingEntriesAndAppendsNewOnes(t *testing.T) {
	base := analyzer.NewItemMap()
	base.Set("address", analyzer.ItemGenericType(builtins.Array))

	incoming := analyzer.NewItemMap()
	incoming.Set("address", analyzer.ItemGenericType(builtins.Map))
	incoming.Set("keccak256", analyzer.ItemBuiltinFunction(builtins.Keccak256))

	base.Merge(incoming)

	it, _ := base.Get("address")
	assert.Equal(t, analyzer.ItemGenericType(builtins.Array), it, "Merge must not overwrite an existing entry")
	assert.Equal(t, []string{"address", "keccak256"}, base.Keys())
}

func TestItem_KindAndAsAccessors(t *testing.T) {
	generic := analyzer.ItemGenericType(builtins.Array)
	assert.Equal(t, analyzer.KindGenericType, generic.Kind())
	assert.True(t, generic.IsBuiltin())

	_, ok := generic.AsModule()
	assert.False(t, ok, "a generic-type item must not report as a module")

	builtin := analyzer.ItemObject(builtins.Block)
	assert.True(t, builtin.IsBuiltin())
	assert.Equal(t, "block", builtin.Name(nil))
}
