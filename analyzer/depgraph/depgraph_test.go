package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/fegraph/analyzer/depgraph"
)

func TestLocality_String(t *testing.T) {
	assert.Equal(t, "local", depgraph.Local.String())
	assert.Equal(t, "external", depgraph.External.String())
}

func TestGraph_AddEdgeCreatesEndpoints(t *testing.T) {
	g := depgraph.New[string]()
	g.AddEdge("Vault", "Token", depgraph.Local)

	assert.True(t, g.HasNode("Vault"))
	assert.True(t, g.HasNode("Token"))
	loc, ok := g.Edge("Vault", "Token")
	require.True(t, ok)
	assert.Equal(t, depgraph.Local, loc)
}

func TestGraph_AddEdgeOverwritesLocality(t *testing.T) {
	g := depgraph.New[string]()
	g.AddEdge("A", "B", depgraph.Local)
	g.AddEdge("A", "B", depgraph.External)

	loc, ok := g.Edge("A", "B")
	require.True(t, ok)
	assert.Equal(t, depgraph.External, loc, "re-adding the same edge must overwrite, not duplicate")
}

func TestGraph_NodesPreserveInsertionOrder(t *testing.T) {
	g := depgraph.New[string]()
	g.AddNode("c")
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("a") // re-adding must not move it

	assert.Equal(t, []string{"c", "a", "b"}, g.Nodes())
}

func TestGraph_SuccessorsDeterministicOrder(t *testing.T) {
	g := depgraph.New[string]()
	g.AddEdge("root", "z", depgraph.Local)
	g.AddEdge("root", "a", depgraph.External)
	g.AddEdge("root", "m", depgraph.Local)

	succ := g.Successors("root")
	require.Len(t, succ, 3)
	assert.Equal(t, []depgraph.Edge[string]{
		{To: "z", Locality: depgraph.Local},
		{To: "a", Locality: depgraph.External},
		{To: "m", Locality: depgraph.Local},
	}, succ)
}

func TestGraph_Equal(t *testing.T) {
	a := depgraph.New[string]()
	a.AddEdge("A", "B", depgraph.Local)

	b := depgraph.New[string]()
	b.AddEdge("A", "B", depgraph.Local)

	assert.True(t, a.Equal(b))

	c := depgraph.New[string]()
	c.AddEdge("A", "B", depgraph.External)
	assert.False(t, a.Equal(c), "differing locality must make graphs unequal")

	d := depgraph.New[string]()
	d.AddEdge("A", "C", depgraph.Local)
	assert.False(t, a.Equal(d), "differing edge target must make graphs unequal")
}

func TestWalkLocal_StopsAtExternalEdges(t *testing.T) {
	g := depgraph.New[string]()
	g.AddEdge("main", "local_dep", depgraph.Local)
	g.AddEdge("main", "external_dep", depgraph.External)
	g.AddEdge("local_dep", "transitively_local", depgraph.Local)
	g.AddEdge("external_dep", "unreachable", depgraph.Local)

	var visited []string
	depgraph.WalkLocal(g, "main", func(n string) { visited = append(visited, n) })

	assert.Equal(t, []string{"main", "local_dep", "transitively_local"}, visited)
}

func TestWalkLocal_UnknownRootVisitsNothing(t *testing.T) {
	g := depgraph.New[string]()
	var visited []string
	depgraph.WalkLocal(g, "ghost", func(n string) { visited = append(visited, n) })
	assert.Empty(t, visited)
}

func TestWalkLocal_DoesNotRevisitCycles(t *testing.T) {
	g := depgraph.New[string]()
	g.AddEdge("A", "B", depgraph.Local)
	g.AddEdge("B", "A", depgraph.Local)

	var visited []string
	depgraph.WalkLocal(g, "A", func(n string) { visited = append(visited, n) })
	assert.Equal(t, []string{"A", "B"}, visited)
}
