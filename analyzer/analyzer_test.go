package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/viant/fegraph/analyzer"
	"github.com/viant/fegraph/analyzer/depgraph"
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// fakeParser resolves a path to a pre-built *ast.Module, standing in for a
// real Fe lexer/parser (an explicit external collaborator per spec §2).
type fakeParser map[string]*ast.Module

func (p fakeParser) ParseModule(path string, _ []byte) diag.Analysis[*ast.Module] {
	m, ok := p[path]
	if !ok {
		return diag.WithDiagnostics(&ast.Module{}, []diag.Diagnostic{diag.Errorf("no fixture for %s", path)})
	}
	return diag.Ok(m)
}

// sourceFiles unpacks a txtar archive into the (path, content) pairs
// BuildIngot consumes: one archive file per source file, its body the raw
// bytes ModuleParse now forwards to the Parser (see Database.sourceFileContent).
// txtar is already the teacher's dependency for exactly this shape of fixture.
func sourceFiles(archive string) []analyzer.SourceFile {
	arc := txtar.Parse([]byte(archive))
	files := make([]analyzer.SourceFile, len(arc.Files))
	for i, f := range arc.Files {
		files[i] = analyzer.SourceFile{Path: f.Name, Content: f.Data}
	}
	return files
}

func path(segments ...string) ast.Path {
	nodes := make([]ast.Node[string], len(segments))
	for i, s := range segments {
		nodes[i] = ast.NewNode(s, ast.Span{})
	}
	return ast.Path{Segments: nodes}
}

func typeRef(segments ...string) ast.TypeNode {
	return ast.TypeNode{Path: path(segments...)}
}

func name(n string) ast.Node[string] { return ast.NewNode(n, ast.Span{}) }

func TestBuildIngot_SingleFileLib(t *testing.T) {
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{
		"src/lib.fe": {},
	}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
// empty library root
`))
	require.Empty(t, result.Diagnostics)

	root, ok := db.RootModule(result.Value)
	require.True(t, ok, "lib ingot must have a root module")
	assert.Equal(t, "lib", db.ModuleName(root))
	assert.Len(t, db.IngotModules(result.Value), 1)
}

func TestBuildIngot_DirectoryFoldsIntoSameNamedFile(t *testing.T) {
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{
		"src/main.fe":      {},
		"src/main/util.fe": {},
	}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeMain, sourceFiles(`
-- src/main.fe --
// entry point
-- src/main/util.fe --
// helper module, folds under main
`))
	require.Empty(t, result.Diagnostics)

	root, ok := db.RootModule(result.Value)
	require.True(t, ok)
	assert.Equal(t, "main", db.ModuleName(root))

	subs := db.Submodules(root)
	require.Len(t, subs, 1, "src/main/util.fe should fold under main, not become a sibling top-level module")
	assert.Equal(t, "util", db.ModuleName(subs[0]))

	parent, ok := db.ParentModule(subs[0])
	require.True(t, ok)
	assert.Equal(t, root, parent)
}

func TestBuildIngot_MissingRootModuleDiagnostic(t *testing.T) {
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{
		"src/lib.fe": {},
	}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeMain, sourceFiles(`
-- src/lib.fe --
// a lib file in a main-mode ingot: no "main" module present
`))
	require.Len(t, result.Diagnostics, 1)
	assert.Contains(t, result.Diagnostics[0].Message, "missing a `main` module")

	_, ok := db.RootModule(result.Value)
	assert.False(t, ok)

	diags := db.IngotDiagnostics(result.Value)
	require.Len(t, diags.Diagnostics, 1)
}

func TestContractField_ResolvesAndDependencyGraphHasLocalEdge(t *testing.T) {
	module := &ast.Module{
		Body: []ast.ModuleStmt{
			{Struct: &ast.Struct{Name: name("Token")}},
			{Contract: &ast.Contract{
				Name: name("Vault"),
				Fields: []ast.Field{
					{Name: name("token"), Type: typeRef("Token")},
				},
			}},
		},
	}
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{"src/lib.fe": module}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
struct Token {}
contract Vault { token: Token }
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)
	items := db.ModuleAllItems(root)

	vaultItem, ok := items.Get("Vault")
	require.True(t, ok)
	contractID, ok := vaultItem.AsContract()
	require.True(t, ok)

	tokenItem, ok := items.Get("Token")
	require.True(t, ok)

	fields := db.ContractFields(contractID)
	require.Len(t, fields, 1)

	resolved := db.ContractFieldResolvedType(fields[0])
	require.Empty(t, resolved.Diagnostics)
	typ, ok := resolved.Value.AsType()
	require.True(t, ok)
	assert.Equal(t, "Token", typ.Name(db))

	graph := db.ContractDependencyGraph(contractID)
	loc, ok := graph.Edge(vaultItem, tokenItem)
	require.True(t, ok, "Vault's dependency graph should have an edge to Token")
	assert.Equal(t, depgraph.Local, loc, "a struct field stays Local: Token isn't a separately deployed contract")
}

func TestContractField_OfAnotherContractIsAlwaysExternal(t *testing.T) {
	module := &ast.Module{
		Body: []ast.ModuleStmt{
			{Contract: &ast.Contract{Name: name("Token")}},
			{Contract: &ast.Contract{
				Name: name("Vault"),
				Fields: []ast.Field{
					{Name: name("token"), Type: typeRef("Token")},
				},
				Functions: []ast.Function{
					{Name: name("setToken"), Pub: true, Params: []ast.Param{
						{Name: name("t"), Type: typeRef("Token")},
					}},
				},
			}},
		},
	}
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{"src/lib.fe": module}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
contract Token {}
contract Vault {
    token: Token
    pub fn setToken(t: Token) {}
}
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)
	items := db.ModuleAllItems(root)

	vaultItem, ok := items.Get("Vault")
	require.True(t, ok)
	contractID, ok := vaultItem.AsContract()
	require.True(t, ok)

	tokenItem, ok := items.Get("Token")
	require.True(t, ok)

	graph := db.ContractDependencyGraph(contractID)
	loc, ok := graph.Edge(vaultItem, tokenItem)
	require.True(t, ok, "Vault's dependency graph should still have an edge to Token")
	assert.Equal(t, depgraph.External, loc, "a field referencing another contract is always External, even declared in the same file")

	runtime := db.ContractRuntimeDependencyGraph(contractID)
	assert.False(t, runtime.HasNode(tokenItem), "the runtime dependency graph must not pull another contract's internals into its Local-only traversal")
}

func TestUsePath_ResolvesThroughSelfIngotBinding(t *testing.T) {
	libModule := &ast.Module{
		Body: []ast.ModuleStmt{
			{Use: &ast.Use{Tree: ast.UseTree{Path: path("ingot", "a", "b", "T")}}},
		},
	}
	aModule := &ast.Module{}
	bModule := &ast.Module{
		Body: []ast.ModuleStmt{
			{TypeAlias: &ast.TypeAlias{Name: name("T"), Type: typeRef("u256")}},
		},
	}
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{
		"src/lib.fe":     libModule,
		"src/lib/a.fe":   aModule,
		"src/lib/a/b.fe": bModule,
	}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
use ingot::a::b::T;
-- src/lib/a.fe --
// intermediate module, no declarations of its own
-- src/lib/a/b.fe --
type T = u256;
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)
	diags := db.ModuleDiagnostics(root)
	require.Empty(t, diags.Diagnostics)

	items := db.ModuleAllItems(root)
	tItem, ok := items.Get("T")
	require.True(t, ok, "use ingot::a::b::T should resolve T into lib's scope")
	typ, ok := tItem.AsType()
	require.True(t, ok)
	assert.Equal(t, "T", typ.Name(db))
}

func TestUsePath_UnresolvableHeadDiagnosesWithoutPanicking(t *testing.T) {
	libModule := &ast.Module{
		Body: []ast.ModuleStmt{
			{Use: &ast.Use{Tree: ast.UseTree{Path: path("self", "X")}}},
		},
	}
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{"src/lib.fe": libModule}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
use self::X;
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)

	require.NotPanics(t, func() {
		diags := db.ModuleDiagnostics(root)
		require.NotEmpty(t, diags.Diagnostics)
	})
}

func TestModuleScope_CollisionWithPreludeIsDiagnosedNotShadowed(t *testing.T) {
	libModule := &ast.Module{
		Body: []ast.ModuleStmt{
			{TypeAlias: &ast.TypeAlias{Name: name("address"), Type: typeRef("u256")}},
		},
	}
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{"src/lib.fe": libModule}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
type address = u256;
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)
	diags := db.ModuleDiagnostics(root)
	require.Len(t, diags.Diagnostics, 1)
	assert.Contains(t, diags.Diagnostics[0].Message, `"address"`)
	assert.Equal(t, diag.Warning, diags.Diagnostics[0].Severity, "default Config leaves StrictPrelude off: shadowing a builtin warns, it doesn't error")

	// invariant 4: the prelude entry must still be reachable, not silently
	// replaced by the user's declaration.
	items := db.ModuleAllItems(root)
	addrItem, ok := items.Get("address")
	require.True(t, ok)
	assert.True(t, addrItem.IsBuiltin())
}

func TestModuleScope_CollisionWithPreludeIsErrorUnderStrictPrelude(t *testing.T) {
	libModule := &ast.Module{
		Body: []ast.ModuleStmt{
			{TypeAlias: &ast.TypeAlias{Name: name("address"), Type: typeRef("u256")}},
		},
	}
	cfg := analyzer.NewDatabase().Config()
	cfg.StrictPrelude = true
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{"src/lib.fe": libModule}), analyzer.WithConfig(cfg))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
type address = u256;
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)
	diags := db.ModuleDiagnostics(root)
	require.Len(t, diags.Diagnostics, 1)
	assert.Equal(t, diag.Error, diags.Diagnostics[0].Severity, "StrictPrelude promotes a prelude collision to an error")
}

func TestRoundTrip_IngotItemsMatchRootModuleItems(t *testing.T) {
	libModule := &ast.Module{
		Body: []ast.ModuleStmt{
			{Struct: &ast.Struct{Name: name("Token")}},
		},
	}
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{"src/lib.fe": libModule}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
struct Token {}
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)
	ingotItems := db.IngotRootItems(result.Value)
	moduleItems := db.ModuleAllItems(root)

	assert.Equal(t, moduleItems.Keys(), ingotItems.Keys())
	for _, k := range moduleItems.Keys() {
		mi, _ := moduleItems.Get(k)
		ii, _ := ingotItems.Get(k)
		assert.Equal(t, mi, ii)
	}
}

func TestModulePragma_SatisfiedConstraintProducesNoDiagnostic(t *testing.T) {
	libModule := &ast.Module{
		Body: []ast.ModuleStmt{
			{Pragma: &ast.Pragma{VersionConstraint: ">=0.1.0"}},
		},
	}
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{"src/lib.fe": libModule}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
pragma fe >=0.1.0;
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)
	assert.Empty(t, db.ModuleDiagnostics(root).Diagnostics)
}

func TestModulePragma_UnsatisfiedConstraintIsDiagnosed(t *testing.T) {
	libModule := &ast.Module{
		Body: []ast.ModuleStmt{
			{Pragma: &ast.Pragma{VersionConstraint: ">=1.0.0"}},
		},
	}
	db := analyzer.NewDatabase(analyzer.WithParser(fakeParser{"src/lib.fe": libModule}))
	result := analyzer.BuildIngot(db, "demo", analyzer.ModeLib, sourceFiles(`
-- src/lib.fe --
pragma fe >=1.0.0;
`))
	require.Empty(t, result.Diagnostics)

	root, _ := db.RootModule(result.Value)
	diags := db.ModuleDiagnostics(root).Diagnostics
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Pragma violation")
}
