// Package analyzer is the namespace and item-resolution core: it builds an
// Ingot/Module tree from a set of source files, resolves paths and names
// against that tree, and exposes a per-item dependency graph. It never
// parses, type-checks bodies, evaluates constants, or lowers ASTs itself;
// those are injected as collaborators (Parser, ConstantEvaluator,
// ASTLowerer) so this package stays usable with any front end that can
// satisfy the three interfaces.
//
// Structurally this package plays the role the teacher's analyzer.Analyzer
// plays for code inspection: a stateful root object built with functional
// options (NewAnalyzer/Option in the teacher, NewDatabase/Option here) that
// owns every derived fact and hands out read views of it.
package analyzer

import (
	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/builtins"
	"github.com/viant/fegraph/config"
	"github.com/viant/fegraph/diag"
	"github.com/viant/fegraph/intern"
)

// Parser is the external collaborator that turns source text into an AST.
// This core never constructs an ast.Module itself.
type Parser interface {
	ParseModule(path string, source []byte) diag.Analysis[*ast.Module]
}

// ConstantEvaluator is the external collaborator that evaluates a constant
// declaration's value expression. This core resolves *which* declaration a
// name refers to; it never computes the value.
type ConstantEvaluator interface {
	EvaluateConstant(decl *ast.ConstantDecl) diag.Analysis[any]
}

// ASTLowerer is the external collaborator that lowers a parsed module into
// whatever IR the rest of a compiler pipeline wants. This core only needs
// the lowered form's identity (see moduleSource.Kind == sourceLowered), not
// its contents.
type ASTLowerer interface {
	LowerModule(m *ast.Module) diag.Analysis[*ast.Module]
}

// Database is the root object of this package: every Ingot, Module, and
// declared item lives behind one of its interning tables, and every
// derived fact (scopes, resolved paths, dependency graphs) is produced by
// a memoized query against it.
type Database struct {
	cfg config.Config

	parser    Parser
	constEval ConstantEvaluator
	lowerer   ASTLowerer

	ingots          *intern.Table[ingotRecord, IngotId]
	modules         *intern.Table[moduleRecord, ModuleId]
	sourceFiles     *intern.Table[sourceFileRecord, SourceFileId]
	contracts       *intern.Table[contractRecord, ContractId]
	structs         *intern.Table[structRecord, StructId]
	functions       *intern.Table[functionRecord, FunctionId]
	events          *intern.Table[eventRecord, EventId]
	typeAliases     *intern.Table[typeAliasRecord, TypeAliasId]
	moduleConstants *intern.Table[moduleConstantRecord, ModuleConstantId]
	contractFields  *intern.Table[contractFieldRecord, ContractFieldId]
	structFields    *intern.Table[structFieldRecord, StructFieldId]

	// sourceFileContent holds each interned source file's raw bytes,
	// keyed by SourceFileId — kept out of sourceFileRecord itself since
	// []byte isn't comparable and sourceFileRecord is an intern.Table key.
	sourceFileContent map[SourceFileId][]byte

	// ingotModules lists, in declaration order, the modules that belong to
	// each ingot, populated as BuildIngot walks the filesystem tree.
	ingotModules map[IngotId][]ModuleId
	// ingotExternalDeps maps an ingot's declared external-dependency name
	// to the dependency ingot it resolves to.
	ingotExternalDeps map[IngotId]map[string]IngotId
	// ingotRootModule is the top-level module BuildIngot selected as each
	// ingot's root; an ingot missing its required root has no entry.
	ingotRootModule map[IngotId]ModuleId

	// prelude holds the always-in-scope builtin items, built once.
	prelude *ItemMap

	// stdIngot caches the standard-library ingot registered under
	// Config.AutoRegisterStd, built at most once per Database regardless of
	// how many other ingots request it as an implicit dependency.
	stdIngot *IngotId

	// loweredIdentity assigns a stable small integer to each distinct
	// lowered-AST pointer LowerModule produces, since *ast.Module carries
	// no content hash of its own and pointer identity is cheaper than one.
	loweredIdentity map[*ast.Module]uint64
	nextLoweredID   uint64

	// cache and inFlight back every memoized query in query.go.
	cache    map[string]any
	inFlight map[string]bool
}

// Option configures a Database at construction time.
type Option func(*Database)

// WithParser injects the source-to-AST collaborator.
func WithParser(p Parser) Option { return func(db *Database) { db.parser = p } }

// WithConstantEvaluator injects the constant-expression collaborator.
func WithConstantEvaluator(e ConstantEvaluator) Option {
	return func(db *Database) { db.constEval = e }
}

// WithLowerer injects the AST-lowering collaborator.
func WithLowerer(l ASTLowerer) Option { return func(db *Database) { db.lowerer = l } }

// WithConfig overrides the default Config.
func WithConfig(c config.Config) Option { return func(db *Database) { db.cfg = c } }

// NewDatabase constructs an empty Database. Ingots and modules are added to
// it with BuildIngot / NewStandaloneModule.
func NewDatabase(opts ...Option) *Database {
	db := &Database{
		cfg:               config.Default(),
		ingots:            intern.NewTable[ingotRecord, IngotId](),
		modules:           intern.NewTable[moduleRecord, ModuleId](),
		sourceFiles:       intern.NewTable[sourceFileRecord, SourceFileId](),
		contracts:         intern.NewTable[contractRecord, ContractId](),
		structs:           intern.NewTable[structRecord, StructId](),
		functions:         intern.NewTable[functionRecord, FunctionId](),
		events:            intern.NewTable[eventRecord, EventId](),
		typeAliases:       intern.NewTable[typeAliasRecord, TypeAliasId](),
		moduleConstants:   intern.NewTable[moduleConstantRecord, ModuleConstantId](),
		contractFields:    intern.NewTable[contractFieldRecord, ContractFieldId](),
		structFields:      intern.NewTable[structFieldRecord, StructFieldId](),
		sourceFileContent: make(map[SourceFileId][]byte),
		ingotModules:      make(map[IngotId][]ModuleId),
		ingotExternalDeps: make(map[IngotId]map[string]IngotId),
		ingotRootModule:   make(map[IngotId]ModuleId),
		cache:             make(map[string]any),
		inFlight:          make(map[string]bool),
		loweredIdentity:   make(map[*ast.Module]uint64),
	}
	for _, opt := range opts {
		opt(db)
	}
	db.prelude = buildPrelude()
	return db
}

// Config returns the database's active configuration.
func (db *Database) Config() config.Config { return db.cfg }

// StdIngot returns the ingot previously recorded with SetStdIngot, if any.
// Consulted by Config.AutoRegisterStd wiring (see loader.LoadIngot) so the
// standard-library ingot is built at most once per Database.
func (db *Database) StdIngot() (IngotId, bool) {
	if db.stdIngot == nil {
		return IngotId(0), false
	}
	return *db.stdIngot, true
}

// SetStdIngot records id as this Database's standard-library ingot.
func (db *Database) SetStdIngot(id IngotId) { db.stdIngot = &id }

// Prelude returns the always-in-scope builtin items: primitive types,
// generic type constructors, builtin functions, intrinsics, and builtin
// objects, keyed by their spec-mandated names (builtins.*).
func (db *Database) Prelude() *ItemMap { return db.prelude }

func buildPrelude() *ItemMap {
	m := NewItemMap()
	for _, i := range builtins.AllIntegers() {
		m.Set(i.String(), ItemType(TypeDef{Kind: TypeDefPrimitive, Primitive: builtins.BaseInt(i)}))
	}
	m.Set("bool", ItemType(TypeDef{Kind: TypeDefPrimitive, Primitive: builtins.BaseBool()}))
	m.Set("address", ItemType(TypeDef{Kind: TypeDefPrimitive, Primitive: builtins.BaseAddress()}))
	for _, g := range builtins.AllGenericTypes() {
		m.Set(g.String(), ItemGenericType(g))
	}
	for _, f := range builtins.AllGlobalFunctions() {
		m.Set(f.String(), ItemBuiltinFunction(f))
	}
	for _, in := range builtins.AllIntrinsics() {
		m.Set(in.String(), ItemIntrinsic(in))
	}
	for _, o := range builtins.AllGlobalObjects() {
		m.Set(o.String(), ItemObject(o))
	}
	return m
}
