package analyzer

import (
	"strings"

	"github.com/viant/fegraph/ast"
	"github.com/viant/fegraph/diag"
)

// ModuleId identifies an interned moduleRecord.
type ModuleId uint32

type moduleSourceKind int

const (
	sourceFile moduleSourceKind = iota
	sourceDir
	// sourceLowered marks a module that stands in for another module's
	// lowered form. Its identity is the pair (Original, AstHash), where
	// AstHash is the number loweredASTIdentity assigns to the lowered
	// *ast.Module pointer: two lowerings of the same module that return
	// the same pointer are treated as the same module.
	sourceLowered
)

type moduleSource struct {
	Kind     moduleSourceKind
	File     SourceFileId
	DirPath  string
	Original ModuleId
	AstHash  uint64
}

type moduleRecord struct {
	Name   string
	Ingot  IngotId
	Parent *ModuleId
	Source moduleSource
}

// Ingot returns the ingot a module belongs to.
func (db *Database) Ingot(m ModuleId) IngotId { return db.modules.Lookup(m).Ingot }

// ModuleName returns a module's own (not fully-qualified) name.
func (db *Database) ModuleName(m ModuleId) string { return db.modules.Lookup(m).Name }

// ParentModule returns the lexically enclosing module, if any. The ingot
// root module has no parent.
func (db *Database) ParentModule(m ModuleId) (ModuleId, bool) {
	rec := db.modules.Lookup(m)
	if rec.Parent == nil {
		return ModuleId(0), false
	}
	return *rec.Parent, true
}

// ModuleFilePath returns the filesystem path a module's content came from,
// for diagnostics display. A lowered module returns its original's path. A
// Dir module has no file of its own: it returns its parent module's path,
// or, for a top-level Dir module, its own directory path relative to
// src_dir.
func (db *Database) ModuleFilePath(m ModuleId) string {
	rec := db.modules.Lookup(m)
	switch rec.Source.Kind {
	case sourceFile:
		return db.sourceFiles.Lookup(rec.Source.File).Path
	case sourceLowered:
		return db.ModuleFilePath(rec.Source.Original)
	default:
		if rec.Parent != nil {
			return db.ModuleFilePath(*rec.Parent)
		}
		return rec.Source.DirPath
	}
}

// ModuleParse returns the parsed AST for a file-backed module, invoking
// the injected Parser exactly once per module and caching the result. Dir
// modules parse to an empty, diagnostic-free Module.
func (db *Database) ModuleParse(m ModuleId) diag.Analysis[*ast.Module] {
	return query(db, cacheKey("ModuleParse", m), func() diag.Analysis[*ast.Module] {
		rec := db.modules.Lookup(m)
		switch rec.Source.Kind {
		case sourceFile:
			path := db.sourceFiles.Lookup(rec.Source.File).Path
			if db.parser == nil {
				return diag.WithDiagnostics[*ast.Module](&ast.Module{}, []diag.Diagnostic{
					diag.Errorf("module %s: no parser configured", path),
				})
			}
			return db.parser.ParseModule(path, db.sourceFileContent[rec.Source.File])
		case sourceLowered:
			return db.ModuleParse(rec.Source.Original)
		default:
			return diag.Ok(&ast.Module{})
		}
	})
}

// ModuleIsIncomplete reports whether the module's own parse produced any
// error-severity diagnostic, which downstream passes use to decide whether
// to suppress cascading errors.
func (db *Database) ModuleIsIncomplete(m ModuleId) bool {
	for _, d := range db.ModuleParse(m).Diagnostics {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}

// Submodules returns the module's direct children: the Dir/file modules
// whose parent is m, in the order BuildIngot interned them.
func (db *Database) Submodules(m ModuleId) []ModuleId {
	return query(db, cacheKey("Submodules", m), func() []ModuleId {
		var out []ModuleId
		for _, candidate := range db.ingotModules[db.modules.Lookup(m).Ingot] {
			rec := db.modules.Lookup(candidate)
			if rec.Parent != nil && *rec.Parent == m {
				out = append(out, candidate)
			}
		}
		return out
	})
}

// globalItems is layer 1 of the module scope union in §4.D: the prelude,
// the enclosing ingot's external dependencies bound to their registered
// alias as Ingot entries, and — unless the ingot is standalone — the
// ingot itself bound to the fixed name "ingot". It is identical for every
// module of a given ingot, so it is cached per ingot, not per module.
func (db *Database) globalItems(ingot IngotId) *ItemMap {
	return query(db, cacheKey("globalItems", ingot), func() *ItemMap {
		items := NewItemMap()
		items.Merge(db.Prelude())
		items.Merge(db.ExternalIngots(ingot))
		if db.IngotMode(ingot) != ModeStandalone {
			items.Set("ingot", ItemIngot(ingot))
		}
		return items
	})
}

// addLayer inserts every entry of layer into items in layer's order,
// recording a duplicate-name diagnostic (§8 "Name collision with the
// prelude", invariant 4 "No silent shadowing") for every name already
// present instead of silently overwriting or silently keeping the first
// entry. The first-seen entry always wins the map slot; the later entry is
// reported by the diagnostic only and is not kept in any list.
//
// A collision against a prelude entry specifically is downgraded to a
// warning unless Config.StrictPrelude is set: shadowing a user-declared
// name is always an error, but shadowing a builtin is the one case the
// spec's Configuration section leaves caller-tunable.
func (db *Database) addLayer(items *ItemMap, layer *ItemMap, diags *[]diag.Diagnostic, span func(name string) *ast.Span) {
	layer.Range(func(name string, it Item) bool {
		existing, ok := items.Get(name)
		if !ok {
			items.Set(name, it)
			return true
		}
		sev := diag.Error
		if existing.IsBuiltin() && !db.cfg.StrictPrelude {
			sev = diag.Warning
		}
		d := diag.Severityf(sev, "name %q already declared in this scope", name)
		if s := span(name); s != nil {
			d.Span = s
			d.Label = name
		}
		*diags = append(*diags, d)
		return true
	})
}

// nonUsedInternalItems is layers 1-3 of §4.D's scope union (global,
// submodules, declared items) — everything except `use` imports. It is
// the view used while resolving the module's own `use` statements, so
// that `use a::b` never depends on the module's own used-item set and the
// use<->scope cycle the spec calls out is broken at this API boundary,
// never inside the query cache itself.
func (db *Database) nonUsedInternalItems(m ModuleId) diag.Analysis[*ItemMap] {
	return query(db, cacheKey("nonUsedInternalItems", m), func() diag.Analysis[*ItemMap] {
		items := NewItemMap()
		var diags []diag.Diagnostic
		noSpan := func(string) *ast.Span { return nil }

		db.addLayer(items, db.globalItems(db.modules.Lookup(m).Ingot), &diags, noSpan)

		submodules := NewItemMap()
		for _, sub := range db.Submodules(m) {
			submodules.Set(db.ModuleName(sub), ItemModule(sub))
		}
		db.addLayer(items, submodules, &diags, noSpan)

		declared := NewItemMap()

		parsed := db.ModuleParse(m)
		diags = append(diags, parsed.Diagnostics...)
		body := parsed.Value.Body

		record := func(name string, span ast.Span, it Item) {
			if existing, ok := declared.Get(name); ok {
				diags = append(diags, diag.At(span, "name already declared in this module", name))
				_ = existing
				return
			}
			declared.Set(name, it)
		}

		for _, stmt := range body {
			switch stmt.Kind() {
			case ast.StmtTypeAlias:
				decl := stmt.TypeAlias
				id := db.typeAliases.Intern(typeAliasRecord{
					Name: decl.Name.Kind, Module: m, NameSpan: decl.Name.Span, Decl: decl,
				})
				record(decl.Name.Kind, decl.Name.Span, ItemType(TypeDef{Kind: TypeDefAlias, Alias: id}))
			case ast.StmtStruct:
				decl := stmt.Struct
				id := db.internStruct(m, decl)
				record(decl.Name.Kind, decl.Name.Span, ItemType(TypeDef{Kind: TypeDefStruct, Struct: id}))
			case ast.StmtContract:
				decl := stmt.Contract
				id := db.internContract(m, decl)
				record(decl.Name.Kind, decl.Name.Span, ItemType(TypeDef{Kind: TypeDefContract, Contract: id}))
			case ast.StmtFunction:
				decl := stmt.Function
				id := db.functions.Intern(functionRecord{
					Name: decl.Name.Kind, Module: m, NameSpan: decl.Name.Span, Decl: decl,
				})
				record(decl.Name.Kind, decl.Name.Span, ItemFunction(id))
			case ast.StmtConstant:
				decl := stmt.Constant
				id := db.moduleConstants.Intern(moduleConstantRecord{
					Name: decl.Name.Kind, Module: m, NameSpan: decl.Name.Span, Decl: decl,
				})
				record(decl.Name.Kind, decl.Name.Span, ItemConstant(id))
			}
		}

		spanOf := func(name string) *ast.Span {
			it, ok := declared.Get(name)
			if !ok {
				return nil
			}
			return it.NameSpan(db)
		}
		db.addLayer(items, declared, &diags, spanOf)

		return diag.WithDiagnostics(items, diags)
	})
}

// usedItems resolves the module's `use` statements into the items they
// name, using nonUsedInternalItems (never internalItems/ModuleAllItems) of
// the *using* module as the base view for the first path segment, so that
// `use a::b` never depends on this module's own used-item set — the only
// cycle the spec's design anticipates (§4.D, §9), broken at this API
// boundary rather than inside the query cache.
func (db *Database) usedItems(m ModuleId) diag.Analysis[*ItemMap] {
	return query(db, cacheKey("usedItems", m), func() diag.Analysis[*ItemMap] {
		items := NewItemMap()
		var diags []diag.Diagnostic
		parsed := db.ModuleParse(m)
		for _, stmt := range parsed.Value.Body {
			if stmt.Use == nil {
				continue
			}
			tree := stmt.Use.Tree
			resolved := db.ResolvePathNonUsedInternal(m, segmentsOf(tree.Path))
			diags = append(diags, resolved.Diagnostics...)
			if len(resolved.Diagnostics) > 0 {
				continue
			}
			name := tree.Alias
			if name == "" {
				name = lastSegment(tree.Path)
			}
			if _, dup := items.Get(name); dup {
				diags = append(diags, diag.Errorf("name %q already imported in this module", name))
				continue
			}
			items.Set(name, resolved.Value)
		}
		return diag.WithDiagnostics(items, diags)
	})
}

func lastSegment(p ast.Path) string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1].Kind
}

func segmentsOf(p ast.Path) []string {
	out := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		out[i] = s.Kind
	}
	return out
}

// ModuleAllItems is the module's full namespace (§4.D's internal_items):
// layers 1-3 (global, submodules, declared) plus layer 4 (resolved `use`
// imports) — the view code resolving names in expressions sees. Collisions
// against the use layer are diagnosed the same way declared-vs-declared
// ones are (invariant 4), never silently resolved by precedence.
func (db *Database) ModuleAllItems(m ModuleId) *ItemMap {
	return query(db, cacheKey("ModuleAllItems", m), func() *ItemMap {
		out := NewItemMap()
		base := db.nonUsedInternalItems(m)
		out.Merge(base.Value)
		used := db.usedItems(m)
		var diags []diag.Diagnostic
		db.addLayer(out, used.Value, &diags, func(string) *ast.Span { return nil })
		_ = diags // surfaced via ModuleDiagnostics, not dropped silently
		return out
	})
}

// internalItems is §4.D's internal_items query by name: ModuleAllItems's
// value (layers 1-4) paired with the diagnostics produced reaching it, for
// callers that want both in one Analysis rather than two separate calls.
func (db *Database) internalItems(m ModuleId) diag.Analysis[*ItemMap] {
	return diag.WithDiagnostics(db.ModuleAllItems(m), db.ModuleDiagnostics(m).Diagnostics)
}

// ModuleItemMap is an alias for ModuleAllItems kept for readability at call
// sites that only care about the name -> Item view. It returns the same
// deduplicated map; this package keeps no separate list of all declared
// items with duplicates.
func (db *Database) ModuleItemMap(m ModuleId) *ItemMap { return db.ModuleAllItems(m) }

// ModuleDiagnostics aggregates the diagnostics produced resolving this
// module's own scope (global/submodule/declared collisions), its `use`
// statements and their collisions with that scope, and its `pragma` version
// constraint (not its submodules' or referents' diagnostics).
func (db *Database) ModuleDiagnostics(m ModuleId) diag.Analysis[struct{}] {
	var diags []diag.Diagnostic
	base := db.nonUsedInternalItems(m)
	diags = append(diags, base.Diagnostics...)
	used := db.usedItems(m)
	diags = append(diags, used.Diagnostics...)
	scope := NewItemMap()
	scope.Merge(base.Value)
	db.addLayer(scope, used.Value, &diags, func(string) *ast.Span { return nil })
	diags = append(diags, db.ModulePragmaDiagnostics(m).Diagnostics...)
	return diag.WithDiagnostics(struct{}{}, diags)
}

// ResolveName looks up name in m's full namespace (own, used, prelude).
func (db *Database) ResolveName(m ModuleId, name string) (Item, bool) {
	return db.ModuleAllItems(m).Get(name)
}

// ResolveConstant looks up name in m's namespace and reports whether it
// names a module-level constant specifically, per original_source's
// ModuleId::resolve_constant.
func (db *Database) ResolveConstant(m ModuleId, name string) (ModuleConstantId, bool) {
	it, ok := db.ResolveName(m, name)
	if !ok || it.Kind() != KindConstant {
		return ModuleConstantId(0), false
	}
	return it.constant, true
}

// ResolvePathInternal resolves a path against m's global items (prelude,
// external dependencies, the "ingot" binding), submodules and own
// declarations, without `use` imports — used when resolving the
// target of a `use` statement itself, per original_source's
// resolve_path_internal.
func (db *Database) ResolvePathInternal(m ModuleId, segments []string) diag.Analysis[Item] {
	return db.resolvePathFromMap(m, segments, func(mod ModuleId) *ItemMap {
		return db.nonUsedInternalItems(mod).Value
	})
}

// ResolvePathNonUsedInternal is an alias kept distinct from
// ResolvePathInternal for call-site clarity, matching original_source's
// naming; both currently share nonUsedInternalItems as their base view.
func (db *Database) ResolvePathNonUsedInternal(m ModuleId, segments []string) diag.Analysis[Item] {
	return db.ResolvePathInternal(m, segments)
}

// ResolvePathFrom resolves a path starting at m's full namespace (own,
// used, prelude), following `::`-separated segments through each
// intermediate item's own namespace.
func (db *Database) ResolvePathFrom(m ModuleId, p ast.Path) diag.Analysis[Item] {
	segments := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		segments[i] = s.Kind
	}
	return db.resolvePathFromMap(m, segments, db.ModuleAllItems)
}

func (db *Database) resolvePathFromMap(m ModuleId, segments []string, moduleView func(ModuleId) *ItemMap) diag.Analysis[Item] {
	if len(segments) == 0 {
		return diag.WithDiagnostics(Item{}, []diag.Diagnostic{diag.Errorf("empty path")})
	}
	head := segments[0]
	base := moduleView(m)
	it, ok := base.Get(head)
	if !ok {
		return diag.WithDiagnostics(Item{}, []diag.Diagnostic{
			diag.Errorf("unresolved name %q in module %s", head, strings.TrimSpace(db.ModuleName(m))),
		})
	}
	for _, seg := range segments[1:] {
		next, ok := db.itemNamespace(it, moduleView).Get(seg)
		if !ok {
			return diag.WithDiagnostics(Item{}, []diag.Diagnostic{
				diag.Errorf("%s has no member %q", it.Name(db), seg),
			})
		}
		it = next
	}
	return diag.Ok(it)
}

// itemNamespace returns the namespace a path walk should see stepping
// through it: a Module or Ingot defers to moduleView rather than always
// calling the full ModuleAllItems/IngotRootItems, so a path walked while
// resolving a `use` statement (moduleView == nonUsedInternalItems) never
// depends on any module it passes through's own use layer — not just the
// path's head — which is what keeps a path like `ingot::a::b::T` from
// re-entering the referring module's own ModuleAllItems computation when it
// loops back through the ingot root or one of its own ancestors. Every other
// container kind (type, function, ...) has no use layer of its own, so it
// keeps using its regular Items(db).
func (db *Database) itemNamespace(it Item, moduleView func(ModuleId) *ItemMap) *ItemMap {
	switch it.Kind() {
	case KindModule:
		mid, _ := it.AsModule()
		return moduleView(mid)
	case KindIngot:
		iid, _ := it.AsIngot()
		root, ok := db.RootModule(iid)
		if !ok {
			return NewItemMap()
		}
		return moduleView(root)
	default:
		return it.Items(db)
	}
}

// LowerModule runs the injected ASTLowerer over m's parsed AST and interns
// the result as a new module whose identity is (m, loweredASTIdentity of
// the lowered AST pointer): a lowering's identity never needs to outlive
// the memoized ModuleParse pointer it was derived from.
func (db *Database) LowerModule(m ModuleId) diag.Analysis[ModuleId] {
	return query(db, cacheKey("LowerModule", m), func() diag.Analysis[ModuleId] {
		if db.lowerer == nil {
			return diag.WithDiagnostics(ModuleId(0), []diag.Diagnostic{
				diag.Errorf("module %s: no lowerer configured", db.ModuleFilePath(m)),
			})
		}
		parsed := db.ModuleParse(m)
		lowered := db.lowerer.LowerModule(parsed.Value)
		hash := db.loweredASTIdentity(lowered.Value)
		rec := db.modules.Lookup(m)
		id := db.modules.Intern(moduleRecord{
			Name:   rec.Name,
			Ingot:  rec.Ingot,
			Parent: rec.Parent,
			Source: moduleSource{Kind: sourceLowered, Original: m, AstHash: hash},
		})
		diags := append(append([]diag.Diagnostic(nil), parsed.Diagnostics...), lowered.Diagnostics...)
		return diag.WithDiagnostics(id, diags)
	})
}

// loweredASTIdentity gives a lowered module a stable, comparable identity
// derived from its pointer, since ast.Module carries no content hash of
// its own and this core never needs to compare lowerings structurally:
// module_parse is itself memoized, so the same source always lowers from
// the same stable AST pointer (see DESIGN.md's AST-identity resolution).
func (db *Database) loweredASTIdentity(m *ast.Module) uint64 {
	if id, ok := db.loweredIdentity[m]; ok {
		return id
	}
	db.nextLoweredID++
	db.loweredIdentity[m] = db.nextLoweredID
	return db.nextLoweredID
}
