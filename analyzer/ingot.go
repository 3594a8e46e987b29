package analyzer

import (
	"path"
	"sort"
	"strings"

	"github.com/viant/fegraph/contenthash"
	"github.com/viant/fegraph/diag"
)

// IngotId identifies an interned ingotRecord.
type IngotId uint32

// IngotMode is how an ingot's root module is shaped.
type IngotMode int

const (
	// ModeMain is an ingot with a contract-bearing entry point; its root
	// module must be named "main".
	ModeMain IngotMode = iota
	// ModeLib is an ingot meant to be consumed as a dependency only; its
	// root module must be named "lib".
	ModeLib
	// ModeStandalone wraps exactly one file with no directory tree of its
	// own, per original_source's IngotMode::StandaloneModule convenience
	// constructor (see SPEC_FULL.md §5).
	ModeStandalone
)

func (m IngotMode) rootName() (string, bool) {
	switch m {
	case ModeMain:
		return "main", true
	case ModeLib:
		return "lib", true
	default:
		return "", false
	}
}

type ingotRecord struct {
	Name string
	Mode IngotMode
	// SrcDir is the filesystem directory this ingot's sources were loaded
	// from, used only for diagnostics and display; path resolution never
	// touches the filesystem again once BuildIngot returns.
	SrcDir string
}

// SourceFileId identifies an interned source file.
type SourceFileId uint32

// sourceFileRecord is the interned key identifying a source file: path plus
// a content hash, not the content itself — []byte isn't comparable, so it
// can't live in a value interned by equality. The raw bytes a real Parser
// needs (spec §6: "source files as (path, content) pairs") are kept
// alongside, in Database.sourceFileContent, keyed by the SourceFileId this
// intern call hands back.
type sourceFileRecord struct {
	Path        string
	ContentHash uint64
}

// SourceFile is one file handed to BuildIngot: its path (relative to the
// ingot's eventual src_dir, or absolute/rooted — src_dir is derived from
// whatever prefix the set of paths shares) and its raw bytes.
type SourceFile struct {
	Path    string
	Content []byte
}

// BuildIngot constructs an ingot from a flat list of source files, deriving
// its module tree the way original_source's IngotId::from_files does:
// find the files' common path prefix (src_dir), then for every directory
// under that prefix that does NOT have a same-named sibling source file,
// synthesize a Dir module for it. A directory that does have a same-named
// file folds into that file's module instead of getting its own Dir
// module. The resulting module tree has one node per file/directory
// directly under src_dir with no parent (a top-level module), and deeper
// nodes parented by their immediate containing directory's module —
// mirroring the on-disk layout one-to-one. The ingot's root module (§4.C)
// is selected from among the top-level nodes by name, per mode: "main" for
// ModeMain, "lib" for ModeLib; a missing one produces the §4.G diagnostic
// instead of a panic, and no per-module resolution is attempted under a
// rootless ingot.
//
// name is the ingot's declared name, used for display and in diagnostics;
// an ingot named "std" is never given an implicit "std" dependency.
// Aliases other ingots refer to it by are set with AddExternalDependency.
func BuildIngot(db *Database, name string, mode IngotMode, files []SourceFile) diag.Analysis[IngotId] {
	var diags []diag.Diagnostic

	srcDir := commonDir(files)
	id := db.ingots.Intern(ingotRecord{Name: name, Mode: mode, SrcDir: srcDir})

	sorted := append([]SourceFile(nil), files...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	rel := func(p string) string {
		r := strings.TrimPrefix(p, srcDir)
		return strings.TrimPrefix(r, "/")
	}

	// fileStems marks every file's src_dir-relative path with its extension
	// stripped; a directory whose relative path equals one of these stems
	// folds into that file's module instead of getting a synthetic Dir
	// module of its own (§4.C step 4).
	fileStems := map[string]bool{}
	for _, f := range sorted {
		r := rel(f.Path)
		fileStems[strings.TrimSuffix(r, path.Ext(r))] = true
	}

	dirModules := map[string]ModuleId{}
	stemModules := map[string]ModuleId{}

	var dirModule func(relDir string) ModuleId
	dirModule = func(relDir string) ModuleId {
		if mid, ok := dirModules[relDir]; ok {
			return mid
		}
		if mid, ok := stemModules[relDir]; ok {
			dirModules[relDir] = mid
			return mid
		}
		var parent *ModuleId
		if idx := strings.LastIndex(relDir, "/"); idx >= 0 {
			p := dirModule(relDir[:idx])
			parent = &p
		}
		mid := db.modules.Intern(moduleRecord{
			Name:   path.Base(relDir),
			Ingot:  id,
			Parent: parent,
			Source: moduleSource{Kind: sourceDir, DirPath: relDir},
		})
		dirModules[relDir] = mid
		return mid
	}

	for _, f := range sorted {
		relPath := rel(f.Path)
		relDir := path.Dir(relPath)
		if relDir == "." {
			relDir = ""
		}
		var parent *ModuleId
		if relDir != "" {
			p := dirModule(relDir)
			parent = &p
		}
		hash := contenthash.Hash(f.Content)
		fileID := db.sourceFiles.Intern(sourceFileRecord{Path: f.Path, ContentHash: hash})
		db.sourceFileContent[fileID] = f.Content
		stem := strings.TrimSuffix(relPath, path.Ext(relPath))
		mid := db.modules.Intern(moduleRecord{
			Name:   path.Base(stem),
			Ingot:  id,
			Parent: parent,
			Source: moduleSource{Kind: sourceFile, File: fileID},
		})
		if fileStems[stem] {
			stemModules[stem] = mid
		}
	}

	var mods []ModuleId
	for i := uint32(0); i < uint32(db.modules.Len()); i++ {
		mid := ModuleId(i)
		if db.modules.Lookup(mid).Ingot == id {
			mods = append(mods, mid)
		}
	}
	db.ingotModules[id] = mods

	root, hasRoot := selectRootModule(db, id, mode, mods)
	if hasRoot {
		db.ingotRootModule[id] = root
	} else if word, named := mode.rootName(); named {
		diags = append(diags, diag.Errorf(
			"The ingot named %q is missing a `%s` module. Please add a `src/%s.fe` file to its source directory.",
			name, word, word,
		))
	}

	// Config.AutoRegisterStd: bind this ingot's "std" alias to the
	// already-registered standard-library ingot (see Database.SetStdIngot,
	// populated by loader.LoadIngot from Config.StdIngotPath) unless the
	// ingot already declares its own "std" dependency, or is the std ingot
	// itself.
	if db.cfg.AutoRegisterStd && name != "std" {
		if _, already := db.ingotExternalDeps[id]["std"]; !already {
			if std, ok := db.StdIngot(); ok {
				db.AddExternalDependency(id, "std", std)
			}
		}
	}

	return diag.WithDiagnostics(id, diags)
}

// selectRootModule picks the ingot's root module among its top-level (no
// parent) modules: the one named "main"/"lib" per mode, or — for a
// standalone ingot, which by construction has exactly one module total —
// that single module.
func selectRootModule(db *Database, ingot IngotId, mode IngotMode, mods []ModuleId) (ModuleId, bool) {
	if mode == ModeStandalone {
		if len(mods) == 0 {
			return 0, false
		}
		return mods[0], true
	}
	word, ok := mode.rootName()
	if !ok {
		return 0, false
	}
	for _, mid := range mods {
		rec := db.modules.Lookup(mid)
		if rec.Parent == nil && rec.Name == word {
			return mid, true
		}
	}
	return 0, false
}

func commonDir(files []SourceFile) string {
	if len(files) == 0 {
		return ""
	}
	if len(files) == 1 {
		d := path.Dir(files[0].Path)
		if d == "." {
			return ""
		}
		return d
	}
	common := path.Dir(files[0].Path)
	for _, f := range files[1:] {
		d := path.Dir(f.Path)
		for !strings.HasPrefix(d+"/", common+"/") && common != "." && common != "/" {
			common = path.Dir(common)
		}
	}
	if common == "." {
		return ""
	}
	return common
}

// NewStandaloneModule is the convenience constructor original_source
// exposes as IngotMode::StandaloneModule: wraps a single file as its own
// one-module ingot, with the ingot itself named "" (per §4.C's standalone
// convention — a standalone ingot has no declared name of its own, only
// the one module inside it does).
func NewStandaloneModule(db *Database, moduleName string, content []byte) diag.Analysis[IngotId] {
	return BuildIngot(db, "", ModeStandalone, []SourceFile{{Path: moduleName + ".fe", Content: content}})
}

// AddExternalDependency registers alias as referring to dep from the
// perspective of ingot. Resolving `use alias::...` paths in ingot's modules
// consults this table, and the alias appears in every one of ingot's
// modules' global scope (§4.D item 1) as an Ingot(dep) entry.
func (db *Database) AddExternalDependency(ingot IngotId, alias string, dep IngotId) {
	if db.ingotExternalDeps[ingot] == nil {
		db.ingotExternalDeps[ingot] = make(map[string]IngotId)
	}
	db.ingotExternalDeps[ingot][alias] = dep
}

// ExternalIngots returns ingot's registered external dependencies as an
// ordered alias -> IngotId view (aliases sorted for determinism, since
// registration order is a caller-side concern this package does not
// track), matching spec's ingot_external_ingots query.
func (db *Database) ExternalIngots(ingot IngotId) *ItemMap {
	return query(db, cacheKey("ExternalIngots", ingot), func() *ItemMap {
		m := NewItemMap()
		deps := db.ingotExternalDeps[ingot]
		names := make([]string, 0, len(deps))
		for alias := range deps {
			names = append(names, alias)
		}
		sort.Strings(names)
		for _, alias := range names {
			m.Set(alias, ItemIngot(deps[alias]))
		}
		return m
	})
}

// IngotModules returns every module belonging to ingot, in the order
// BuildIngot interned them (which is the sorted-file-path order its
// directories and files were walked in), matching spec's ingot_modules
// query.
func (db *Database) IngotModules(ingot IngotId) []ModuleId {
	return append([]ModuleId(nil), db.ingotModules[ingot]...)
}

// RootModule returns the ingot's designated root module (§4.C), and
// whether one was found. An ingot whose required root module is missing
// (§4.G) has no root module; callers must not descend into item
// resolution for such an ingot.
func (db *Database) RootModule(ingot IngotId) (ModuleId, bool) {
	m, ok := db.ingotRootModule[ingot]
	return m, ok
}

// IngotName returns an ingot's declared name.
func (db *Database) IngotName(ingot IngotId) string { return db.ingots.Lookup(ingot).Name }

// IngotMode returns an ingot's declared mode.
func (db *Database) IngotMode(ingot IngotId) IngotMode { return db.ingots.Lookup(ingot).Mode }

// IngotRootItems returns the ingot root's namespace. Per the round-trip
// property in §8, items(Ingot(x)) == items(root_module(x)) exactly: this
// is a thin pass-through to the root module's own full scope, not a
// separate map (the ingot-as-dependency binding and external-dependency
// aliases live in each *module's* global scope, §4.D item 1, not here).
func (db *Database) IngotRootItems(ingot IngotId) *ItemMap {
	root, ok := db.RootModule(ingot)
	if !ok {
		return NewItemMap()
	}
	return db.ModuleAllItems(root)
}

// IngotDiagnostics flattens the diagnostics produced resolving every item
// reachable from ingot's root module, plus the ingot-level "missing root
// module" diagnostic when one applies (§4.G): a rootless ingot reports
// exactly that one diagnostic and descends no further.
func (db *Database) IngotDiagnostics(ingot IngotId) diag.Analysis[struct{}] {
	root, ok := db.RootModule(ingot)
	if !ok {
		word, named := db.IngotMode(ingot).rootName()
		if !named {
			return diag.Ok(struct{}{})
		}
		return diag.WithDiagnostics(struct{}{}, []diag.Diagnostic{diag.Errorf(
			"The ingot named %q is missing a `%s` module. Please add a `src/%s.fe` file to its source directory.",
			db.IngotName(ingot), word, word,
		)})
	}
	var sink diag.List
	db.sinkModuleDiagnostics(root, &sink, map[ModuleId]bool{})
	return diag.WithDiagnostics(struct{}{}, []diag.Diagnostic(sink))
}

// sinkModuleDiagnostics walks m's own diagnostics, its submodules', and
// every item it declares, recursively, matching §4.G's
// "ingot.diagnostics() walks all modules, each module walks its items"
// composition.
func (db *Database) sinkModuleDiagnostics(m ModuleId, sink diag.Sink, seen map[ModuleId]bool) {
	if seen[m] {
		return
	}
	seen[m] = true
	db.ModuleDiagnostics(m).SinkDiagnostics(sink)
	own := db.nonUsedInternalItems(m)
	own.Value.Range(func(_ string, it Item) bool {
		if _, ok := it.AsModule(); ok {
			// submodules are walked once below, in declaration order.
			return true
		}
		if it.Kind() == KindIngot {
			return true
		}
		it.SinkDiagnostics(db, sink)
		return true
	})
	for _, sub := range db.Submodules(m) {
		db.sinkModuleDiagnostics(sub, sink, seen)
	}
}
