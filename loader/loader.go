// Package loader reads a directory tree of source files off disk (or any
// afs.Service-backed storage) into the (path, content) pairs BuildIngot
// consumes. It sits entirely outside the analyzer core: the core's
// required input contract is in-memory source pairs only, per spec's
// explicit file-I/O non-goal.
package loader

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/fegraph/analyzer"
	"github.com/viant/fegraph/diag"
)

// Extension is the file suffix LoadDir treats as source; every other file
// under root is skipped.
const Extension = ".fe"

// LoadDir walks root on fs and returns every Extension file under it as an
// analyzer.SourceFile, path relative to root, sorted for determinism.
// Grounded on analyzer/package.go's fs.Walk(ctx, root, storage.OnVisit)
// pattern and fs.DownloadWithURL read-back.
func LoadDir(ctx context.Context, fs afs.Service, root string) ([]analyzer.SourceFile, error) {
	type found struct{ rel, fullURL string }
	var hits []found

	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if !strings.HasSuffix(info.Name(), Extension) {
			return true, nil
		}
		full := url.Join(url.Join(baseURL, parent), info.Name())
		rel := strings.TrimPrefix(strings.TrimPrefix(full, root), "/")
		hits = append(hits, found{rel: rel, fullURL: full})
		return true, nil
	}
	if err := fs.Walk(ctx, root, visitor); err != nil {
		return nil, err
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].rel < hits[j].rel })

	files := make([]analyzer.SourceFile, 0, len(hits))
	for _, h := range hits {
		content, err := fs.DownloadWithURL(ctx, h.fullURL)
		if err != nil {
			return nil, err
		}
		files = append(files, analyzer.SourceFile{Path: h.rel, Content: content})
	}
	return files, nil
}

// LoadIngot loads root's sources off fs and builds an ingot from them via
// analyzer.BuildIngot. When db's Config has AutoRegisterStd set and no
// standard-library ingot has been registered on db yet, it is loaded first
// from Config.StdIngotPath and recorded with Database.SetStdIngot, so
// BuildIngot's own AutoRegisterStd wiring can bind every subsequently built
// ingot's "std" alias to it — this is the one place in the module that
// actually reads Config.StdIngotPath off disk, since the analyzer core
// itself never does file I/O (spec's explicit non-goal).
func LoadIngot(ctx context.Context, fs afs.Service, db *analyzer.Database, name string, mode analyzer.IngotMode, root string) diag.Analysis[analyzer.IngotId] {
	cfg := db.Config()
	var diags []diag.Diagnostic
	if cfg.AutoRegisterStd && name != "std" {
		if _, ok := db.StdIngot(); !ok {
			stdFiles, err := LoadDir(ctx, fs, cfg.StdIngotPath)
			if err != nil {
				diags = append(diags, diag.Errorf("loading std ingot from %q: %v", cfg.StdIngotPath, err))
			} else {
				stdResult := analyzer.BuildIngot(db, "std", analyzer.ModeLib, stdFiles)
				diags = append(diags, stdResult.Diagnostics...)
				db.SetStdIngot(stdResult.Value)
			}
		}
	}

	files, err := LoadDir(ctx, fs, root)
	if err != nil {
		diags = append(diags, diag.Errorf("loading ingot %q from %q: %v", name, root, err))
		return diag.WithDiagnostics(analyzer.IngotId(0), diags)
	}
	result := analyzer.BuildIngot(db, name, mode, files)
	diags = append(diags, result.Diagnostics...)
	return diag.WithDiagnostics(result.Value, diags)
}
