package analyzer

import (
	"strings"

	"golang.org/x/mod/semver"

	"github.com/viant/fegraph/diag"
)

// CompilerVersion is the version this core identifies as when checking a
// module's `pragma` version constraint. A real front end would thread its
// own release version through here; this core pins one so the check has
// something concrete to compare against.
const CompilerVersion = "v0.1.0"

// ModulePragmaDiagnostics checks every `pragma` statement in m's own body
// against CompilerVersion, matching the original compiler's practice of
// folding a Pragma violation into a module's ordinary diagnostic stream
// rather than treating it as a separate build-time gate.
func (db *Database) ModulePragmaDiagnostics(m ModuleId) diag.Analysis[struct{}] {
	return query(db, cacheKey("ModulePragmaDiagnostics", m), func() diag.Analysis[struct{}] {
		var diags []diag.Diagnostic
		parsed := db.ModuleParse(m)
		for _, stmt := range parsed.Value.Body {
			if stmt.Pragma == nil {
				continue
			}
			if msg := violatesVersionConstraint(stmt.Pragma.VersionConstraint); msg != "" {
				diags = append(diags, diag.At(stmt.Pragma.Span, "Pragma violation: "+msg, stmt.Pragma.VersionConstraint))
			}
		}
		return diag.WithDiagnostics(struct{}{}, diags)
	})
}

// violatesVersionConstraint reports a human-readable violation message, or
// "" if CompilerVersion satisfies constraint. Supported operators: "="
// (default when none given), ">=", ">", "<=", "<", "^" (compatible within
// the same major version), "~" (compatible within the same minor version).
func violatesVersionConstraint(constraint string) string {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return ""
	}
	op, rest := splitConstraintOperator(constraint)
	want := canonicalSemver(rest)
	if !semver.IsValid(want) {
		return "malformed version constraint " + constraint
	}
	cur := CompilerVersion
	cmp := semver.Compare(cur, want)
	switch op {
	case "=":
		if cmp != 0 {
			return "compiler " + cur + " does not match required " + constraint
		}
	case ">=":
		if cmp < 0 {
			return "compiler " + cur + " is older than required " + constraint
		}
	case ">":
		if cmp <= 0 {
			return "compiler " + cur + " does not exceed required " + constraint
		}
	case "<=":
		if cmp > 0 {
			return "compiler " + cur + " is newer than allowed " + constraint
		}
	case "<":
		if cmp >= 0 {
			return "compiler " + cur + " is not older than required " + constraint
		}
	case "^":
		if semver.Major(cur) != semver.Major(want) || cmp < 0 {
			return "compiler " + cur + " is not compatible with " + constraint
		}
	case "~":
		if semver.MajorMinor(cur) != semver.MajorMinor(want) || cmp < 0 {
			return "compiler " + cur + " is not compatible with " + constraint
		}
	}
	return ""
}

func splitConstraintOperator(s string) (op, rest string) {
	for _, candidate := range []string{">=", "<=", "^", "~", ">", "<", "="} {
		if strings.HasPrefix(s, candidate) {
			return candidate, strings.TrimSpace(strings.TrimPrefix(s, candidate))
		}
	}
	return "=", s
}

func canonicalSemver(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
