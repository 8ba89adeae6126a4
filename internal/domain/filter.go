package domain

import (
	"github.com/bmatcuk/doublestar/v4"

	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// FilterSources applies the examine and exclude globs of opts to candidates.
//
// With no examine globs every candidate is kept, otherwise only those matching
// at least one of them. Candidates matching any exclude glob are then dropped.
// Patterns are matched against the whole forward-slash relative path: `*`
// stays within a segment and `**` spans segments.
func FilterSources(candidates []m.SourceFile, opts m.Options) m.Selection {
	examine := opts.ExamineGlobs()
	exclude := opts.ExcludeGlobs()

	kept := make([]m.SourceFile, 0, len(candidates))

	for _, candidate := range candidates {
		path := string(candidate.ShortPath)

		if len(examine) > 0 && !matchesAny(examine, path) {
			continue
		}

		if matchesAny(exclude, path) {
			continue
		}

		kept = append(kept, candidate)
	}

	return m.NewSelection(kept)
}

// matchesAny treats a malformed pattern as matching nothing; patterns are
// validated before they get here.
func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}

	return false
}
