package domain

import (
	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// MergeOptions combines file-supplied options with command-line overrides.
//
// List options are the union of the file values followed by the command-line
// values, keeping the first occurrence of duplicates. A scalar given on the
// command line replaces the file value. Overrides are validated the same way
// the config file is.
func MergeOptions(file m.Options, overrides m.Settings) (m.Options, error) {
	if err := validateSettings(overrides, "", flagSettingNames); err != nil {
		return m.Options{}, err
	}

	base := file.Settings()

	merged := m.Settings{
		ExcludeGlobs:            union(base.ExcludeGlobs, overrides.ExcludeGlobs),
		ExamineGlobs:            union(base.ExamineGlobs, overrides.ExamineGlobs),
		ExcludeRe:               union(base.ExcludeRe, overrides.ExcludeRe),
		ExamineRe:               union(base.ExamineRe, overrides.ExamineRe),
		AdditionalCargoArgs:     union(base.AdditionalCargoArgs, overrides.AdditionalCargoArgs),
		AdditionalCargoTestArgs: union(base.AdditionalCargoTestArgs, overrides.AdditionalCargoTestArgs),
		ErrorValues:             union(base.ErrorValues, overrides.ErrorValues),
		TimeoutMultiplier:       override(base.TimeoutMultiplier, overrides.TimeoutMultiplier),
		BuildTimeoutMultiplier:  override(base.BuildTimeoutMultiplier, overrides.BuildTimeoutMultiplier),
		MinimumTestTimeout:      override(base.MinimumTestTimeout, overrides.MinimumTestTimeout),
		TestTool:                base.TestTool,
	}

	if overrides.TestTool != "" {
		merged.TestTool = overrides.TestTool
	}

	return m.NewOptions(merged), nil
}

func union(lists ...[]string) []string {
	var out []string

	seen := make(map[string]struct{})

	for _, list := range lists {
		for _, value := range list {
			if _, ok := seen[value]; ok {
				continue
			}

			seen[value] = struct{}{}
			out = append(out, value)
		}
	}

	return out
}

func override[T any](base, top *T) *T {
	if top != nil {
		return top
	}

	return base
}
