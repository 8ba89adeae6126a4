// Package domain contains the source selection pipeline: configuration
// loading and merging, source discovery and glob filtering.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sgodwincs/cargo-mutants/internal/adapter"
	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// ConfigLoader turns the project config file into validated Options.
type ConfigLoader interface {
	// LoadOptions returns default Options when the project has no config
	// file. Any syntax, schema or pattern problem fails the whole load.
	LoadOptions(ctx context.Context, root m.Path) (m.Options, error)
}

type configLoader struct {
	adapter.ConfigStore
}

// NewConfigLoader creates a ConfigLoader backed by store.
func NewConfigLoader(store adapter.ConfigStore) ConfigLoader {
	return &configLoader{ConfigStore: store}
}

func (l *configLoader) LoadOptions(ctx context.Context, root m.Path) (m.Options, error) {
	if err := ctx.Err(); err != nil {
		return m.Options{}, err
	}

	path := l.Path(root)

	settings, err := l.Load(root)
	if err != nil {
		return m.Options{}, err
	}

	if settings == nil {
		slog.Debug("no config file, using defaults", "path", path)
		return m.NewOptions(m.Settings{}), nil
	}

	if err := validateSettings(*settings, path, fileSettingNames); err != nil {
		return m.Options{}, err
	}

	slog.Debug("loaded config file", "path", path,
		"examine_globs", settings.ExamineGlobs, "exclude_globs", settings.ExcludeGlobs)

	return m.NewOptions(*settings), nil
}

// settingNames holds how each validated option is named where it came from.
type settingNames struct {
	excludeGlobs           string
	examineGlobs           string
	excludeRe              string
	examineRe              string
	timeoutMultiplier      string
	buildTimeoutMultiplier string
	minimumTestTimeout     string
	testTool               string
}

var fileSettingNames = settingNames{
	excludeGlobs:           "exclude_globs",
	examineGlobs:           "examine_globs",
	excludeRe:              "exclude_re",
	examineRe:              "examine_re",
	timeoutMultiplier:      "timeout_multiplier",
	buildTimeoutMultiplier: "build_timeout_multiplier",
	minimumTestTimeout:     "minimum_test_timeout",
	testTool:               "test_tool",
}

// flagSettingNames are the command-line flag names of the same options.
var flagSettingNames = settingNames{
	excludeGlobs:           "exclude",
	examineGlobs:           "file",
	excludeRe:              "exclude-re",
	examineRe:              "re",
	timeoutMultiplier:      "timeout-multiplier",
	buildTimeoutMultiplier: "build-timeout-multiplier",
	minimumTestTimeout:     "minimum-test-timeout",
	testTool:               "test-tool",
}

var errNegative = errors.New("must be a non-negative number")

// validateSettings checks values that decode fine but are still unusable.
// path is empty for command-line values.
func validateSettings(s m.Settings, path m.Path, names settingNames) error {
	if err := validateGlobs(s.ExamineGlobs, path, names.examineGlobs); err != nil {
		return err
	}

	if err := validateGlobs(s.ExcludeGlobs, path, names.excludeGlobs); err != nil {
		return err
	}

	if err := validateRegexes(s.ExamineRe, path, names.examineRe); err != nil {
		return err
	}

	if err := validateRegexes(s.ExcludeRe, path, names.excludeRe); err != nil {
		return err
	}

	scalars := []struct {
		name  string
		value *float64
	}{
		{names.timeoutMultiplier, s.TimeoutMultiplier},
		{names.buildTimeoutMultiplier, s.BuildTimeoutMultiplier},
		{names.minimumTestTimeout, s.MinimumTestTimeout},
	}

	for _, scalar := range scalars {
		if scalar.value == nil {
			continue
		}

		v := *scalar.value
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return &m.ConfigError{
				Kind:  m.ConfigSchema,
				Path:  path,
				Field: scalar.name,
				Err:   fmt.Errorf("invalid value %v for `%s`: %w", v, scalar.name, errNegative),
			}
		}
	}

	if !s.TestTool.Valid() {
		return &m.ConfigError{
			Kind:  m.ConfigSchema,
			Path:  path,
			Field: names.testTool,
			Err: fmt.Errorf("unknown variant `%s` for `%s`, expected `%s` or `%s`",
				s.TestTool, names.testTool, m.TestToolCargo, m.TestToolNextest),
		}
	}

	return nil
}

func validateGlobs(patterns []string, path m.Path, field string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return &m.ConfigError{
				Kind:  m.GlobPattern,
				Path:  path,
				Field: field,
				Err:   fmt.Errorf("invalid glob %q in `%s`: %w", pattern, field, doublestar.ErrBadPattern),
			}
		}
	}

	return nil
}

func validateRegexes(patterns []string, path m.Path, field string) error {
	for _, pattern := range patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return &m.ConfigError{
				Kind:  m.ConfigSchema,
				Path:  path,
				Field: field,
				Err:   fmt.Errorf("invalid regex %q in `%s`: %w", pattern, field, err),
			}
		}
	}

	return nil
}
