package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

func ptr(v float64) *float64 {
	return &v
}

func TestMergeOptions_UnionsLists(t *testing.T) {
	file := m.NewOptions(m.Settings{
		ExcludeGlobs:        []string{"src/a.rs", "src/b.rs"},
		AdditionalCargoArgs: []string{"--release"},
	})

	merged, err := MergeOptions(file, m.Settings{
		ExcludeGlobs:        []string{"src/b.rs", "src/c.rs"},
		ExamineGlobs:        []string{"src/*"},
		AdditionalCargoArgs: []string{"--offline"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/a.rs", "src/b.rs", "src/c.rs"}, merged.ExcludeGlobs())
	assert.Equal(t, []string{"src/*"}, merged.ExamineGlobs())
	assert.Equal(t, []string{"--release", "--offline"}, merged.AdditionalCargoArgs())
}

func TestMergeOptions_FileOnlyUnchanged(t *testing.T) {
	settings := m.Settings{
		ExamineGlobs:      []string{"src/*_mod.rs"},
		ErrorValues:       []string{"anyhow!(\"mutant\")"},
		TimeoutMultiplier: ptr(2),
		TestTool:          m.TestToolNextest,
	}

	merged, err := MergeOptions(m.NewOptions(settings), m.Settings{})
	require.NoError(t, err)
	assert.Equal(t, settings, merged.Settings())
}

func TestMergeOptions_ScalarsOverride(t *testing.T) {
	file := m.NewOptions(m.Settings{TimeoutMultiplier: ptr(2), MinimumTestTimeout: ptr(20), TestTool: m.TestToolCargo})

	merged, err := MergeOptions(file, m.Settings{TimeoutMultiplier: ptr(5), TestTool: m.TestToolNextest})
	require.NoError(t, err)

	timeout, ok := merged.TimeoutMultiplier()
	assert.True(t, ok)
	assert.Equal(t, 5.0, timeout)

	minimum, ok := merged.MinimumTestTimeout()
	assert.True(t, ok)
	assert.Equal(t, 20.0, minimum)

	_, ok = merged.BuildTimeoutMultiplier()
	assert.False(t, ok)

	assert.Equal(t, m.TestToolNextest, merged.TestTool())
}

func TestMergeOptions_RejectsInvalidOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides m.Settings
		kind      m.ConfigErrorKind
		flag      string
	}{
		{"bad glob", m.Settings{ExcludeGlobs: []string{"src/["}}, m.GlobPattern, "exclude"},
		{"bad examine glob", m.Settings{ExamineGlobs: []string{"{a"}}, m.GlobPattern, "file"},
		{"bad regex", m.Settings{ExamineRe: []string{"("}}, m.ConfigSchema, "re"},
		{"negative timeout", m.Settings{MinimumTestTimeout: ptr(-1)}, m.ConfigSchema, "minimum-test-timeout"},
		{"unknown tool", m.Settings{TestTool: "make"}, m.ConfigSchema, "test-tool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MergeOptions(m.NewOptions(m.Settings{}), tt.overrides)
			require.Error(t, err)

			var configErr *m.ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.kind, configErr.Kind)
			assert.Equal(t, tt.flag, configErr.Field)
			assert.Contains(t, err.Error(), "invalid command-line option --"+tt.flag)
		})
	}
}

func TestMergeOptions_ResultIsIndependentOfInputs(t *testing.T) {
	overrides := m.Settings{ExcludeGlobs: []string{"src/a.rs"}}

	merged, err := MergeOptions(m.NewOptions(m.Settings{}), overrides)
	require.NoError(t, err)

	overrides.ExcludeGlobs[0] = "changed"
	got := merged.ExcludeGlobs()
	got[0] = "changed too"

	assert.Equal(t, []string{"src/a.rs"}, merged.ExcludeGlobs())
}
