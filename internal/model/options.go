package model

import "slices"

// TestTool names the program the external engine uses to run tests.
type TestTool string

const (
	// TestToolCargo runs tests with `cargo test`.
	TestToolCargo TestTool = "cargo"
	// TestToolNextest runs tests with `cargo nextest`.
	TestToolNextest TestTool = "nextest"
)

// Valid reports whether t is empty (tool default) or a known tool.
func (t TestTool) Valid() bool {
	switch t {
	case "", TestToolCargo, TestToolNextest:
		return true
	}

	return false
}

// Settings is the plain form of the recognized configuration options.
// Nil scalar pointers and empty lists mean "not set".
type Settings struct {
	ExcludeGlobs            []string
	ExamineGlobs            []string
	ExcludeRe               []string
	ExamineRe               []string
	AdditionalCargoArgs     []string
	AdditionalCargoTestArgs []string
	ErrorValues             []string
	TimeoutMultiplier       *float64
	BuildTimeoutMultiplier  *float64
	MinimumTestTimeout      *float64
	TestTool                TestTool
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	return Settings{
		ExcludeGlobs:            slices.Clone(s.ExcludeGlobs),
		ExamineGlobs:            slices.Clone(s.ExamineGlobs),
		ExcludeRe:               slices.Clone(s.ExcludeRe),
		ExamineRe:               slices.Clone(s.ExamineRe),
		AdditionalCargoArgs:     slices.Clone(s.AdditionalCargoArgs),
		AdditionalCargoTestArgs: slices.Clone(s.AdditionalCargoTestArgs),
		ErrorValues:             slices.Clone(s.ErrorValues),
		TimeoutMultiplier:       clonePtr(s.TimeoutMultiplier),
		BuildTimeoutMultiplier:  clonePtr(s.BuildTimeoutMultiplier),
		MinimumTestTimeout:      clonePtr(s.MinimumTestTimeout),
		TestTool:                s.TestTool,
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

// Options is the validated, effective configuration for one run.
// It is never modified after construction; every accessor returns a copy,
// so an Options value can be shared freely between goroutines.
type Options struct {
	settings Settings
}

// NewOptions freezes a copy of s. Callers are expected to have validated s.
func NewOptions(s Settings) Options {
	return Options{settings: s.Clone()}
}

// Settings returns a deep copy of the underlying values.
func (o Options) Settings() Settings {
	return o.settings.Clone()
}

// ExcludeGlobs returns the glob patterns of files to leave out.
func (o Options) ExcludeGlobs() []string {
	return slices.Clone(o.settings.ExcludeGlobs)
}

// ExamineGlobs returns the glob patterns that restrict selection when non-empty.
func (o Options) ExamineGlobs() []string {
	return slices.Clone(o.settings.ExamineGlobs)
}

// ExcludeRe returns regexes of mutant names the engine should skip.
func (o Options) ExcludeRe() []string {
	return slices.Clone(o.settings.ExcludeRe)
}

// ExamineRe returns regexes of mutant names the engine should keep.
func (o Options) ExamineRe() []string {
	return slices.Clone(o.settings.ExamineRe)
}

// AdditionalCargoArgs returns extra arguments for every cargo invocation.
func (o Options) AdditionalCargoArgs() []string {
	return slices.Clone(o.settings.AdditionalCargoArgs)
}

// AdditionalCargoTestArgs returns extra arguments for `cargo test`.
func (o Options) AdditionalCargoTestArgs() []string {
	return slices.Clone(o.settings.AdditionalCargoTestArgs)
}

// ErrorValues returns expressions the engine may substitute for Err results.
func (o Options) ErrorValues() []string {
	return slices.Clone(o.settings.ErrorValues)
}

// TimeoutMultiplier returns the test timeout multiplier, if set.
func (o Options) TimeoutMultiplier() (float64, bool) {
	return deref(o.settings.TimeoutMultiplier)
}

// BuildTimeoutMultiplier returns the build timeout multiplier, if set.
func (o Options) BuildTimeoutMultiplier() (float64, bool) {
	return deref(o.settings.BuildTimeoutMultiplier)
}

// MinimumTestTimeout returns the minimum test timeout in seconds, if set.
func (o Options) MinimumTestTimeout() (float64, bool) {
	return deref(o.settings.MinimumTestTimeout)
}

// TestTool returns the configured test tool, defaulting to cargo.
func (o Options) TestTool() TestTool {
	if o.settings.TestTool == "" {
		return TestToolCargo
	}

	return o.settings.TestTool
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}

	return *p, true
}
