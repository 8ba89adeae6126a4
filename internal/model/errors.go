package model

import "fmt"

// ConfigErrorKind classifies configuration failures.
type ConfigErrorKind int

const (
	// ConfigSyntax means the document is not valid TOML.
	ConfigSyntax ConfigErrorKind = iota
	// ConfigSchema means the document has an unknown field or a bad value.
	ConfigSchema
	// GlobPattern means a glob pattern is malformed.
	GlobPattern
)

// String returns a short label for the kind.
func (k ConfigErrorKind) String() string {
	switch k {
	case ConfigSyntax:
		return "syntax"
	case ConfigSchema:
		return "schema"
	case GlobPattern:
		return "glob pattern"
	}

	return "unknown"
}

// ConfigError reports an invalid configuration value, either in the project
// config file (Path set) or on the command line (Path empty, Field is the flag).
type ConfigError struct {
	Kind  ConfigErrorKind
	Path  Path
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid command-line option --%s: %v", e.Field, e.Err)
	}

	return fmt.Sprintf("parse toml from %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// DiscoveryError reports a failure while walking the source tree.
type DiscoveryError struct {
	Path Path
	Err  error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover source files at %s: %v", e.Path, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}
