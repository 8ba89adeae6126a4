package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"

	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// ConfigRelPath is where the project configuration lives, relative to the project root.
const ConfigRelPath = ".cargo/mutants.toml"

// ConfigStore reads and writes the per-project configuration document.
type ConfigStore interface {
	// Path returns the location of the config file for root.
	Path(root m.Path) m.Path

	// Load parses the config file under root. It returns nil settings and no
	// error when the file does not exist. Syntax and schema failures are
	// returned as *model.ConfigError.
	Load(root m.Path) (*m.Settings, error)

	// Encode renders settings in the given format ("toml" or "yaml").
	Encode(settings m.Settings, format string) ([]byte, error)
}

// configDocument is the closed schema of .cargo/mutants.toml.
type configDocument struct {
	AdditionalCargoArgs     []string `toml:"additional_cargo_args" yaml:"additional_cargo_args"`
	AdditionalCargoTestArgs []string `toml:"additional_cargo_test_args" yaml:"additional_cargo_test_args"`
	ErrorValues             []string `toml:"error_values" yaml:"error_values"`
	ExamineGlobs            []string `toml:"examine_globs" yaml:"examine_globs"`
	ExamineRe               []string `toml:"examine_re" yaml:"examine_re"`
	ExcludeGlobs            []string `toml:"exclude_globs" yaml:"exclude_globs"`
	ExcludeRe               []string `toml:"exclude_re" yaml:"exclude_re"`
	BuildTimeoutMultiplier  *float64 `toml:"build_timeout_multiplier,omitempty" yaml:"build_timeout_multiplier,omitempty"`
	MinimumTestTimeout      *float64 `toml:"minimum_test_timeout,omitempty" yaml:"minimum_test_timeout,omitempty"`
	TimeoutMultiplier       *float64 `toml:"timeout_multiplier,omitempty" yaml:"timeout_multiplier,omitempty"`
	TestTool                string   `toml:"test_tool,omitempty" yaml:"test_tool,omitempty"`
}

// recognizedFields lists the top-level keys of configDocument in tag order.
var recognizedFields = []string{
	"additional_cargo_args",
	"additional_cargo_test_args",
	"error_values",
	"examine_globs",
	"examine_re",
	"exclude_globs",
	"exclude_re",
	"build_timeout_multiplier",
	"minimum_test_timeout",
	"timeout_multiplier",
	"test_tool",
}

// RecognizedFields returns the keys accepted in the config file.
func RecognizedFields() []string {
	out := make([]string, len(recognizedFields))
	copy(out, recognizedFields)

	return out
}

func (d configDocument) settings() m.Settings {
	return m.Settings{
		ExcludeGlobs:            d.ExcludeGlobs,
		ExamineGlobs:            d.ExamineGlobs,
		ExcludeRe:               d.ExcludeRe,
		ExamineRe:               d.ExamineRe,
		AdditionalCargoArgs:     d.AdditionalCargoArgs,
		AdditionalCargoTestArgs: d.AdditionalCargoTestArgs,
		ErrorValues:             d.ErrorValues,
		TimeoutMultiplier:       d.TimeoutMultiplier,
		BuildTimeoutMultiplier:  d.BuildTimeoutMultiplier,
		MinimumTestTimeout:      d.MinimumTestTimeout,
		TestTool:                m.TestTool(d.TestTool),
	}
}

func documentFromSettings(s m.Settings) configDocument {
	return configDocument{
		AdditionalCargoArgs:     nonNil(s.AdditionalCargoArgs),
		AdditionalCargoTestArgs: nonNil(s.AdditionalCargoTestArgs),
		ErrorValues:             nonNil(s.ErrorValues),
		ExamineGlobs:            nonNil(s.ExamineGlobs),
		ExamineRe:               nonNil(s.ExamineRe),
		ExcludeGlobs:            nonNil(s.ExcludeGlobs),
		ExcludeRe:               nonNil(s.ExcludeRe),
		BuildTimeoutMultiplier:  s.BuildTimeoutMultiplier,
		MinimumTestTimeout:      s.MinimumTestTimeout,
		TimeoutMultiplier:       s.TimeoutMultiplier,
		TestTool:                string(s.TestTool),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

// TOMLConfigStore loads .cargo/mutants.toml with a strict decoder.
type TOMLConfigStore struct {
	fs SourceFSAdapter
}

// NewTOMLConfigStore creates a TOMLConfigStore reading through fsAdapter.
func NewTOMLConfigStore(fsAdapter SourceFSAdapter) *TOMLConfigStore {
	return &TOMLConfigStore{fs: fsAdapter}
}

// Path returns root/.cargo/mutants.toml.
func (s *TOMLConfigStore) Path(root m.Path) m.Path {
	return s.fs.JoinPath(string(root), ConfigRelPath)
}

// Load reads and strictly decodes the config file under root.
func (s *TOMLConfigStore) Load(root m.Path) (*m.Settings, error) {
	path := s.Path(root)

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	doc, err := decodeConfigDocument(path, data)
	if err != nil {
		return nil, err
	}

	settings := doc.settings()

	return &settings, nil
}

// decodeConfigDocument parses data in three passes: into a generic table so
// syntax errors are reported on their own, then a key-by-key check of the
// document against the schema, then a strict decode into configDocument.
func decodeConfigDocument(path m.Path, data []byte) (configDocument, error) {
	var table map[string]any
	if err := toml.Unmarshal(data, &table); err != nil {
		return configDocument{}, &m.ConfigError{Kind: m.ConfigSyntax, Path: path, Err: err}
	}

	keys, err := topLevelKeys(data)
	if err != nil {
		return configDocument{}, &m.ConfigError{Kind: m.ConfigSyntax, Path: path, Err: err}
	}

	if unknown := unknownKeys(keys); len(unknown) > 0 {
		return configDocument{}, &m.ConfigError{
			Kind:  m.ConfigSchema,
			Path:  path,
			Field: unknown[0].name,
			Err:   unknownFieldsError(unknown),
		}
	}

	for _, key := range keys {
		if err := checkFieldType(key.root, table[key.root]); err != nil {
			return configDocument{}, &m.ConfigError{Kind: m.ConfigSchema, Path: path, Field: key.root, Err: err}
		}
	}

	var doc configDocument

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&doc); err != nil {
		return configDocument{}, &m.ConfigError{Kind: m.ConfigSchema, Path: path, Err: err}
	}

	return doc, nil
}

// documentKey is a key defined at the top level of the document, either by a
// key/value line or by a table header.
type documentKey struct {
	// name is the full dotted key as written.
	name string
	// root is its first segment, the name of the top-level field.
	root   string
	line   int
	column int
}

// topLevelKeys returns the keys of the root table in document order. Keys
// below a table header belong to that table and are not listed.
func topLevelKeys(data []byte) ([]documentKey, error) {
	var (
		parser  unstable.Parser
		keys    []documentKey
		inTable bool
	)

	parser.Reset(data)

	for parser.NextExpression() {
		expr := parser.Expression()

		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			inTable = true
		case unstable.KeyValue:
			if inTable {
				continue
			}
		default:
			continue
		}

		var (
			parts []string
			first *unstable.Node
		)

		it := expr.Key()
		for it.Next() {
			if first == nil {
				first = it.Node()
			}

			parts = append(parts, string(it.Node().Data))
		}

		if first == nil {
			continue
		}

		start := parser.Shape(first.Raw).Start
		keys = append(keys, documentKey{
			name:   strings.Join(parts, "."),
			root:   parts[0],
			line:   start.Line,
			column: start.Column,
		})
	}

	return keys, parser.Error()
}

// unknownKeys keeps the keys whose field name is not in the schema. Names are
// compared exactly, so case variants of a field are unknown.
func unknownKeys(keys []documentKey) []documentKey {
	var unknown []documentKey

	for _, key := range keys {
		if _, ok := fieldTypes[key.root]; !ok {
			unknown = append(unknown, key)
		}
	}

	return unknown
}

// unknownFieldsError names every unrecognized key, in document order.
func unknownFieldsError(unknown []documentKey) error {
	messages := make([]string, 0, len(unknown))
	for _, key := range unknown {
		messages = append(messages, fmt.Sprintf("unknown field `%s` at line %d column %d", key.name, key.line, key.column))
	}

	expected := make([]string, 0, len(recognizedFields))
	for _, field := range recognizedFields {
		expected = append(expected, "`"+field+"`")
	}

	return fmt.Errorf("%s, expected one of %s", strings.Join(messages, "; "), strings.Join(expected, ", "))
}

type fieldType int

const (
	stringListField fieldType = iota
	numberField
	stringField
)

func (t fieldType) String() string {
	switch t {
	case stringListField:
		return "an array of strings"
	case numberField:
		return "a number"
	case stringField:
		return "a string"
	}

	return "a value"
}

// fieldTypes maps each recognized key to the TOML type it accepts.
var fieldTypes = map[string]fieldType{
	"additional_cargo_args":      stringListField,
	"additional_cargo_test_args": stringListField,
	"error_values":               stringListField,
	"examine_globs":              stringListField,
	"examine_re":                 stringListField,
	"exclude_globs":              stringListField,
	"exclude_re":                 stringListField,
	"build_timeout_multiplier":   numberField,
	"minimum_test_timeout":       numberField,
	"timeout_multiplier":         numberField,
	"test_tool":                  stringField,
}

// checkFieldType reports a value of the wrong TOML type for field.
func checkFieldType(field string, value any) error {
	want := fieldTypes[field]

	ok := false

	switch want {
	case stringListField:
		if list, isList := value.([]any); isList {
			ok = true

			for _, item := range list {
				if _, isString := item.(string); !isString {
					return fmt.Errorf("invalid type for field `%s`: expected %s, found an array containing %s",
						field, want, tomlTypeName(item))
				}
			}
		}
	case numberField:
		switch value.(type) {
		case int64, float64:
			ok = true
		}
	case stringField:
		_, ok = value.(string)
	}

	if !ok {
		return fmt.Errorf("invalid type for field `%s`: expected %s, found %s", field, want, tomlTypeName(value))
	}

	return nil
}

func tomlTypeName(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case int64:
		return "integer"
	case float64:
		return "float"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	case time.Time, toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return "datetime"
	}

	return "value"
}

// Encode renders settings as a config document.
func (s *TOMLConfigStore) Encode(settings m.Settings, format string) ([]byte, error) {
	doc := documentFromSettings(settings)

	switch strings.ToLower(format) {
	case "", "toml":
		return toml.Marshal(doc)
	case "yaml", "yml":
		return yaml.Marshal(doc)
	}

	return nil, fmt.Errorf("unsupported config format %q", format)
}
