package adapter

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

func loadConfig(t *testing.T, content string) (*m.Settings, string, error) {
	t.Helper()

	root := t.TempDir()
	path := filepath.Join(root, ".cargo", "mutants.toml")
	writeTestFile(t, path, content)

	settings, err := NewTOMLConfigStore(NewLocalSourceFSAdapter()).Load(m.Path(root))

	return settings, path, err
}

func TestTOMLConfigStore_Path(t *testing.T) {
	store := NewTOMLConfigStore(NewLocalSourceFSAdapter())
	assert.Equal(t, m.Path(filepath.Join("proj", ".cargo", "mutants.toml")), store.Path("proj"))
}

func TestTOMLConfigStore_LoadMissingFile(t *testing.T) {
	settings, err := NewTOMLConfigStore(NewLocalSourceFSAdapter()).Load(m.Path(t.TempDir()))
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestTOMLConfigStore_LoadEmptyFile(t *testing.T) {
	settings, _, err := loadConfig(t, "")
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Empty(t, settings.ExcludeGlobs)
	assert.Nil(t, settings.TimeoutMultiplier)
}

func TestTOMLConfigStore_LoadValues(t *testing.T) {
	settings, _, err := loadConfig(t, "# comment\nexclude_globs = [\"src/*_mod.rs\", \"src/a.rs\"]\nminimum_test_timeout = 5\n")
	require.NoError(t, err)
	require.NotNil(t, settings)

	assert.Equal(t, []string{"src/*_mod.rs", "src/a.rs"}, settings.ExcludeGlobs)
	require.NotNil(t, settings.MinimumTestTimeout)
	assert.Equal(t, 5.0, *settings.MinimumTestTimeout)
}

func TestTOMLConfigStore_SyntaxError(t *testing.T) {
	_, path, err := loadConfig(t, "what even is this?\n")
	require.Error(t, err)

	var configErr *m.ConfigError
	require.True(t, errors.As(err, &configErr))
	assert.Equal(t, m.ConfigSyntax, configErr.Kind)
	assert.Empty(t, configErr.Field)
	assert.True(t, strings.HasPrefix(err.Error(), "parse toml from "+path+": "), err.Error())
}

func TestTOMLConfigStore_UnknownFields(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		_, _, err := loadConfig(t, "wobble = false\n")
		require.Error(t, err)

		var configErr *m.ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, m.ConfigSchema, configErr.Kind)
		assert.Equal(t, "wobble", configErr.Field)
		assert.Contains(t, err.Error(), "unknown field `wobble` at line 1")
		assert.Contains(t, err.Error(), "`exclude_globs`")
		assert.Contains(t, err.Error(), "`examine_globs`")
	})

	t.Run("every unknown key is named", func(t *testing.T) {
		_, _, err := loadConfig(t, "wobble = 1\nexclude_globs = []\nwibble = 2\n")
		require.Error(t, err)

		var configErr *m.ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "wobble", configErr.Field)
		assert.Contains(t, err.Error(), "unknown field `wobble`")
		assert.Contains(t, err.Error(), "unknown field `wibble` at line 3")
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		for _, key := range []string{"Exclude_Globs", "EXCLUDE_GLOBS", "examine_Globs", "Test_Tool"} {
			t.Run(key, func(t *testing.T) {
				_, _, err := loadConfig(t, key+" = []\n")
				require.Error(t, err)

				var configErr *m.ConfigError
				require.True(t, errors.As(err, &configErr))
				assert.Equal(t, m.ConfigSchema, configErr.Kind)
				assert.Equal(t, key, configErr.Field)
				assert.Contains(t, err.Error(), "unknown field `"+key+"`")
			})
		}
	})

	t.Run("case variant next to the real key", func(t *testing.T) {
		_, _, err := loadConfig(t, "exclude_globs = [\"a\"]\nEXCLUDE_GLOBS = [\"b\"]\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field `EXCLUDE_GLOBS` at line 2 column 1")
	})

	t.Run("reported before type errors", func(t *testing.T) {
		_, _, err := loadConfig(t, "exclude_globs = 3\nwobble = 1\n")
		require.Error(t, err)

		var configErr *m.ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "wobble", configErr.Field)
		assert.Contains(t, err.Error(), "unknown field `wobble` at line 2")
		assert.NotContains(t, err.Error(), "invalid type")
	})

	t.Run("dotted keys", func(t *testing.T) {
		_, _, err := loadConfig(t, "wobble.inner = 1\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field `wobble.inner`")
	})

	t.Run("table header", func(t *testing.T) {
		_, _, err := loadConfig(t, "exclude_globs = []\n\n[mutants]\nexamine_globs = []\n")
		require.Error(t, err)

		var configErr *m.ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "mutants", configErr.Field)
		assert.Contains(t, err.Error(), "unknown field `mutants` at line 3")
		assert.NotContains(t, err.Error(), "unknown field `examine_globs`")
	})
}

func TestTOMLConfigStore_WrongType(t *testing.T) {
	tests := []struct {
		content string
		field   string
		detail  string
	}{
		{"exclude_globs = \"src/*\"\n", "exclude_globs", "expected an array of strings, found string"},
		{"exclude_globs = [1, 2]\n", "exclude_globs", "expected an array of strings, found an array containing integer"},
		{"examine_globs = 3\n", "examine_globs", "expected an array of strings, found integer"},
		{"timeout_multiplier = \"fast\"\n", "timeout_multiplier", "expected a number, found string"},
		{"minimum_test_timeout = true\n", "minimum_test_timeout", "expected a number, found boolean"},
		{"test_tool = 5\n", "test_tool", "expected a string, found integer"},
		{"[exclude_globs]\nx = 1\n", "exclude_globs", "expected an array of strings, found table"},
		{"error_values.x = \"y\"\n", "error_values", "expected an array of strings, found table"},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			_, path, err := loadConfig(t, tt.content)
			require.Error(t, err)

			var configErr *m.ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, m.ConfigSchema, configErr.Kind)
			assert.Equal(t, tt.field, configErr.Field)
			assert.Contains(t, err.Error(), "parse toml from "+path)
			assert.Contains(t, err.Error(), "invalid type for field `"+tt.field+"`: "+tt.detail)
			assert.NotContains(t, err.Error(), "configDocument")
		})
	}
}

func TestTOMLConfigStore_IntegerForNumberField(t *testing.T) {
	settings, _, err := loadConfig(t, "timeout_multiplier = 3\n")
	require.NoError(t, err)
	require.NotNil(t, settings.TimeoutMultiplier)
	assert.Equal(t, 3.0, *settings.TimeoutMultiplier)
}

func TestTOMLConfigStore_ReadError(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".cargo", "mutants.toml", "oops"), "")

	_, err := NewTOMLConfigStore(NewLocalSourceFSAdapter()).Load(m.Path(root))
	require.Error(t, err)

	var configErr *m.ConfigError
	assert.False(t, errors.As(err, &configErr))
	assert.Contains(t, err.Error(), "read config ")
}

func TestTOMLConfigStore_Encode(t *testing.T) {
	store := NewTOMLConfigStore(NewLocalSourceFSAdapter())
	two := 2.0
	settings := m.Settings{
		ExcludeGlobs:      []string{"src/a.rs"},
		TimeoutMultiplier: &two,
		TestTool:          m.TestToolNextest,
	}

	t.Run("toml round trips", func(t *testing.T) {
		content, err := store.Encode(settings, "toml")
		require.NoError(t, err)
		assert.Contains(t, string(content), "exclude_globs = ['src/a.rs']")
		assert.Contains(t, string(content), "examine_globs = []")
		assert.Contains(t, string(content), "test_tool = 'nextest'")
		assert.NotContains(t, string(content), "minimum_test_timeout")

		doc, err := decodeConfigDocument("mutants.toml", content)
		require.NoError(t, err)
		assert.Equal(t, settings.ExcludeGlobs, doc.settings().ExcludeGlobs)
		assert.Equal(t, settings.TimeoutMultiplier, doc.settings().TimeoutMultiplier)
		assert.Equal(t, settings.TestTool, doc.settings().TestTool)
	})

	t.Run("yaml", func(t *testing.T) {
		content, err := store.Encode(settings, "YAML")
		require.NoError(t, err)
		assert.Contains(t, string(content), "exclude_globs:\n    - src/a.rs\n")
		assert.Contains(t, string(content), "timeout_multiplier: 2\n")
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := store.Encode(settings, "ini")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unsupported config format "ini"`)
	})
}

func TestRecognizedFields_MatchSchema(t *testing.T) {
	docType := reflect.TypeOf(configDocument{})

	var tags []string
	for i := range docType.NumField() {
		tag := docType.Field(i).Tag.Get("toml")
		tags = append(tags, strings.Split(tag, ",")[0])
	}

	assert.Equal(t, tags, RecognizedFields())
	assert.Len(t, fieldTypes, len(tags))

	for _, tag := range tags {
		assert.Contains(t, fieldTypes, tag)
	}

	fields := RecognizedFields()
	fields[0] = "mutated"
	assert.NotEqual(t, "mutated", RecognizedFields()[0])
}
