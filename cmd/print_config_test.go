package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sgodwincs/cargo-mutants/internal/domain"
)

func runPrintConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	cmd.AddCommand(newPrintConfigCmd())

	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"print-config"}, args...))

	err := cmd.Execute()

	return stdout.String(), err
}

func TestPrintConfigCmd_MergesFileAndFlags(t *testing.T) {
	root := writeWellTested(t, "exclude_globs = [\"src/a.rs\"]\ntimeout_multiplier = 2.0\n")

	stdout, err := runPrintConfig(t, "-d", root, "-e", "src/b.rs", "--timeout-multiplier", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "exclude_globs = ['src/a.rs', 'src/b.rs']")
	assert.Contains(t, stdout, "timeout_multiplier = 3.0")
}

func TestPrintConfigCmd_YAML(t *testing.T) {
	root := writeWellTested(t, "examine_globs = [\"src/*_mod.rs\"]\n")

	stdout, err := runPrintConfig(t, "-d", root, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "examine_globs:\n    - src/*_mod.rs\n")
}

func TestPrintConfigCmd_RejectsInvalidConfig(t *testing.T) {
	root := writeWellTested(t, "wobble = 1\n")

	stdout, err := runPrintConfig(t, "-d", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field `wobble`")
	assert.Empty(t, stdout)
}

func TestPrintConfigCmd_PassesFormat(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	mockWorkflow.On("PrintConfig", mock.Anything, mock.MatchedBy(func(args domain.PrintConfigArgs) bool {
		return args.Format == "yaml"
	})).Return(nil)

	_, err := runPrintConfig(t, "--format", "yaml")
	require.NoError(t, err)
}
