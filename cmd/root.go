// Package cmd provides the root command and CLI setup for cargo-mutants.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sgodwincs/cargo-mutants/internal/adapter"
	"github.com/sgodwincs/cargo-mutants/internal/controller"
	"github.com/sgodwincs/cargo-mutants/internal/domain"
	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var configStore adapter.ConfigStore
var mutantCounter adapter.MutantCounter

// newWorkflow builds the workflow for one command, printing to its output.
// Tests replace it to inject a mock.
var newWorkflow = func(cmd *cobra.Command) domain.Workflow {
	out := cmd.OutOrStdout()

	return domain.NewWorkflow(
		fsAdapter,
		configStore,
		mutantCounter,
		controller.NewSimpleReporter(out, controller.IsTTY(out)),
	)
}

var (
	dirFlag                    string
	excludeGlobsFlag           []string
	examineGlobsFlag           []string
	excludeReFlag              []string
	examineReFlag              []string
	cargoArgsFlag              []string
	cargoTestArgsFlag          []string
	errorValuesFlag            []string
	timeoutMultiplierFlag      float64
	buildTimeoutMultiplierFlag float64
	minimumTestTimeoutFlag     float64
	testToolFlag               string
	noConfigFlag               bool
	logFileFlag                string
	verboseFlag                bool
	listFilesFlag              bool
	listFlag                   bool
	jobsFlag                   int
)

func init() {
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	configStore = adapter.NewTOMLConfigStore(fsAdapter)
	mutantCounter = adapter.NewFnItemCounter(fsAdapter)
}

const globsHelp = `Glob patterns are matched against paths relative to the project root,
using forward slashes: '*' matches within one path segment and '**' matches
across segments. Options in .cargo/mutants.toml are combined with the
command line: lists are joined (file values first), scalars are replaced.`

const rootLongDescription = `cargo-mutants finds the source files of a Rust project that mutation
testing should operate on. It reads .cargo/mutants.toml from the project root,
rejecting unknown fields, and filters the source tree with examine_globs and
exclude_globs.

` + globsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cargo-mutants",
		Short:        "Select source files for mutation testing",
		Long:         rootLongDescription,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			switch {
			case listFilesFlag:
				return newWorkflow(cmd).ListFiles(ctx, selectArgs())
			case listFlag:
				return newWorkflow(cmd).List(ctx, domain.ListArgs{
					SelectArgs: selectArgs(),
					Jobs:       viper.GetInt(jobsFlagName),
				})
			}

			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&dirFlag, dirFlagName, "d", defaultDir, "project root directory")
	bindFlagToConfig(flags.Lookup(dirFlagName), dirFlagName)

	flags.StringArrayVarP(&examineGlobsFlag, examineFlagName, "f", nil, "examine only files matching glob (can be repeated)")
	bindFlagToConfig(flags.Lookup(examineFlagName), examineFlagName)

	flags.StringArrayVarP(&excludeGlobsFlag, excludeFlagName, "e", nil, "exclude files matching glob (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeFlagName)

	flags.StringArrayVarP(&examineReFlag, examineReFlagName, "F", nil, "examine only mutants whose name matches regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(examineReFlagName), examineReFlagName)

	flags.StringArrayVarP(&excludeReFlag, excludeReFlagName, "E", nil, "exclude mutants whose name matches regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeReFlagName), excludeReFlagName)

	flags.StringArrayVar(&cargoArgsFlag, cargoArgFlagName, nil, "additional argument for cargo (can be repeated)")
	bindFlagToConfig(flags.Lookup(cargoArgFlagName), cargoArgFlagName)

	flags.StringArrayVar(&cargoTestArgsFlag, cargoTestArgFlagName, nil, "additional argument for cargo test (can be repeated)")
	bindFlagToConfig(flags.Lookup(cargoTestArgFlagName), cargoTestArgFlagName)

	flags.StringArrayVar(&errorValuesFlag, errorValueFlagName, nil, "error value to try for functions returning Result (can be repeated)")
	bindFlagToConfig(flags.Lookup(errorValueFlagName), errorValueFlagName)

	flags.Float64Var(&timeoutMultiplierFlag, timeoutMultiplierFlagName, 0, "test timeout as a multiple of the baseline test time")
	bindFlagToConfig(flags.Lookup(timeoutMultiplierFlagName), timeoutMultiplierFlagName)

	flags.Float64Var(&buildTimeoutMultiplierFlag, buildTimeoutMultiplierFlagName, 0, "build timeout as a multiple of the baseline build time")
	bindFlagToConfig(flags.Lookup(buildTimeoutMultiplierFlagName), buildTimeoutMultiplierFlagName)

	flags.Float64Var(&minimumTestTimeoutFlag, minimumTestTimeoutFlagName, 0, "minimum test timeout in seconds")
	bindFlagToConfig(flags.Lookup(minimumTestTimeoutFlagName), minimumTestTimeoutFlagName)

	flags.StringVar(&testToolFlag, testToolFlagName, "", "test tool: cargo or nextest")
	bindFlagToConfig(flags.Lookup(testToolFlagName), testToolFlagName)

	flags.BoolVar(&noConfigFlag, noConfigFlagName, false, "ignore .cargo/mutants.toml")
	bindFlagToConfig(flags.Lookup(noConfigFlagName), noConfigFlagName)

	flags.StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "write logs to this file (rotated)")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)

	cmd.Flags().BoolVar(&listFilesFlag, listFilesFlagName, false, "list the selected source files, one per line")
	cmd.Flags().BoolVar(&listFlag, listFlagName, false, "list the selected source files with their mutant counts")
	cmd.MarkFlagsMutuallyExclusive(listFilesFlagName, listFlagName)

	cmd.Flags().IntVarP(&jobsFlag, jobsFlagName, "j", defaultJobs, "number of files counted in parallel by --list")
	bindFlagToConfig(cmd.Flags().Lookup(jobsFlagName), jobsFlagName)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// selectArgs collects the selection inputs from flags and environment.
func selectArgs() domain.SelectArgs {
	return domain.SelectArgs{
		Root:      m.Path(viper.GetString(dirFlagName)),
		Overrides: overridesFromConfig(),
		NoConfig:  viper.GetBool(noConfigFlagName),
	}
}

func overridesFromConfig() m.Settings {
	return m.Settings{
		ExcludeGlobs:            viper.GetStringSlice(excludeFlagName),
		ExamineGlobs:            viper.GetStringSlice(examineFlagName),
		ExcludeRe:               viper.GetStringSlice(excludeReFlagName),
		ExamineRe:               viper.GetStringSlice(examineReFlagName),
		AdditionalCargoArgs:     viper.GetStringSlice(cargoArgFlagName),
		AdditionalCargoTestArgs: viper.GetStringSlice(cargoTestArgFlagName),
		ErrorValues:             viper.GetStringSlice(errorValueFlagName),
		TimeoutMultiplier:       floatIfSet(timeoutMultiplierFlagName),
		BuildTimeoutMultiplier:  floatIfSet(buildTimeoutMultiplierFlagName),
		MinimumTestTimeout:      floatIfSet(minimumTestTimeoutFlagName),
		TestTool:                m.TestTool(viper.GetString(testToolFlagName)),
	}
}

// floatIfSet returns nil unless the flag was given or its env var is set.
func floatIfSet(key string) *float64 {
	if !viper.IsSet(key) {
		return nil
	}

	v := viper.GetFloat64(key)

	return &v
}

// cargoSubcommandArgs drops the "mutants" argument cargo passes when the
// binary runs as `cargo mutants`.
func cargoSubcommandArgs(args []string) []string {
	if len(args) > 0 && args[0] == "mutants" {
		return args[1:]
	}

	return args
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetArgs(cargoSubcommandArgs(os.Args[1:]))

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
