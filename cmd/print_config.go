package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sgodwincs/cargo-mutants/internal/domain"
)

var printConfigFormatFlag string

// printConfigCmd represents the print-config command.
var printConfigCmd = newPrintConfigCmd()

func newPrintConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print-config",
		Short: "Print the effective configuration",
		Long: `Print the options that a run would use: .cargo/mutants.toml validated and
merged with the command line.

` + globsHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newWorkflow(cmd).PrintConfig(cmd.Context(), domain.PrintConfigArgs{
				SelectArgs: selectArgs(),
				Format:     viper.GetString(formatFlagName),
			})
		},
	}

	cmd.Flags().StringVar(&printConfigFormatFlag, formatFlagName, defaultFormat, "output format: toml or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatFlagName)

	return cmd
}

func init() {
	rootCmd.AddCommand(printConfigCmd)
}
