package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sgodwincs/cargo-mutants/internal/domain"
	m "github.com/sgodwincs/cargo-mutants/internal/model"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default .cargo/mutants.toml",
		Long: `Create .cargo/mutants.toml under the project root (--dir) with every
recognized list option present and empty, so it can be edited manually.
An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newWorkflow(cmd).InitConfig(cmd.Context(), domain.InitArgs{
				Root: m.Path(viper.GetString(dirFlagName)),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
