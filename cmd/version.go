package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Print the cargo-mutants build version and the Go toolchain that built it.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println(versionLine(debug.ReadBuildInfo()))
		},
	}
}

// versionLine formats build info as "cargo-mutants <version> (<go version>)".
func versionLine(info *debug.BuildInfo, ok bool) string {
	if !ok || info.Main.Version == "" {
		return "cargo-mutants unknown"
	}

	return fmt.Sprintf("cargo-mutants %s (%s)", info.Main.Version, info.GoVersion)
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
