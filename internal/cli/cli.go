// Package cli implements the sqlsift command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlsift/sqlsift/internal/build"
)

// Run executes the command line interface and returns the process exit
// code.
func Run() int {
	cmd := command()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sqlsift [global options] <subcommand>",
		Short:   "De-identify SQL statements for logging and tracing",
		Version: build.Print("sqlsift"),

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	cmd.SetVersionTemplate("{{ .Version }}\n")

	cmd.AddCommand(
		sanitizeCommand(),
		serveCommand(),
		benchCommand(),
	)

	return cmd
}
