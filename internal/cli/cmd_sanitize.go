package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlsift/sqlsift"
)

func sanitizeCommand() *cobra.Command {
	s := &siftSanitize{out: os.Stdout}

	cmd := &cobra.Command{
		Use:          "sanitize [flags] [file ...]",
		Short:        "Replace literal values in SQL statements with placeholders",
		Long:         `The sanitize command reads SQL from the given files, or from standard input when no file is given, and writes the de-identified statements to standard output.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			return s.Run(args)
		},
	}

	return cmd
}

type siftSanitize struct {
	out io.Writer
}

func (s *siftSanitize) Run(files []string) error {
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		fmt.Fprintln(s.out, sqlsift.SanitizeText(string(data)))
		return nil
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("reading %s: %w", file, err)
		}
		fmt.Fprintln(s.out, sqlsift.SanitizeText(string(data)))
	}
	return nil
}
