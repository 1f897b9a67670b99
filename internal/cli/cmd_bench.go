package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/sqlsift/sqlsift"
)

func benchCommand() *cobra.Command {
	b := &siftBench{rows: []int{200, 2000, 20000}}

	cmd := &cobra.Command{
		Use:          "bench [flags]",
		Short:        "Time the sanitizer on generated multi-row INSERT statements",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return b.Run()
		},
	}

	cmd.Flags().IntSliceVar(&b.rows, "rows", b.rows, "Row counts to generate and time.")

	return cmd
}

type siftBench struct {
	rows []int
}

func (b *siftBench) Run() error {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

	for _, rows := range b.rows {
		stmt := multiRowInsert(rows)
		start := time.Now()
		out := sqlsift.SanitizeText(stmt)
		elapsed := time.Since(start)

		level.Info(logger).Log("msg", "sanitized multi-row insert",
			"rows", rows, "bytes_in", len(stmt), "bytes_out", len(out), "elapsed", elapsed)
	}
	return nil
}

func multiRowInsert(rows int) string {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO "table_name" ("one", "two", "three") VALUES `)
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&sb, "(%d, %d, %d),", i, i+1, i+2)
	}
	sb.WriteString("(0, 0, 0);")
	return sb.String()
}
