package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/dialect"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", dialect.Name, dialect.FullVersion())
			if dialect.GitCommit != "unknown" && dialect.GitCommit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", dialect.GitCommit)
			}
			if dialect.BuildDate != "unknown" && dialect.BuildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", dialect.BuildDate)
			}
			fmt.Fprintf(out, "Directions:\n")
			for _, d := range dialect.Directions {
				fmt.Fprintf(out, "  %-20s %s\n", d, d.DisplayName())
			}
		},
	}
}
