package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/dialect/tables"
)

func newTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect lookup tables",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [path|url]",
		Short: "Load and validate a table document (default: bundled tables)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, src, err := loadTables(cmd.Context(), optionalArg(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source:        %s\n", src.Name())
			fmt.Fprintf(out, "American only: %d\n", len(tbl.AmericanOnly))
			fmt.Fprintf(out, "British only:  %d\n", len(tbl.BritishOnly))
			fmt.Fprintf(out, "Spelling:      %d\n", len(tbl.Spelling))
			fmt.Fprintf(out, "Titles:        %d\n", len(tbl.Titles))
			fmt.Fprintf(out, "Rules:         %d\n", tbl.Len())
			fmt.Fprintf(out, "Fingerprint:   %s\n", tbl.Fingerprint())
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "dump [path|url]",
		Short: "Print normalised tables as YAML (default: bundled tables)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tbl, _, err := loadTables(cmd.Context(), optionalArg(args))
			if err != nil {
				return err
			}
			data, err := tables.Marshal(tbl)
			if err != nil {
				return fmt.Errorf("encoding tables: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return cmd
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
