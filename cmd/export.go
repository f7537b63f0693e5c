package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export team stats as CSV",
	Long: `Write the team stats table as CSV: one row per roster player in roster
order with name, number, the twelve counters and AVG/OBP/SLG/OPS to three
decimals. Every field is quoted.

The file name defaults to export.stats_file from the config; use --out - for stdout.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file path, or - for stdout")
}

func runExport(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	out := exportOut
	if out == "" {
		out = s.cfg.Export.StatsFile
	}
	if out == "-" {
		if err := s.svc.ExportCSV(os.Stdout); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
		return nil
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	w := bufio.NewWriter(f)
	if err := s.svc.ExportCSV(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
	return nil
}
