package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/backup"
)

var (
	backupOut   string
	backupForce bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or import the whole team as a JSON backup",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write team name, roster, lineups, schedule and stats to a JSON file",
	Long: `Write the whole team to a JSON backup file. The file name defaults to
export.backup_file from the config; use --out - for stdout.`,
	Args: cobra.NoArgs,
	RunE: runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Replace all stored data with a JSON backup",
	Long: `Replace the team name, roster, lineups, schedule and stats with the contents
of a backup file. Malformed stat values load as 0. A file that is not valid
JSON is rejected and the current data is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupOut, "out", "o", "", "output file path, or - for stdout")
	backupImportCmd.Flags().BoolVarP(&backupForce, "force", "f", false, "skip confirmation")
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
}

func runBackupExport(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	st, err := s.svc.Snapshot()
	if err != nil {
		return fmt.Errorf("read team: %w", err)
	}

	out := backupOut
	if out == "" {
		out = s.cfg.Export.BackupFile
	}
	if out == "-" {
		return backup.Export(os.Stdout, st)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := backup.Export(f, st); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d players, %d lineups, %d games)\n",
		out, len(st.Players), len(st.Lineups), len(st.Games))
	return nil
}

func runBackupImport(_ *cobra.Command, args []string) error {
	if !backupForce {
		fmt.Fprintf(os.Stderr, "This will replace all stored data with %s.\n", args[0])
		fmt.Fprintln(os.Stderr, "Re-run with --force to confirm.")
		return nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	st, err := backup.Decode(f, os.Stderr)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.Replace(st); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Imported %s: %d players, %d lineups, %d games\n",
		st.TeamName, len(st.Players), len(st.Lineups), len(st.Games))
	return nil
}
