package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd erases every table in the team database.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Erase all team data (factory reset)",
	Long:  "Permanently erase the team name, roster, lineups, schedule and stats. Export a backup first if you may want them back.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(_ *cobra.Command, _ []string) error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will erase all team data in: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.FactoryReset(); err != nil {
		return fmt.Errorf("factory reset: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Erased: %s\n", dbPath)
	return nil
}
