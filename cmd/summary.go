package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/report"
)

// summaryCmd is the cobra command for displaying a team overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the team",
	Long: `Display the team name, roster size, saved lineups, games played and
scheduled, and the next upcoming game.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ov, err := s.svc.Overview()
	if err != nil {
		return err
	}
	report.PrintTeamSummary(os.Stdout, ov)
	return nil
}
