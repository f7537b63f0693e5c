package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/report"
	"github.com/pable/go-dugout/internal/stats"
)

var statsClearForce bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Record and view batting stats",
	Long: `Record cumulative counting stats per player. Fields:
  AB H 2B 3B HR BB SO R RBI SB HBP SF
Counters never go below zero.`,
}

var statsShowCmd = &cobra.Command{
	Use:   "show <player>",
	Short: "Show one player's counters and AVG/OBP/SLG/OPS",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatsShow,
}

var statsAddCmd = &cobra.Command{
	Use:   "add <player> <field> [delta]",
	Short: "Add delta (default 1, may be negative) to a counter",
	Example: `  dugout stats add 7 H
  dugout stats add ana AB 4
  dugout stats add ana SO -1`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runStatsAdd,
}

var statsSetCmd = &cobra.Command{
	Use:   "set <player> <field> <value>",
	Short: "Set a counter to an absolute value (negative values store 0)",
	Args:  cobra.ExactArgs(3),
	RunE:  runStatsSet,
}

var statsResetCmd = &cobra.Command{
	Use:   "reset <player>",
	Short: "Zero one player's counters",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatsReset,
}

var statsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase every player's stats",
	Args:  cobra.NoArgs,
	RunE:  runStatsClear,
}

var statsTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show the team stats table",
	Args:  cobra.NoArgs,
	RunE:  runStatsTable,
}

func init() {
	statsClearCmd.Flags().BoolVarP(&statsClearForce, "force", "f", false, "skip confirmation")
	statsCmd.AddCommand(statsShowCmd, statsAddCmd, statsSetCmd, statsResetCmd, statsClearCmd, statsTableCmd)
}

func parseFieldArg(s string) (stats.Field, error) {
	return stats.ParseField(strings.ToUpper(strings.TrimSpace(s)))
}

func runStatsShow(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.svc.ResolvePlayer(args[0])
	if err != nil {
		return err
	}
	ps, err := s.svc.PlayerStats(p.ID)
	if err != nil {
		return err
	}
	report.PrintPlayerStats(os.Stdout, ps)
	return nil
}

func runStatsAdd(_ *cobra.Command, args []string) error {
	f, err := parseFieldArg(args[1])
	if err != nil {
		return err
	}
	delta := 1
	if len(args) == 3 {
		if delta, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("invalid delta %q", args[2])
		}
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.svc.ResolvePlayer(args[0])
	if err != nil {
		return err
	}
	line, err := s.svc.AdjustStat(p.ID, f, delta)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s %s = %d\n", p.Name, f, line.Get(f))
	return nil
}

func runStatsSet(_ *cobra.Command, args []string) error {
	f, err := parseFieldArg(args[1])
	if err != nil {
		return err
	}
	value, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid value %q", args[2])
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.svc.ResolvePlayer(args[0])
	if err != nil {
		return err
	}
	line, err := s.svc.SetStat(p.ID, f, value)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s %s = %d\n", p.Name, f, line.Get(f))
	return nil
}

func runStatsReset(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.svc.ResolvePlayer(args[0])
	if err != nil {
		return err
	}
	if err := s.svc.ResetStats(p.ID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Reset stats for %s\n", p.Name)
	return nil
}

func runStatsClear(_ *cobra.Command, _ []string) error {
	if !statsClearForce {
		fmt.Fprintln(os.Stderr, "This will erase the stats of every player.")
		fmt.Fprintln(os.Stderr, "Re-run with --force to confirm.")
		return nil
	}
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.ClearAllStats(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "All stats cleared.")
	return nil
}

func runStatsTable(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	rows, err := s.svc.TeamStats()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "No players yet. Run 'dugout roster add <name>' to add one.")
		return nil
	}
	report.PrintStatsTable(os.Stdout, rows)
	return nil
}
