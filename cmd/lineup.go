package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/dugout"
	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/report"
)

var (
	lineupDate     string
	lineupOpponent string
	lineupSave     bool
)

var lineupCmd = &cobra.Command{
	Use:   "lineup",
	Short: "Build and manage batting orders",
}

var lineupSaveCmd = &cobra.Command{
	Use:   "save <player[:pos]>...",
	Short: "Save a batting order",
	Long: `Save a batting order for a game. Each argument is one batter in order:
a player ID, jersey number or unique name prefix, optionally followed by
":POS" for the fielding position.`,
	Example: `  dugout lineup save --date 2025-05-10 --opponent Hawks 7:SS 12:C ana:P`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runLineupSave,
}

var lineupAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Print (or save) a batting order with the whole roster in roster order",
	Args:  cobra.NoArgs,
	RunE:  runLineupAuto,
}

var lineupShowCmd = &cobra.Command{
	Use:   "show [lineup-id]",
	Short: "Show a saved lineup by ID, or by --date and --opponent",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLineupShow,
}

var lineupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved lineups",
	Args:  cobra.NoArgs,
	RunE:  runLineupList,
}

var lineupRmCmd = &cobra.Command{
	Use:   "rm <lineup-id>",
	Short: "Delete a saved lineup",
	Args:  cobra.ExactArgs(1),
	RunE:  runLineupRm,
}

var lineupMoveCmd = &cobra.Command{
	Use:   "move <lineup-id> <from> <to>",
	Short: "Move the batter at slot <from> to slot <to> (1-based)",
	Args:  cobra.ExactArgs(3),
	RunE:  runLineupMove,
}

func init() {
	for _, c := range []*cobra.Command{lineupSaveCmd, lineupAutoCmd, lineupShowCmd} {
		c.Flags().StringVarP(&lineupDate, "date", "d", "", "game date YYYY-MM-DD (default today)")
		c.Flags().StringVarP(&lineupOpponent, "opponent", "o", "", "opponent name")
	}
	lineupAutoCmd.Flags().BoolVar(&lineupSave, "save", false, "save the generated order")

	lineupCmd.AddCommand(lineupSaveCmd, lineupAutoCmd, lineupShowCmd, lineupListCmd, lineupRmCmd, lineupMoveCmd)
}

func runLineupSave(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	order := make([]model.Slot, 0, len(args))
	for _, arg := range args {
		ref, pos, _ := strings.Cut(arg, ":")
		p, err := s.svc.ResolvePlayer(ref)
		if err != nil {
			return err
		}
		order = append(order, model.Slot{PlayerID: p.ID, Pos: strings.ToUpper(strings.TrimSpace(pos))})
	}
	l, err := s.svc.SaveLineup(lineupDate, lineupOpponent, order)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Saved lineup %s (%s)\n", l.Label(), l.ID)
	return nil
}

func runLineupAuto(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	order, err := s.svc.AutoOrder()
	if err != nil {
		return err
	}
	if len(order) == 0 {
		fmt.Fprintln(os.Stderr, "hint: the roster is empty; add players with 'dugout roster add'")
		return nil
	}
	players, err := s.svc.Players()
	if err != nil {
		return err
	}
	report.PrintLineup(os.Stdout, "Auto order", order, players)

	if !lineupSave {
		return nil
	}
	l, err := s.svc.SaveLineup(lineupDate, lineupOpponent, order)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Saved lineup %s (%s)\n", l.Label(), l.ID)
	return nil
}

func runLineupShow(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var l model.Lineup
	if len(args) == 1 {
		if l, err = s.svc.Lineup(args[0]); err != nil {
			return err
		}
	} else {
		if lineupDate == "" || lineupOpponent == "" {
			return fmt.Errorf("give a lineup ID, or both --date and --opponent")
		}
		var ok bool
		l, ok, err = s.svc.FindLineup(lineupDate, lineupOpponent)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "hint: no lineup saved for %s vs %s; build one with 'dugout lineup auto --save'\n",
				lineupDate, lineupOpponent)
			return nil
		}
	}
	players, err := s.svc.Players()
	if err != nil {
		return err
	}
	report.PrintLineup(os.Stdout, l.Label(), l.Order, players)
	return nil
}

func runLineupList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	lineups, err := s.svc.Lineups()
	if err != nil {
		return err
	}
	if len(lineups) == 0 {
		fmt.Fprintln(os.Stdout, "No lineups saved yet.")
		return nil
	}
	report.PrintLineups(os.Stdout, lineups)
	return nil
}

func runLineupRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.DeleteLineup(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted lineup %s\n", args[0])
	return nil
}

func runLineupMove(_ *cobra.Command, args []string) error {
	from, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid slot %q", args[1])
	}
	to, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid slot %q", args[2])
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	l, err := s.svc.Lineup(args[0])
	if err != nil {
		return err
	}
	order, err := dugout.MoveSlot(l.Order, from, to)
	if err != nil {
		return err
	}
	if l, err = s.svc.UpdateLineupOrder(l.ID, order); err != nil {
		return err
	}
	players, err := s.svc.Players()
	if err != nil {
		return err
	}
	report.PrintLineup(os.Stdout, l.Label(), l.Order, players)
	return nil
}
