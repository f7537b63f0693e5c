package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/report"
)

var (
	rosterNumber    int
	rosterPositions string
	rosterName      string
	rosterNoNumber  bool
	rosterFilter    string
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Manage the team roster",
}

var rosterAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a player",
	Example: `  dugout roster add "Ana Ruiz" --number 7 --positions "SS, 2B"
  dugout roster add "Ben Cole"`,
	Args: cobra.ExactArgs(1),
	RunE: runRosterAdd,
}

var rosterEditCmd = &cobra.Command{
	Use:   "edit <player>",
	Short: "Edit a player's name, number or positions",
	Long: `Edit a roster entry. <player> is a player ID, a jersey number (7 or #7),
or a unique name prefix. Only the flags given are changed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRosterEdit,
}

var rosterRmCmd = &cobra.Command{
	Use:   "rm <player>",
	Short: "Remove a player, their lineup slots and their stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runRosterRm,
}

var rosterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the roster by jersey number",
	Args:  cobra.NoArgs,
	RunE:  runRosterList,
}

var rosterImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Add players from a CSV file with columns name,number,positions",
	Args:  cobra.ExactArgs(1),
	RunE:  runRosterImport,
}

func init() {
	rosterAddCmd.Flags().IntVarP(&rosterNumber, "number", "n", 0, "jersey number")
	rosterAddCmd.Flags().StringVarP(&rosterPositions, "positions", "p", "", `positions, e.g. "SS, 2B"`)

	rosterEditCmd.Flags().StringVar(&rosterName, "name", "", "new name")
	rosterEditCmd.Flags().IntVarP(&rosterNumber, "number", "n", 0, "new jersey number")
	rosterEditCmd.Flags().BoolVar(&rosterNoNumber, "no-number", false, "clear the jersey number")
	rosterEditCmd.Flags().StringVarP(&rosterPositions, "positions", "p", "", "new positions")

	rosterListCmd.Flags().StringVarP(&rosterFilter, "filter", "f", "", "show only players matching name, number or position")

	rosterCmd.AddCommand(rosterAddCmd, rosterEditCmd, rosterRmCmd, rosterListCmd, rosterImportCmd)
}

func runRosterAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var number *int
	if cmd.Flags().Changed("number") {
		number = &rosterNumber
	}
	p, err := s.svc.AddPlayer(args[0], number, rosterPositions)
	if err != nil {
		return fmt.Errorf("add player: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Added %s (%s)\n", p.Name, p.ID)
	return nil
}

func runRosterEdit(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.svc.ResolvePlayer(args[0])
	if err != nil {
		return err
	}
	var patch model.PlayerPatch
	if cmd.Flags().Changed("name") {
		patch.Name = &rosterName
	}
	if cmd.Flags().Changed("number") {
		patch.Number = &rosterNumber
	}
	if cmd.Flags().Changed("positions") {
		patch.Positions = &rosterPositions
	}
	patch.ClearNumber = rosterNoNumber

	p, err = s.svc.EditPlayer(p.ID, patch)
	if err != nil {
		return fmt.Errorf("edit player: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Updated %s\n", p.Name)
	return nil
}

func runRosterRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.svc.ResolvePlayer(args[0])
	if err != nil {
		return err
	}
	if err := s.svc.DeletePlayer(p.ID); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Removed %s\n", p.Name)
	return nil
}

func runRosterList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	players, err := s.svc.FilterPlayers(rosterFilter)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		if rosterFilter != "" {
			fmt.Fprintf(os.Stdout, "No players match %q.\n", rosterFilter)
			return nil
		}
		fmt.Fprintln(os.Stdout, "No players yet. Run 'dugout roster add <name>' to add one.")
		return nil
	}
	report.PrintRoster(os.Stdout, players)
	return nil
}

func runRosterImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open roster file: %w", err)
	}
	defer f.Close()

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	added, err := s.svc.ImportRoster(f)
	fmt.Fprintf(os.Stdout, "Added %d player(s)\n", len(added))
	return err
}
