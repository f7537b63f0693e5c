package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/report"
)

var (
	gameDate     string
	gameTime     string
	gameOpponent string
	gameLocation string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the game schedule",
}

var scheduleAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Schedule a game",
	Example: `  dugout schedule add --date 2025-05-10 --time 09:30 --opponent Hawks --location "Field 2"`,
	Args:    cobra.NoArgs,
	RunE:    runScheduleAdd,
}

var scheduleDoneCmd = &cobra.Command{
	Use:   "done <game-id>",
	Short: "Toggle a game's done flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleDone,
}

var scheduleRmCmd = &cobra.Command{
	Use:   "rm <game-id>",
	Short: "Delete a game",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleRm,
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming and completed games",
	Long: `List games in date order, split into upcoming and completed. A game is
completed once it is marked done or its date is before today.`,
	Args: cobra.NoArgs,
	RunE: runScheduleList,
}

func init() {
	scheduleAddCmd.Flags().StringVarP(&gameDate, "date", "d", "", "game date YYYY-MM-DD (required)")
	scheduleAddCmd.Flags().StringVarP(&gameTime, "time", "t", "", "start time HH:MM")
	scheduleAddCmd.Flags().StringVarP(&gameOpponent, "opponent", "o", "", "opponent name (required)")
	scheduleAddCmd.Flags().StringVarP(&gameLocation, "location", "l", "", "field or venue")
	scheduleAddCmd.MarkFlagRequired("date")
	scheduleAddCmd.MarkFlagRequired("opponent")

	scheduleCmd.AddCommand(scheduleAddCmd, scheduleDoneCmd, scheduleRmCmd, scheduleListCmd)
}

func runScheduleAdd(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.svc.AddGame(gameDate, gameTime, gameOpponent, gameLocation)
	if err != nil {
		return fmt.Errorf("add game: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Scheduled %s (%s)\n", g.Title(), g.ID)
	return nil
}

func runScheduleDone(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.svc.ToggleGameDone(args[0])
	if err != nil {
		return err
	}
	state := "not done"
	if g.Done {
		state = "done"
	}
	fmt.Fprintf(os.Stdout, "%s marked %s\n", g.Title(), state)
	return nil
}

func runScheduleRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.svc.DeleteGame(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted game %s\n", args[0])
	return nil
}

func runScheduleList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	upcoming, completed, err := s.svc.Schedule()
	if err != nil {
		return err
	}
	if len(upcoming)+len(completed) == 0 {
		fmt.Fprintln(os.Stdout, "No games scheduled. Run 'dugout schedule add' to add one.")
		return nil
	}
	report.PrintSchedule(os.Stdout, "Upcoming", upcoming)
	report.PrintSchedule(os.Stdout, "Completed", completed)
	return nil
}
