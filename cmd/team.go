package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var teamCmd = &cobra.Command{
	Use:   "team [name]",
	Short: "Show or set the team name",
	Long: `With no argument, print the team name. With an argument, store it as the
new name; a blank name ("") restores the default from the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTeam,
}

func runTeam(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 0 {
		name, err := s.svc.TeamName()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, name)
		return nil
	}
	name, err := s.svc.SetTeamName(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Team name set to %s\n", name)
	return nil
}
