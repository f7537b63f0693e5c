package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-dugout/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the team database",
	Long: `Run an arbitrary SQL query against the team database and print results as a table.

Schema overview:
  team(key, value)
  players(id, name, number, positions)
  lineups(id, match_date, opponent, created_at)
  lineup_slots(lineup_id, slot, player_id, pos)
  games(id, match_date, match_time, opponent, location, done)
  stat_lines(player_id, ab, h, doubles, triples, hr, bb, so, r, rbi, sb, hbp, sf)

Example:
  dugout sql "SELECT p.name, s.h, s.ab FROM stat_lines s JOIN players p ON p.id = s.player_id ORDER BY s.h DESC"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(_ *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	cols, rows, err := s.db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}
