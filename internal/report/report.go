package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-dugout/internal/dugout"
	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/stats"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// dash renders an empty cell.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// anySlice adapts a row of cells to the variadic table API.
func anySlice(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// PrintTeamSummary prints the one-screen team overview.
func PrintTeamSummary(w io.Writer, ov model.TeamOverview) {
	fmt.Fprintf(w, "\n%s\n\n", ov.TeamName)
	fmt.Fprintf(w, "  Players:   %d (%d with at-bats)\n", ov.Players, ov.PlayersWithAB)
	fmt.Fprintf(w, "  Lineups:   %d\n", ov.Lineups)
	fmt.Fprintf(w, "  Games:     %d (%d done)\n", ov.Games, ov.GamesDone)
	if ov.NextGame != nil {
		fmt.Fprintf(w, "  Next game: %s\n", ov.NextGame.Title())
	}
	fmt.Fprintln(w)
}

// PrintRoster prints the roster table.
func PrintRoster(w io.Writer, players []model.Player) {
	table := newTable(w)
	table.Header("NO", "NAME", "POSITIONS", "ID")
	for _, p := range players {
		table.Append(dash(p.NumberString()), p.Name, dash(p.Positions), p.ID)
	}
	table.Render()
}

// PrintLineups lists saved lineups.
func PrintLineups(w io.Writer, lineups []model.Lineup) {
	table := newTable(w)
	table.Header("DATE", "OPPONENT", "BATTERS", "ID")
	for _, l := range lineups {
		opp := l.Opponent
		if opp == "" {
			opp = "TBD"
		}
		table.Append(l.Date, opp, strconv.Itoa(len(l.Order)), l.ID)
	}
	table.Render()
}

// PrintLineup prints one batting order. Players no longer on the roster
// show as "?".
func PrintLineup(w io.Writer, title string, order []model.Slot, players []model.Player) {
	byID := make(map[string]model.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	if title != "" {
		fmt.Fprintf(w, "\n%s\n\n", title)
	}
	table := newTable(w)
	table.Header("#", "NO", "PLAYER", "POS")
	for i, s := range order {
		name, no := "?", ""
		if p, ok := byID[s.PlayerID]; ok {
			name, no = p.Name, p.NumberString()
		}
		table.Append(strconv.Itoa(i+1), dash(no), name, dash(s.Pos))
	}
	table.Render()
}

// PrintSchedule prints one section of the schedule.
func PrintSchedule(w io.Writer, heading string, games []model.Game) {
	fmt.Fprintf(w, "\n%s (%d)\n\n", heading, len(games))
	if len(games) == 0 {
		return
	}
	table := newTable(w)
	table.Header("DATE", "TIME", "OPPONENT", "LOCATION", "DONE", "ID")
	for _, g := range games {
		done := ""
		if g.Done {
			done = "yes"
		}
		table.Append(g.Date, dash(g.Time), g.Opponent, dash(g.Location), dash(done), g.ID)
	}
	table.Render()
}

// PrintStatsTable prints counters and ratios for every player, in the
// column order of the CSV export.
func PrintStatsTable(w io.Writer, rows []dugout.PlayerStats) {
	table := newTable(w)
	table.Header(anySlice(stats.ExportHeader)...)
	for _, r := range rows {
		cells := []string{r.Player.Name, dash(r.Player.NumberString())}
		for _, v := range r.Line.Values() {
			cells = append(cells, strconv.Itoa(v))
		}
		cells = append(cells,
			stats.FormatRatio(r.Metrics.AVG),
			stats.FormatRatio(r.Metrics.OBP),
			stats.FormatRatio(r.Metrics.SLG),
			stats.FormatRatio(r.Metrics.OPS),
		)
		table.Append(anySlice(cells)...)
	}
	table.Render()
}

// PrintPlayerStats prints one player's stat card.
func PrintPlayerStats(w io.Writer, ps dugout.PlayerStats) {
	no := ps.Player.NumberString()
	if no != "" {
		no = "#" + no + " "
	}
	fmt.Fprintf(w, "\n%s%s\n\n", no, ps.Player.Name)

	table := newTable(w)
	table.Header("STAT", "VALUE")
	for _, f := range stats.Fields {
		table.Append(f.String(), strconv.Itoa(ps.Line.Get(f)))
	}
	table.Append("TB", strconv.Itoa(ps.Metrics.TB))
	table.Append("AVG", stats.FormatRatio(ps.Metrics.AVG))
	table.Append("OBP", stats.FormatRatio(ps.Metrics.OBP))
	table.Append("SLG", stats.FormatRatio(ps.Metrics.SLG))
	table.Append("OPS", stats.FormatRatio(ps.Metrics.OPS))
	table.Render()
}

// PrintQueryResult prints the rows returned by an ad-hoc SQL query.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	table.Header(anySlice(cols)...)
	for _, r := range rows {
		table.Append(anySlice(r)...)
	}
	table.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}
