package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-dugout/internal/dugout"
	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/stats"
)

func num(n int) *int { return &n }

func TestPrintStatsTable(t *testing.T) {
	line := stats.Line{AB: 4, H: 1, Doubles: 1}
	rows := []dugout.PlayerStats{
		{Player: model.Player{ID: "p_1", Name: "Ana", Number: num(7)}, Line: line, Metrics: stats.Derive(line)},
		{Player: model.Player{ID: "p_2", Name: "Ben"}},
	}
	var buf bytes.Buffer
	PrintStatsTable(&buf, rows)
	out := buf.String()
	for _, want := range []string{"Ana", "Ben", "0.250", "0.500", "0.750", "0.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintLineupUnknownPlayer(t *testing.T) {
	players := []model.Player{{ID: "p_1", Name: "Ana", Number: num(7)}}
	order := []model.Slot{{PlayerID: "p_1", Pos: "SS"}, {PlayerID: "p_gone"}}
	var buf bytes.Buffer
	PrintLineup(&buf, "2025-05-10 vs Hawks", order, players)
	out := buf.String()
	if !strings.Contains(out, "2025-05-10 vs Hawks") || !strings.Contains(out, "Ana") {
		t.Errorf("lineup output missing title or player:\n%s", out)
	}
	if !strings.Contains(out, "?") {
		t.Errorf("unknown player should render as ?:\n%s", out)
	}
}

func TestPrintTeamSummaryNextGame(t *testing.T) {
	var buf bytes.Buffer
	PrintTeamSummary(&buf, model.TeamOverview{
		TeamName: "Hawks", Players: 12, PlayersWithAB: 9, Games: 3,
		NextGame: &model.Game{Date: "2025-05-10", Time: "09:00", Opponent: "Owls"},
	})
	out := buf.String()
	for _, want := range []string{"Hawks", "12 (9 with at-bats)", "2025-05-10 09:00 vs Owls"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestPrintQueryResultCountsRows(t *testing.T) {
	var buf bytes.Buffer
	PrintQueryResult(&buf, []string{"id", "name"}, [][]string{{"p_1", "Ana"}, {"p_2", "NULL"}})
	if !strings.Contains(buf.String(), "(2 rows)") {
		t.Errorf("expected row count, got:\n%s", buf.String())
	}
}
