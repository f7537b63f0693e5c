package dugout

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pable/go-dugout/internal/config"
	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/storage"
	"github.com/pable/go-dugout/internal/stats"
)

var fixedNow = time.Date(2025, 5, 3, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *storage.DB, *bytes.Buffer) {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	var warn bytes.Buffer
	s, err := New(db, cfg, &warn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.now = func() time.Time { return fixedNow }
	seq := 0
	s.newID = func(prefix string) string {
		seq++
		return fmt.Sprintf("%s_%d", prefix, seq)
	}
	return s, db, &warn
}

func num(n int) *int { return &n }

func mustAdd(t *testing.T, s *Service, name string, number *int) model.Player {
	t.Helper()
	p, err := s.AddPlayer(name, number, "")
	if err != nil {
		t.Fatalf("AddPlayer(%s): %v", name, err)
	}
	return p
}

func TestTeamNameDefault(t *testing.T) {
	s, _, _ := newTestService(t)

	name, err := s.TeamName()
	if err != nil {
		t.Fatalf("TeamName: %v", err)
	}
	if name != model.DefaultTeamName {
		t.Errorf("expected default %q, got %q", model.DefaultTeamName, name)
	}

	if _, err := s.SetTeamName("  Hawks  "); err != nil {
		t.Fatalf("SetTeamName: %v", err)
	}
	if name, _ := s.TeamName(); name != "Hawks" {
		t.Errorf("expected Hawks, got %q", name)
	}

	got, err := s.SetTeamName("   ")
	if err != nil {
		t.Fatalf("SetTeamName blank: %v", err)
	}
	if got != model.DefaultTeamName {
		t.Errorf("blank name should restore default, got %q", got)
	}
}

func TestAddPlayerRequiresName(t *testing.T) {
	s, _, _ := newTestService(t)
	if _, err := s.AddPlayer("  ", nil, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEditPlayer(t *testing.T) {
	s, _, _ := newTestService(t)
	p := mustAdd(t, s, "Ana", num(7))

	name := "Ana Ruiz"
	pos := "SS, 2B"
	got, err := s.EditPlayer(p.ID, model.PlayerPatch{Name: &name, Positions: &pos, ClearNumber: true})
	if err != nil {
		t.Fatalf("EditPlayer: %v", err)
	}
	if got.Name != "Ana Ruiz" || got.Number != nil || got.Positions != "SS, 2B" {
		t.Errorf("unexpected player after edit: %+v", got)
	}

	if _, err := s.EditPlayer("missing", model.PlayerPatch{Name: &name}); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestDeletePlayerCascades(t *testing.T) {
	s, db, _ := newTestService(t)
	a := mustAdd(t, s, "Ana", num(7))
	b := mustAdd(t, s, "Ben", num(12))

	if _, err := s.AdjustStat(a.ID, stats.H, 2); err != nil {
		t.Fatalf("AdjustStat: %v", err)
	}
	l, err := s.SaveLineup("2025-05-10", "Hawks", []model.Slot{{PlayerID: a.ID, Pos: "SS"}, {PlayerID: b.ID}})
	if err != nil {
		t.Fatalf("SaveLineup: %v", err)
	}

	if err := s.DeletePlayer(a.ID); err != nil {
		t.Fatalf("DeletePlayer: %v", err)
	}
	if _, ok := s.Engine().Line(a.ID); ok {
		t.Error("stat line should be removed with the player")
	}
	raw, err := db.LoadStatLines()
	if err != nil {
		t.Fatalf("LoadStatLines: %v", err)
	}
	if _, ok := raw[a.ID]; ok {
		t.Error("stat line should be removed from storage")
	}
	got, err := s.Lineup(l.ID)
	if err != nil {
		t.Fatalf("Lineup: %v", err)
	}
	if len(got.Order) != 1 || got.Order[0].PlayerID != b.ID {
		t.Errorf("expected only Ben left in the order, got %+v", got.Order)
	}

	if err := s.DeletePlayer(a.ID); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("second delete: expected ErrPlayerNotFound, got %v", err)
	}
}

func TestFilterAndResolvePlayers(t *testing.T) {
	s, _, _ := newTestService(t)
	ana := mustAdd(t, s, "Ana", num(7))
	mustAdd(t, s, "Andy", num(12))
	ben, _ := s.AddPlayer("Ben", nil, "C")

	got, err := s.FilterPlayers("an")
	if err != nil {
		t.Fatalf("FilterPlayers: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 matches for 'an', got %d", len(got))
	}
	if got, _ := s.FilterPlayers("c"); len(got) != 1 || got[0].ID != ben.ID {
		t.Errorf("expected position match on Ben, got %+v", got)
	}

	tests := []struct {
		ref     string
		wantID  string
		wantErr error
	}{
		{ref: ana.ID, wantID: ana.ID},
		{ref: "#7", wantID: ana.ID},
		{ref: "7", wantID: ana.ID},
		{ref: "be", wantID: ben.ID},
		{ref: "an", wantErr: ErrInvalidInput},
		{ref: "zed", wantErr: ErrPlayerNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			p, err := s.ResolvePlayer(tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolvePlayer: %v", err)
			}
			if p.ID != tt.wantID {
				t.Errorf("expected %s, got %s", tt.wantID, p.ID)
			}
		})
	}
}

func TestImportRoster(t *testing.T) {
	s, _, warn := newTestService(t)
	csv := "name,number,positions\nAna,7,SS\n,3,P\nBen,#12,C\nCal,x,OF\n"

	added, err := s.ImportRoster(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportRoster: %v", err)
	}
	if len(added) != 3 {
		t.Fatalf("expected 3 players added, got %d", len(added))
	}
	if added[1].Number == nil || *added[1].Number != 12 {
		t.Errorf("expected Ben #12, got %+v", added[1])
	}
	if added[2].Number != nil {
		t.Errorf("bad number should be dropped, got %d", *added[2].Number)
	}
	if !strings.Contains(warn.String(), "line 3 has no name") {
		t.Errorf("expected a blank-name warning, got %q", warn.String())
	}
	if !strings.Contains(warn.String(), `number "x" ignored`) {
		t.Errorf("expected a bad-number warning, got %q", warn.String())
	}
}

func TestStatsPersistAcrossServices(t *testing.T) {
	s, db, _ := newTestService(t)
	p := mustAdd(t, s, "Ana", num(7))

	if _, err := s.AdjustStat(p.ID, stats.AB, 4); err != nil {
		t.Fatalf("AdjustStat: %v", err)
	}
	if _, err := s.SetStat(p.ID, stats.H, 1); err != nil {
		t.Fatalf("SetStat: %v", err)
	}
	line, err := s.AdjustStat(p.ID, stats.SO, -3)
	if err != nil {
		t.Fatalf("AdjustStat SO: %v", err)
	}
	if line.SO != 0 {
		t.Errorf("SO should clamp at 0, got %d", line.SO)
	}

	cfg, _ := config.Load("")
	reopened, err := New(db, cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, ok := reopened.Engine().Line(p.ID)
	if !ok {
		t.Fatal("stat line was not persisted")
	}
	if got.AB != 4 || got.H != 1 {
		t.Errorf("unexpected persisted line: %+v", got)
	}
}

func TestStatRequiresRosteredPlayer(t *testing.T) {
	s, _, _ := newTestService(t)
	if _, err := s.AdjustStat("ghost", stats.H, 1); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
	if _, ok := s.Engine().Line("ghost"); ok {
		t.Error("no line should be created for an unknown player")
	}
}

func TestStatInvalidField(t *testing.T) {
	s, _, _ := newTestService(t)
	p := mustAdd(t, s, "Ana", nil)

	_, err := s.AdjustStat(p.ID, stats.Field(99), 1)
	var fe *stats.InvalidFieldError
	if !errors.As(err, &fe) {
		t.Errorf("expected InvalidFieldError, got %v", err)
	}
}

func TestResetAndClearStats(t *testing.T) {
	s, _, _ := newTestService(t)
	a := mustAdd(t, s, "Ana", nil)
	b := mustAdd(t, s, "Ben", nil)
	s.AdjustStat(a.ID, stats.H, 3)
	s.AdjustStat(b.ID, stats.H, 1)

	if err := s.ResetStats(a.ID); err != nil {
		t.Fatalf("ResetStats: %v", err)
	}
	ps, err := s.PlayerStats(a.ID)
	if err != nil {
		t.Fatalf("PlayerStats: %v", err)
	}
	if ps.Line.H != 0 {
		t.Errorf("expected H reset to 0, got %d", ps.Line.H)
	}

	if err := s.ClearAllStats(); err != nil {
		t.Fatalf("ClearAllStats: %v", err)
	}
	if ids := s.Engine().Players(); len(ids) != 0 {
		t.Errorf("expected no stat lines after clear, got %v", ids)
	}
}

func TestTeamStatsDerived(t *testing.T) {
	s, _, _ := newTestService(t)
	p := mustAdd(t, s, "Ana", num(7))
	mustAdd(t, s, "Ben", nil)
	s.SetStat(p.ID, stats.AB, 4)
	s.SetStat(p.ID, stats.H, 1)
	s.SetStat(p.ID, stats.Doubles, 1)

	all, err := s.TeamStats()
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 players, got %d", len(all))
	}
	if all[0].Metrics.TB != 2 || all[0].Metrics.AVG != 0.25 {
		t.Errorf("unexpected metrics for Ana: %+v", all[0].Metrics)
	}
	if all[1].Metrics.OPS != 0 {
		t.Errorf("expected zero metrics for Ben, got %+v", all[1].Metrics)
	}
	if _, ok := s.Engine().Line(all[1].Player.ID); ok {
		t.Error("reading stats should not create a line")
	}
}

func TestExportCSV(t *testing.T) {
	s, _, _ := newTestService(t)
	mustAdd(t, s, `Ana "Ace"`, num(7))

	var buf bytes.Buffer
	if err := s.ExportCSV(&buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], `"Ana ""Ace""","7","0"`) {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestFactoryReset(t *testing.T) {
	s, _, _ := newTestService(t)
	p := mustAdd(t, s, "Ana", nil)
	s.AdjustStat(p.ID, stats.AB, 1)
	s.SetTeamName("Hawks")

	if err := s.FactoryReset(); err != nil {
		t.Fatalf("FactoryReset: %v", err)
	}
	players, _ := s.Players()
	if len(players) != 0 {
		t.Errorf("expected empty roster, got %d", len(players))
	}
	if ids := s.Engine().Players(); len(ids) != 0 {
		t.Errorf("expected no stat lines, got %v", ids)
	}
	if name, _ := s.TeamName(); name != model.DefaultTeamName {
		t.Errorf("expected default team name, got %q", name)
	}
}

func TestSnapshotReplace(t *testing.T) {
	s, _, _ := newTestService(t)
	p := mustAdd(t, s, "Ana", num(7))
	s.AdjustStat(p.ID, stats.HR, 1)
	s.AddGame("2025-05-10", "", "Hawks", "")

	st, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if st.TeamName != model.DefaultTeamName {
		t.Errorf("expected default team name in snapshot, got %q", st.TeamName)
	}

	s.FactoryReset()
	if err := s.Replace(st); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	line, ok := s.Engine().Line(p.ID)
	if !ok || line.HR != 1 {
		t.Errorf("stats not restored: %+v ok=%v", line, ok)
	}
	ov, err := s.Overview()
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Players != 1 || ov.Games != 1 || ov.NextGame == nil {
		t.Errorf("unexpected overview: %+v", ov)
	}
}

func TestStatSaveFailureRollsBack(t *testing.T) {
	s, db, _ := newTestService(t)
	a := mustAdd(t, s, "Ana", num(7))
	b := mustAdd(t, s, "Ben", num(12))
	if _, err := s.SetStat(a.ID, stats.H, 2); err != nil {
		t.Fatalf("SetStat: %v", err)
	}
	if _, err := s.SetStat(b.ID, stats.AB, 3); err != nil {
		t.Fatalf("SetStat: %v", err)
	}
	before := s.Engine().Snapshot()

	// Removing the table makes every later stats save fail.
	if _, _, err := db.QueryRaw("DROP TABLE stat_lines"); err != nil {
		t.Fatalf("drop stat_lines: %v", err)
	}

	line, err := s.AdjustStat(a.ID, stats.H, 1)
	if err == nil {
		t.Fatal("expected the save to fail")
	}
	if line != (stats.Line{}) {
		t.Errorf("failed adjust returned a line: %+v", line)
	}
	if _, err := s.SetStat(a.ID, stats.HR, 5); err == nil {
		t.Error("SetStat: expected the save to fail")
	}
	if err := s.ResetStats(b.ID); err == nil {
		t.Error("ResetStats: expected the save to fail")
	}
	if err := s.ClearAllStats(); err == nil {
		t.Error("ClearAllStats: expected the save to fail")
	}

	after := s.Engine().Snapshot()
	if len(after) != len(before) {
		t.Fatalf("engine changed after failed saves: %+v", after)
	}
	for id, want := range before {
		if after[id] != want {
			t.Errorf("%s: got %+v, want %+v", id, after[id], want)
		}
	}
}
