package dugout

import (
	"errors"
	"testing"

	"github.com/pable/go-dugout/internal/model"
)

func slots(ids ...string) []model.Slot {
	out := make([]model.Slot, len(ids))
	for i, id := range ids {
		out[i] = model.Slot{PlayerID: id}
	}
	return out
}

func ids(order []model.Slot) []string {
	out := make([]string, len(order))
	for i, s := range order {
		out[i] = s.PlayerID
	}
	return out
}

func TestMoveSlot(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"down", 1, 3, []string{"b", "c", "a", "d"}},
		{"up", 4, 1, []string{"d", "a", "b", "c"}},
		{"same", 2, 2, []string{"a", "b", "c", "d"}},
		{"last", 2, 4, []string{"a", "c", "d", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := slots("a", "b", "c", "d")
			got, err := MoveSlot(order, tt.from, tt.to)
			if err != nil {
				t.Fatalf("MoveSlot: %v", err)
			}
			g := ids(got)
			for i := range tt.want {
				if g[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", g, tt.want)
				}
			}
			if ids(order)[0] != "a" {
				t.Error("input order was modified")
			}
		})
	}

	for _, bad := range [][2]int{{0, 1}, {1, 5}, {5, 1}} {
		if _, err := MoveSlot(slots("a", "b", "c", "d"), bad[0], bad[1]); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("move %v: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestSaveLineupDefaultsAndValidation(t *testing.T) {
	s, _, _ := newTestService(t)
	a := mustAdd(t, s, "Ana", num(7))

	l, err := s.SaveLineup("", " Hawks ", []model.Slot{{PlayerID: a.ID, Pos: "SS"}})
	if err != nil {
		t.Fatalf("SaveLineup: %v", err)
	}
	if l.Date != "2025-05-03" {
		t.Errorf("expected today's date, got %q", l.Date)
	}
	if l.Opponent != "Hawks" {
		t.Errorf("expected trimmed opponent, got %q", l.Opponent)
	}
	if l.CreatedAt != fixedNow.UnixMilli() {
		t.Errorf("unexpected CreatedAt %d", l.CreatedAt)
	}

	if _, err := s.SaveLineup("05/03/2025", "", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad date: expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.SaveLineup("", "", slots("ghost")); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("unknown player: expected ErrPlayerNotFound, got %v", err)
	}
}

func TestAutoOrder(t *testing.T) {
	s, _, _ := newTestService(t)
	c := mustAdd(t, s, "Cal", nil)
	b := mustAdd(t, s, "Ben", num(12))
	a := mustAdd(t, s, "Ana", num(7))

	order, err := s.AutoOrder()
	if err != nil {
		t.Fatalf("AutoOrder: %v", err)
	}
	got := ids(order)
	want := []string{a.ID, b.ID, c.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	s.cfg.Lineup.MaxBatters = 2
	order, _ = s.AutoOrder()
	if len(order) != 2 {
		t.Errorf("expected order capped at 2, got %d", len(order))
	}
}

func TestLineupLifecycle(t *testing.T) {
	s, _, _ := newTestService(t)
	a := mustAdd(t, s, "Ana", num(7))
	b := mustAdd(t, s, "Ben", num(12))

	l, err := s.SaveLineup("2025-05-10", "Hawks", slots(a.ID, b.ID))
	if err != nil {
		t.Fatalf("SaveLineup: %v", err)
	}

	found, ok, err := s.FindLineup("2025-05-10", "Hawks")
	if err != nil || !ok || found.ID != l.ID {
		t.Fatalf("FindLineup: got %+v ok=%v err=%v", found, ok, err)
	}
	if _, ok, _ := s.FindLineup("2025-05-10", "Owls"); ok {
		t.Error("FindLineup should not match another opponent")
	}

	moved, _ := MoveSlot(l.Order, 2, 1)
	if _, err := s.UpdateLineupOrder(l.ID, moved); err != nil {
		t.Fatalf("UpdateLineupOrder: %v", err)
	}
	got, _ := s.Lineup(l.ID)
	if got.Order[0].PlayerID != b.ID {
		t.Errorf("expected Ben leading off, got %+v", got.Order)
	}

	if err := s.DeleteLineup(l.ID); err != nil {
		t.Fatalf("DeleteLineup: %v", err)
	}
	if _, err := s.Lineup(l.ID); !errors.Is(err, ErrLineupNotFound) {
		t.Errorf("expected ErrLineupNotFound, got %v", err)
	}
	if err := s.DeleteLineup(l.ID); !errors.Is(err, ErrLineupNotFound) {
		t.Errorf("second delete: expected ErrLineupNotFound, got %v", err)
	}
}
