package dugout

import (
	"fmt"
	"strings"
	"time"

	"github.com/pable/go-dugout/internal/model"
)

// SaveLineup stores a batting order. An empty date means today. Every slot
// must name a rostered player.
func (s *Service) SaveLineup(date, opponent string, order []model.Slot) (model.Lineup, error) {
	date, err := s.normalizeDate(date)
	if err != nil {
		return model.Lineup{}, err
	}
	for i, slot := range order {
		if _, err := s.Player(slot.PlayerID); err != nil {
			return model.Lineup{}, fmt.Errorf("slot %d: %w", i+1, err)
		}
	}
	l := model.Lineup{
		ID:        s.newID("lineup"),
		Date:      date,
		Opponent:  strings.TrimSpace(opponent),
		Order:     append([]model.Slot(nil), order...),
		CreatedAt: s.now().UnixMilli(),
	}
	if err := s.db.InsertLineup(l); err != nil {
		return model.Lineup{}, fmt.Errorf("save lineup: %w", err)
	}
	return l, nil
}

// AutoOrder returns a batting order with every roster player in roster
// order, truncated to lineup.max_batters when configured.
func (s *Service) AutoOrder() ([]model.Slot, error) {
	players, err := s.Players()
	if err != nil {
		return nil, err
	}
	if n := s.cfg.Lineup.MaxBatters; n > 0 && len(players) > n {
		players = players[:n]
	}
	order := make([]model.Slot, 0, len(players))
	for _, p := range players {
		order = append(order, model.Slot{PlayerID: p.ID})
	}
	return order, nil
}

// MoveSlot returns a copy of order with the batter at position from
// (1-based) moved to position to, shifting the others.
func MoveSlot(order []model.Slot, from, to int) ([]model.Slot, error) {
	if from < 1 || from > len(order) || to < 1 || to > len(order) {
		return nil, fmt.Errorf("%w: move %d -> %d in a %d-batter order", ErrInvalidInput, from, to, len(order))
	}
	out := make([]model.Slot, 0, len(order))
	moved := order[from-1]
	for i, s := range order {
		if i != from-1 {
			out = append(out, s)
		}
	}
	out = append(out[:to-1], append([]model.Slot{moved}, out[to-1:]...)...)
	return out, nil
}

// Lineups returns all saved lineups ordered by date.
func (s *Service) Lineups() ([]model.Lineup, error) {
	ls, err := s.db.ListLineups()
	if err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}
	return ls, nil
}

// Lineup returns the saved lineup with the given ID.
func (s *Service) Lineup(id string) (model.Lineup, error) {
	l, err := s.db.GetLineup(id)
	if err != nil {
		return model.Lineup{}, fmt.Errorf("get lineup: %w", err)
	}
	if l == nil {
		return model.Lineup{}, fmt.Errorf("%w: %s", ErrLineupNotFound, id)
	}
	return *l, nil
}

// FindLineup returns the first lineup saved for date against opponent, as
// used when opening a scheduled game.
func (s *Service) FindLineup(date, opponent string) (model.Lineup, bool, error) {
	ls, err := s.Lineups()
	if err != nil {
		return model.Lineup{}, false, err
	}
	for _, l := range ls {
		if l.Date == date && l.Opponent == opponent {
			return l, true, nil
		}
	}
	return model.Lineup{}, false, nil
}

// UpdateLineupOrder replaces the batting order of a saved lineup.
func (s *Service) UpdateLineupOrder(id string, order []model.Slot) (model.Lineup, error) {
	l, err := s.Lineup(id)
	if err != nil {
		return model.Lineup{}, err
	}
	l.Order = order
	if err := s.db.InsertLineup(l); err != nil {
		return model.Lineup{}, fmt.Errorf("update lineup: %w", err)
	}
	return l, nil
}

// DeleteLineup removes a saved lineup.
func (s *Service) DeleteLineup(id string) error {
	ok, err := s.db.DeleteLineup(id)
	if err != nil {
		return fmt.Errorf("delete lineup: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLineupNotFound, id)
	}
	return nil
}

func (s *Service) normalizeDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.now().Format(model.DateLayout), nil
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, date)
	}
	return date, nil
}
