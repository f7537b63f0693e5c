package dugout

import (
	"fmt"
	"io"

	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/stats"
)

// PlayerStats pairs a roster entry with its counters and derived ratios.
type PlayerStats struct {
	Player  model.Player
	Line    stats.Line
	Metrics stats.Metrics
}

// AdjustStat adds delta to one counter of a rostered player and saves.
func (s *Service) AdjustStat(playerID string, f stats.Field, delta int) (stats.Line, error) {
	if _, err := s.Player(playerID); err != nil {
		return stats.Line{}, err
	}
	var line stats.Line
	err := s.mutateStats(func() error {
		var err error
		line, err = s.engine.Adjust(playerID, f, delta)
		return err
	})
	if err != nil {
		return stats.Line{}, err
	}
	return line, nil
}

// SetStat sets one counter of a rostered player to value, clamped at 0, and saves.
func (s *Service) SetStat(playerID string, f stats.Field, value int) (stats.Line, error) {
	if _, err := s.Player(playerID); err != nil {
		return stats.Line{}, err
	}
	var line stats.Line
	err := s.mutateStats(func() error {
		var err error
		line, err = s.engine.SetAbsolute(playerID, f, value)
		return err
	})
	if err != nil {
		return stats.Line{}, err
	}
	return line, nil
}

// ResetStats zeroes one player's counters and saves.
func (s *Service) ResetStats(playerID string) error {
	if _, err := s.Player(playerID); err != nil {
		return err
	}
	return s.mutateStats(func() error {
		s.engine.Reset(playerID)
		return nil
	})
}

// ClearAllStats discards every stat line and saves. Callers confirm with the
// user first; this cannot be undone.
func (s *Service) ClearAllStats() error {
	return s.mutateStats(func() error {
		s.engine.ResetAll()
		return nil
	})
}

// PlayerStats returns the counters and ratios for one player. A player who
// has never had a stat recorded reports zeros.
func (s *Service) PlayerStats(playerID string) (PlayerStats, error) {
	p, err := s.Player(playerID)
	if err != nil {
		return PlayerStats{}, err
	}
	line, _ := s.engine.Line(playerID)
	return PlayerStats{Player: p, Line: line, Metrics: stats.Derive(line)}, nil
}

// TeamStats returns PlayerStats for the whole roster in roster order.
func (s *Service) TeamStats() ([]PlayerStats, error) {
	players, err := s.Players()
	if err != nil {
		return nil, err
	}
	out := make([]PlayerStats, 0, len(players))
	for _, p := range players {
		line, _ := s.engine.Line(p.ID)
		out = append(out, PlayerStats{Player: p, Line: line, Metrics: stats.Derive(line)})
	}
	return out, nil
}

// ExportCSV writes the team stats CSV for the roster in roster order.
func (s *Service) ExportCSV(w io.Writer) error {
	players, err := s.Players()
	if err != nil {
		return err
	}
	refs := make([]stats.PlayerRef, 0, len(players))
	for _, p := range players {
		refs = append(refs, stats.PlayerRef{ID: p.ID, Name: p.Name, Number: p.Number})
	}
	if err := s.engine.WriteCSV(w, refs); err != nil {
		return fmt.Errorf("write stats csv: %w", err)
	}
	return nil
}
