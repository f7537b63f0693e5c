// Package dugout is the application layer: it owns the stats engine for a
// team, applies roster, lineup and schedule changes, and persists the result.
package dugout

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pable/go-dugout/internal/config"
	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/storage"
	"github.com/pable/go-dugout/internal/stats"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrLineupNotFound = errors.New("lineup not found")
	ErrGameNotFound   = errors.New("game not found")
	ErrInvalidInput   = errors.New("invalid input")
)

// Service is the single entry point used by the CLI and the shell.
type Service struct {
	db     *storage.DB
	cfg    *config.Config
	engine *stats.Engine
	warn   io.Writer

	now   func() time.Time
	newID func(prefix string) string
}

// New loads the stored stat lines into a fresh engine. Warnings (such as
// stat lines for players no longer on the roster) are written to warn.
func New(db *storage.DB, cfg *config.Config, warn io.Writer) (*Service, error) {
	if warn == nil {
		warn = io.Discard
	}
	s := &Service{
		db:     db,
		cfg:    cfg,
		engine: stats.NewEngine(),
		warn:   warn,
		now:    time.Now,
		newID:  newID,
	}
	if err := s.reloadStats(); err != nil {
		return nil, err
	}
	return s, nil
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func (s *Service) reloadStats() error {
	raw, err := s.db.LoadStatLines()
	if err != nil {
		return fmt.Errorf("load stat lines: %w", err)
	}
	s.engine.Restore(raw)
	return nil
}

// mutateStats applies fn to the engine and persists the whole mapping. If
// fn or the save fails the engine is put back as it was, so memory never
// runs ahead of storage.
func (s *Service) mutateStats(fn func() error) error {
	before := s.engine.Snapshot()
	if err := fn(); err != nil {
		return err
	}
	if err := s.db.SaveStatLines(s.engine.Snapshot()); err != nil {
		s.engine.Load(before)
		return fmt.Errorf("save stat lines: %w", err)
	}
	return nil
}

// Engine exposes the stats engine for read-only use (derived metrics, export).
func (s *Service) Engine() *stats.Engine {
	return s.engine
}

// TeamName returns the stored name, falling back to the configured default.
func (s *Service) TeamName() (string, error) {
	name, err := s.db.TeamName()
	if err != nil {
		return "", fmt.Errorf("team name: %w", err)
	}
	if name == "" {
		return s.cfg.Team.Name, nil
	}
	return name, nil
}

// SetTeamName stores name. A blank name restores the configured default.
func (s *Service) SetTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.cfg.Team.Name
	}
	if err := s.db.SetTeamName(name); err != nil {
		return "", fmt.Errorf("set team name: %w", err)
	}
	return name, nil
}

// Overview summarises the stored team, including the next upcoming game.
func (s *Service) Overview() (model.TeamOverview, error) {
	ov, err := s.db.Overview()
	if err != nil {
		return ov, fmt.Errorf("overview: %w", err)
	}
	if ov.TeamName == "" {
		ov.TeamName = s.cfg.Team.Name
	}
	upcoming, _, err := s.Schedule()
	if err != nil {
		return ov, err
	}
	if len(upcoming) > 0 {
		next := upcoming[0]
		ov.NextGame = &next
	}
	return ov, nil
}

// FactoryReset erases every table and all stat lines.
func (s *Service) FactoryReset() error {
	if err := s.db.Wipe(); err != nil {
		return fmt.Errorf("wipe: %w", err)
	}
	s.engine.ResetAll()
	return nil
}

// Snapshot returns the whole persisted team for backup.
func (s *Service) Snapshot() (*storage.State, error) {
	st, err := s.db.LoadState()
	if err != nil {
		return nil, err
	}
	if st.TeamName == "" {
		st.TeamName = s.cfg.Team.Name
	}
	st.Stats = s.engine.Snapshot()
	return st, nil
}

// Replace swaps the whole persisted team for st and reloads the engine.
// On a storage error the previous data is left untouched.
func (s *Service) Replace(st *storage.State) error {
	if err := s.db.ReplaceState(st); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return s.reloadStats()
}
