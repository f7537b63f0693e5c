package dugout

import (
	"fmt"
	"strings"
	"time"

	"github.com/pable/go-dugout/internal/model"
)

// AddGame schedules a game. Date and opponent are required; clock time must
// be HH:MM when given.
func (s *Service) AddGame(date, clock, opponent, location string) (model.Game, error) {
	date = strings.TrimSpace(date)
	opponent = strings.TrimSpace(opponent)
	if date == "" || opponent == "" {
		return model.Game{}, fmt.Errorf("%w: date and opponent are required", ErrInvalidInput)
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return model.Game{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, date)
	}
	clock = strings.TrimSpace(clock)
	if clock != "" {
		if _, err := time.Parse("15:04", clock); err != nil {
			return model.Game{}, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidInput, clock)
		}
	}
	g := model.Game{
		ID:       s.newID("g"),
		Date:     date,
		Time:     clock,
		Opponent: opponent,
		Location: strings.TrimSpace(location),
	}
	if err := s.db.UpsertGame(g); err != nil {
		return model.Game{}, err
	}
	return g, nil
}

// Game returns the scheduled game with the given ID.
func (s *Service) Game(id string) (model.Game, error) {
	g, err := s.db.GetGame(id)
	if err != nil {
		return model.Game{}, fmt.Errorf("get game: %w", err)
	}
	if g == nil {
		return model.Game{}, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return *g, nil
}

// ToggleGameDone flips the done flag of a game.
func (s *Service) ToggleGameDone(id string) (model.Game, error) {
	g, err := s.Game(id)
	if err != nil {
		return model.Game{}, err
	}
	g.Done = !g.Done
	if err := s.db.UpsertGame(g); err != nil {
		return model.Game{}, err
	}
	return g, nil
}

// DeleteGame removes a game from the schedule.
func (s *Service) DeleteGame(id string) error {
	ok, err := s.db.DeleteGame(id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return nil
}

// Schedule splits the games, in chronological order, into upcoming and
// completed. A game is completed once marked done or once its date has passed.
func (s *Service) Schedule() (upcoming, completed []model.Game, err error) {
	games, err := s.db.ListGames()
	if err != nil {
		return nil, nil, fmt.Errorf("list games: %w", err)
	}
	today := s.now()
	for _, g := range games {
		if g.Completed(today) {
			completed = append(completed, g)
		} else {
			upcoming = append(upcoming, g)
		}
	}
	return upcoming, completed, nil
}
