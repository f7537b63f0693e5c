package dugout

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pable/go-dugout/internal/model"
)

// AddPlayer adds a player to the roster. Name is required.
func (s *Service) AddPlayer(name string, number *int, positions string) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	p := model.Player{
		ID:        s.newID("p"),
		Name:      name,
		Number:    number,
		Positions: strings.TrimSpace(positions),
	}
	if err := s.db.UpsertPlayer(p); err != nil {
		return model.Player{}, err
	}
	return p, nil
}

// EditPlayer applies patch to the player with the given ID.
func (s *Service) EditPlayer(id string, patch model.PlayerPatch) (model.Player, error) {
	p, err := s.Player(id)
	if err != nil {
		return model.Player{}, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
		}
		p.Name = name
	}
	if patch.Number != nil {
		n := *patch.Number
		p.Number = &n
	}
	if patch.ClearNumber {
		p.Number = nil
	}
	if patch.Positions != nil {
		p.Positions = strings.TrimSpace(*patch.Positions)
	}
	if err := s.db.UpsertPlayer(p); err != nil {
		return model.Player{}, err
	}
	return p, nil
}

// Player returns the roster entry for id.
func (s *Service) Player(id string) (model.Player, error) {
	p, err := s.db.GetPlayer(id)
	if err != nil {
		return model.Player{}, fmt.Errorf("get player: %w", err)
	}
	if p == nil {
		return model.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return *p, nil
}

// DeletePlayer removes a player from the roster, strips it from every saved
// lineup and deletes its stat line.
func (s *Service) DeletePlayer(id string) error {
	ok, err := s.db.DeletePlayer(id)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return s.mutateStats(func() error {
		s.engine.RemovePlayer(id)
		return nil
	})
}

// Players returns the roster sorted by jersey number, numberless players last.
func (s *Service) Players() ([]model.Player, error) {
	players, err := s.db.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// FilterPlayers returns roster entries whose name, number or positions
// contain query, case-insensitively. An empty query returns everyone.
func (s *Service) FilterPlayers(query string) ([]model.Player, error) {
	players, err := s.Players()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return players, nil
	}
	var out []model.Player
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(p.NumberString(), q) ||
			strings.Contains(strings.ToLower(p.Positions), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ResolvePlayer finds a player by ID, exact jersey number, or unique
// case-insensitive name prefix, in that order.
func (s *Service) ResolvePlayer(ref string) (model.Player, error) {
	ref = strings.TrimSpace(ref)
	players, err := s.Players()
	if err != nil {
		return model.Player{}, err
	}
	for _, p := range players {
		if p.ID == ref {
			return p, nil
		}
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil {
		for _, p := range players {
			if p.Number != nil && *p.Number == n {
				return p, nil
			}
		}
	}
	var match []model.Player
	lower := strings.ToLower(ref)
	for _, p := range players {
		if strings.HasPrefix(strings.ToLower(p.Name), lower) {
			match = append(match, p)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return model.Player{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, ref)
	default:
		return model.Player{}, fmt.Errorf("%w: %q matches %d players", ErrInvalidInput, ref, len(match))
	}
}

// rosterRow is one line of a roster import file.
type rosterRow struct {
	Name      string `csv:"name"`
	Number    string `csv:"number"`
	Positions string `csv:"positions"`
}

// ImportRoster adds every row of a CSV file with the header
// name,number,positions. Rows without a name are skipped with a warning;
// an unparseable number is dropped with a warning. Returns the players added.
func (s *Service) ImportRoster(r io.Reader) ([]model.Player, error) {
	var rows []rosterRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse roster csv: %w", err)
	}

	var added []model.Player
	for i, row := range rows {
		line := i + 2 // header is line 1
		if strings.TrimSpace(row.Name) == "" {
			fmt.Fprintf(s.warn, "warn: roster line %d has no name, skipped\n", line)
			continue
		}
		var number *int
		if raw := strings.TrimSpace(row.Number); raw != "" {
			n, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
			if err != nil {
				fmt.Fprintf(s.warn, "warn: roster line %d: number %q ignored\n", line, raw)
			} else {
				number = &n
			}
		}
		p, err := s.AddPlayer(row.Name, number, row.Positions)
		if err != nil {
			return added, fmt.Errorf("roster line %d: %w", line, err)
		}
		added = append(added, p)
	}
	return added, nil
}
