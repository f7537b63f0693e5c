// Package backup reads and writes the whole-team JSON backup file.
//
// The document layout is the one the team app has always exported:
//
//	{"teamName": "...", "roster": [...], "lineups": [...], "schedule": [...], "stats": {"<playerId>": {"AB": 4, ...}}}
//
// Import is lenient about numbers (jersey numbers and counters may be
// strings, floats or null) but rejects a file that is not JSON at all.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/stats"
	"github.com/pable/go-dugout/internal/storage"
)

// Document is the on-disk backup layout.
type Document struct {
	TeamName string                    `json:"teamName"`
	Roster   []Player                  `json:"roster"`
	Lineups  []Lineup                  `json:"lineups"`
	Schedule []model.Game              `json:"schedule"`
	Stats    StatLines                 `json:"stats"`
}

// StatLines is the stats section keyed by player ID. Decoding never fails:
// a line that is not an object loads as zeros, and a section that is not an
// object loads as empty.
type StatLines map[string]stats.Line

// UnmarshalJSON decodes the section leniently; each line goes through
// stats.Line's own coercing decoder.
func (s *StatLines) UnmarshalJSON(data []byte) error {
	var lines map[string]stats.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		*s = nil
		return nil
	}
	*s = lines
	return nil
}

// Player is a roster entry whose number may be any JSON scalar.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Number    any    `json:"number"`
	Positions string `json:"positions"`
}

// Lineup is a saved batting order as stored in the backup.
type Lineup struct {
	ID        string       `json:"id"`
	Date      string       `json:"dateISO"`
	Opponent  string       `json:"opponent"`
	Order     []model.Slot `json:"order"`
	CreatedAt any          `json:"createdAt"`
}

// FromState builds a backup document from the persisted team.
func FromState(st *storage.State) *Document {
	doc := &Document{
		TeamName: st.TeamName,
		Roster:   make([]Player, 0, len(st.Players)),
		Lineups:  make([]Lineup, 0, len(st.Lineups)),
		Schedule: append([]model.Game{}, st.Games...),
		Stats:    make(StatLines, len(st.Stats)),
	}
	for _, p := range st.Players {
		var n any
		if p.Number != nil {
			n = *p.Number
		}
		doc.Roster = append(doc.Roster, Player{ID: p.ID, Name: p.Name, Number: n, Positions: p.Positions})
	}
	for _, l := range st.Lineups {
		order := l.Order
		if order == nil {
			order = []model.Slot{}
		}
		doc.Lineups = append(doc.Lineups, Lineup{
			ID: l.ID, Date: l.Date, Opponent: l.Opponent, Order: order, CreatedAt: l.CreatedAt,
		})
	}
	for id, line := range st.Stats {
		doc.Stats[id] = line
	}
	return doc
}

// Export writes st as an indented backup document.
func Export(w io.Writer, st *storage.State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromState(st)); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// Decode parses a backup document into a State ready for storage. Entries
// that cannot be kept (a player without an id or name, a lineup slot for a
// player not on the roster) are dropped with a warning written to warn.
func Decode(r io.Reader, warn io.Writer) (*storage.State, error) {
	if warn == nil {
		warn = io.Discard
	}
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid backup file: %w", err)
	}
	return doc.State(warn), nil
}

// State converts the document into storage records.
func (d *Document) State(warn io.Writer) *storage.State {
	st := &storage.State{
		TeamName: strings.TrimSpace(d.TeamName),
		Stats:    make(map[string]stats.Line, len(d.Stats)),
	}
	if st.TeamName == "" {
		st.TeamName = model.DefaultTeamName
	}

	rostered := make(map[string]bool, len(d.Roster))
	for i, p := range d.Roster {
		name := strings.TrimSpace(p.Name)
		if p.ID == "" || name == "" {
			fmt.Fprintf(warn, "warn: roster entry %d has no id or name, skipped\n", i+1)
			continue
		}
		if rostered[p.ID] {
			fmt.Fprintf(warn, "warn: duplicate player id %s, skipped\n", p.ID)
			continue
		}
		rostered[p.ID] = true
		st.Players = append(st.Players, model.Player{
			ID:        p.ID,
			Name:      name,
			Number:    jerseyNumber(p.Number),
			Positions: p.Positions,
		})
	}

	for i, l := range d.Lineups {
		if l.ID == "" {
			fmt.Fprintf(warn, "warn: lineup %d has no id, skipped\n", i+1)
			continue
		}
		out := model.Lineup{
			ID:        l.ID,
			Date:      l.Date,
			Opponent:  l.Opponent,
			CreatedAt: millis(l.CreatedAt),
		}
		for _, s := range l.Order {
			if !rostered[s.PlayerID] {
				fmt.Fprintf(warn, "warn: lineup %s references unknown player %q, slot dropped\n", l.ID, s.PlayerID)
				continue
			}
			out.Order = append(out.Order, s)
		}
		st.Lineups = append(st.Lineups, out)
	}

	for i, g := range d.Schedule {
		if g.ID == "" {
			fmt.Fprintf(warn, "warn: game %d has no id, skipped\n", i+1)
			continue
		}
		st.Games = append(st.Games, g)
	}

	for id, line := range d.Stats {
		st.Stats[id] = line
	}
	return st
}

// jerseyNumber accepts a JSON number or numeric string. Anything else,
// including null and negative values, means no number.
func jerseyNumber(v any) *int {
	f, ok := number(v)
	if !ok || f < 0 || f > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}

// millis reads a unix-millisecond timestamp, 0 when unusable.
func millis(v any) int64 {
	f, ok := number(v)
	if !ok || f < 0 || f > math.MaxInt64/2 {
		return 0
	}
	return int64(f)
}

func number(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		n, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(x), "#"), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
