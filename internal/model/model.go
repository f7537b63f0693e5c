package model

import (
	"strconv"
	"time"
)

// DefaultTeamName is used until the user names the team.
const DefaultTeamName = "Travel Baseball"

// DateLayout is the calendar-date format used for lineups and games.
const DateLayout = "2006-01-02"

// ---- Roster ----

// Player is one roster entry. Number is nil when the player has no jersey number.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Number    *int   `json:"number"`
	Positions string `json:"positions"`
}

// NumberString renders the jersey number, or "" when unset.
func (p *Player) NumberString() string {
	if p.Number == nil {
		return ""
	}
	return strconv.Itoa(*p.Number)
}

// PlayerPatch carries optional edits for a roster entry. ClearNumber removes
// the jersey number; it wins over Number.
type PlayerPatch struct {
	Name        *string
	Number      *int
	ClearNumber bool
	Positions   *string
}

// ---- Lineups ----

// Slot is one spot in a batting order.
type Slot struct {
	PlayerID string `json:"playerId"`
	Pos      string `json:"pos"`
}

// Lineup is a saved batting order for one game.
type Lineup struct {
	ID        string `json:"id"`
	Date      string `json:"dateISO"`
	Opponent  string `json:"opponent"`
	Order     []Slot `json:"order"`
	CreatedAt int64  `json:"createdAt"` // unix millis
}

// Label is the human-readable lineup name, e.g. "2025-05-03 vs Hawks".
func (l *Lineup) Label() string {
	opp := l.Opponent
	if opp == "" {
		opp = "TBD"
	}
	return l.Date + " vs " + opp
}

// ---- Schedule ----

// Game is one scheduled game.
type Game struct {
	ID       string `json:"id"`
	Date     string `json:"dateISO"`
	Time     string `json:"time"`
	Opponent string `json:"opponent"`
	Location string `json:"location"`
	Done     bool   `json:"done"`
}

// Completed reports whether g belongs in the completed list: either marked
// done or dated before today.
func (g *Game) Completed(today time.Time) bool {
	return g.Done || g.Date < today.Format(DateLayout)
}

// Title is the one-line description shown in schedule listings.
func (g *Game) Title() string {
	t := g.Date
	if g.Time != "" {
		t += " " + g.Time
	}
	return t + " vs " + g.Opponent
}

// ---- Team ----

// TeamOverview summarises everything stored for the team.
type TeamOverview struct {
	TeamName      string
	Players       int
	Lineups       int
	Games         int
	GamesDone     int
	PlayersWithAB int
	NextGame      *Game
}
