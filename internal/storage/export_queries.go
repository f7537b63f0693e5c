package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pable/go-dugout/internal/model"
	"github.com/pable/go-dugout/internal/stats"
)

// statColumns are the stat_lines columns in stats.Fields order.
var statColumns = []string{"ab", "h", "doubles", "triples", "hr", "bb", "so", "r", "rbi", "sb", "hbp", "sf"}

// State is the whole persisted team, used for backups and factory resets.
type State struct {
	TeamName string
	Players  []model.Player
	Lineups  []model.Lineup
	Games    []model.Game
	Stats    map[string]stats.Line
}

// SaveStatLines replaces every stored stat line with the given snapshot in one
// transaction. Players absent from the snapshot lose their row.
func (db *DB) SaveStatLines(lines map[string]stats.Line) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := saveStatLines(tx, lines); err != nil {
		return err
	}
	return tx.Commit()
}

func saveStatLines(x *sql.Tx, lines map[string]stats.Line) error {
	if _, err := x.Exec("DELETE FROM stat_lines"); err != nil {
		return fmt.Errorf("clear stat lines: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}
	stmt, err := x.Prepare(fmt.Sprintf(
		"INSERT INTO stat_lines(player_id, %s) VALUES (?%s)",
		strings.Join(statColumns, ", "), strings.Repeat(",?", len(statColumns))))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for id, l := range lines {
		args := make([]any, 0, len(statColumns)+1)
		args = append(args, id)
		for _, v := range l.Values() {
			args = append(args, v)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("insert stat line for %s: %w", id, err)
		}
	}
	return nil
}

// LoadStatLines returns the raw stored counters keyed by player ID and then
// by stat short name ("AB", "2B", ...). Values are returned as scanned so a
// hand-edited row with text in a numeric column reaches the caller intact;
// stats.Engine.Restore coerces it.
func (db *DB) LoadStatLines() (map[string]map[string]any, error) {
	rows, err := db.conn.Query(fmt.Sprintf(
		"SELECT player_id, %s FROM stat_lines", strings.Join(statColumns, ", ")))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]map[string]any)
	for rows.Next() {
		var id string
		vals := make([]any, len(statColumns))
		dest := make([]any, 0, len(statColumns)+1)
		dest = append(dest, &id)
		for i := range vals {
			dest = append(dest, &vals[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		line := make(map[string]any, len(statColumns))
		for i, f := range stats.Fields {
			line[f.String()] = vals[i]
		}
		out[id] = line
	}
	return out, rows.Err()
}

// LoadState reads the whole team.
func (db *DB) LoadState() (*State, error) {
	name, err := db.TeamName()
	if err != nil {
		return nil, fmt.Errorf("team name: %w", err)
	}
	players, err := db.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	lineups, err := db.ListLineups()
	if err != nil {
		return nil, fmt.Errorf("list lineups: %w", err)
	}
	games, err := db.ListGames()
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	raw, err := db.LoadStatLines()
	if err != nil {
		return nil, fmt.Errorf("load stat lines: %w", err)
	}
	lines := make(map[string]stats.Line, len(raw))
	for id, fields := range raw {
		lines[id] = stats.LineFromMap(fields)
	}
	return &State{TeamName: name, Players: players, Lineups: lineups, Games: games, Stats: lines}, nil
}

// ReplaceState wipes every table and writes s in a single transaction, so a
// failed import leaves the previous data in place.
func (db *DB) ReplaceState(s *State) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := wipe(tx); err != nil {
		return err
	}
	if s.TeamName != "" {
		if err := setTeamName(tx, s.TeamName); err != nil {
			return err
		}
	}
	for _, p := range s.Players {
		if err := upsertPlayer(tx, p); err != nil {
			return err
		}
	}
	for _, l := range s.Lineups {
		if err := insertLineup(tx, l); err != nil {
			return err
		}
	}
	for _, g := range s.Games {
		if err := upsertGame(tx, g); err != nil {
			return err
		}
	}
	if err := saveStatLines(tx, s.Stats); err != nil {
		return err
	}
	return tx.Commit()
}

// Wipe deletes every row from every table.
func (db *DB) Wipe() error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := wipe(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func wipe(x execer) error {
	for _, table := range []string{"team", "players", "lineups", "lineup_slots", "games", "stat_lines"} {
		if _, err := x.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// Overview returns row counts used by the summary command.
func (db *DB) Overview() (model.TeamOverview, error) {
	var ov model.TeamOverview
	err := db.conn.QueryRow(`
		SELECT
			(SELECT COUNT(1) FROM players),
			(SELECT COUNT(1) FROM lineups),
			(SELECT COUNT(1) FROM games),
			(SELECT COUNT(1) FROM games WHERE done != 0),
			(SELECT COUNT(1) FROM stat_lines WHERE ab > 0)`).
		Scan(&ov.Players, &ov.Lineups, &ov.Games, &ov.GamesDone, &ov.PlayersWithAB)
	if err != nil {
		return ov, err
	}
	ov.TeamName, err = db.TeamName()
	return ov, err
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
