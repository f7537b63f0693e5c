package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-dugout/internal/model"
)

const teamNameKey = "team_name"

// TeamName returns the stored team name, or "" if none has been saved.
func (db *DB) TeamName() (string, error) {
	var name string
	err := db.conn.QueryRow("SELECT value FROM team WHERE key = ?", teamNameKey).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return name, err
}

// SetTeamName stores the team name.
func (db *DB) SetTeamName(name string) error {
	return setTeamName(db.conn, name)
}

func setTeamName(x execer, name string) error {
	_, err := x.Exec("INSERT OR REPLACE INTO team(key, value) VALUES (?, ?)", teamNameKey, name)
	return err
}

// ---- Players ----

// UpsertPlayer inserts or replaces a roster entry. Uses INSERT OR REPLACE for idempotency.
func (db *DB) UpsertPlayer(p model.Player) error {
	return upsertPlayer(db.conn, p)
}

func upsertPlayer(x execer, p model.Player) error {
	_, err := x.Exec(`
		INSERT OR REPLACE INTO players(id, name, number, positions)
		VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, nullInt(p.Number), p.Positions,
	)
	if err != nil {
		return fmt.Errorf("upsert player %s: %w", p.ID, err)
	}
	return nil
}

// GetPlayer returns the player with the given ID, or nil if there is none.
func (db *DB) GetPlayer(id string) (*model.Player, error) {
	var p model.Player
	var number sql.NullInt64
	err := db.conn.QueryRow(`
		SELECT id, name, number, positions FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &number, &p.Positions)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Number = intPtr(number)
	return &p, nil
}

// ListPlayers returns the roster ordered by jersey number (numberless last), then name.
func (db *DB) ListPlayers() ([]model.Player, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, number, positions FROM players
		ORDER BY number IS NULL, number, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Player
	for rows.Next() {
		var p model.Player
		var number sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Name, &number, &p.Positions); err != nil {
			return nil, err
		}
		p.Number = intPtr(number)
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePlayer removes a player and every lineup slot that references it,
// in one transaction. Reports whether the player existed.
func (db *DB) DeletePlayer(id string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM players WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec("DELETE FROM lineup_slots WHERE player_id = ?", id); err != nil {
		return false, fmt.Errorf("delete lineup slots: %w", err)
	}
	return n > 0, tx.Commit()
}

// ---- Lineups ----

// InsertLineup stores a lineup and its batting order in a transaction.
func (db *DB) InsertLineup(l model.Lineup) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertLineup(tx, l); err != nil {
		return err
	}
	return tx.Commit()
}

func insertLineup(tx *sql.Tx, l model.Lineup) error {
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO lineups(id, match_date, opponent, created_at)
		VALUES (?, ?, ?, ?)`,
		l.ID, l.Date, l.Opponent, l.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert lineup %s: %w", l.ID, err)
	}
	if _, err := tx.Exec("DELETE FROM lineup_slots WHERE lineup_id = ?", l.ID); err != nil {
		return fmt.Errorf("clear lineup slots: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO lineup_slots(lineup_id, slot, player_id, pos) VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, s := range l.Order {
		if _, err := stmt.Exec(l.ID, i, s.PlayerID, s.Pos); err != nil {
			return fmt.Errorf("insert lineup slot %d for %s: %w", i, l.ID, err)
		}
	}
	return nil
}

// ListLineups returns all saved lineups ordered by date, each with its batting order.
func (db *DB) ListLineups() ([]model.Lineup, error) {
	rows, err := db.conn.Query(`
		SELECT id, match_date, opponent, created_at FROM lineups
		ORDER BY match_date, created_at`)
	if err != nil {
		return nil, err
	}
	var out []model.Lineup
	for rows.Next() {
		var l model.Lineup
		if err := rows.Scan(&l.ID, &l.Date, &l.Opponent, &l.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		l.Order = []model.Slot{}
		out = append(out, l)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	slots, err := db.lineupSlots("")
	if err != nil {
		return nil, err
	}
	for i := range out {
		if s, ok := slots[out[i].ID]; ok {
			out[i].Order = s
		}
	}
	return out, nil
}

// GetLineup returns the lineup with the given ID, or nil if there is none.
func (db *DB) GetLineup(id string) (*model.Lineup, error) {
	var l model.Lineup
	err := db.conn.QueryRow(`
		SELECT id, match_date, opponent, created_at FROM lineups WHERE id = ?`, id).
		Scan(&l.ID, &l.Date, &l.Opponent, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	slots, err := db.lineupSlots(id)
	if err != nil {
		return nil, err
	}
	l.Order = slots[id]
	if l.Order == nil {
		l.Order = []model.Slot{}
	}
	return &l, nil
}

// lineupSlots returns batting orders keyed by lineup ID. An empty id loads all of them.
func (db *DB) lineupSlots(id string) (map[string][]model.Slot, error) {
	query := "SELECT lineup_id, player_id, pos FROM lineup_slots"
	var args []any
	if id != "" {
		query += " WHERE lineup_id = ?"
		args = append(args, id)
	}
	query += " ORDER BY lineup_id, slot"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]model.Slot)
	for rows.Next() {
		var lineupID string
		var s model.Slot
		if err := rows.Scan(&lineupID, &s.PlayerID, &s.Pos); err != nil {
			return nil, err
		}
		out[lineupID] = append(out[lineupID], s)
	}
	return out, rows.Err()
}

// DeleteLineup removes a lineup. Reports whether it existed.
func (db *DB) DeleteLineup(id string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM lineups WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if _, err := tx.Exec("DELETE FROM lineup_slots WHERE lineup_id = ?", id); err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// ---- Games ----

// UpsertGame inserts or replaces a scheduled game.
func (db *DB) UpsertGame(g model.Game) error {
	return upsertGame(db.conn, g)
}

func upsertGame(x execer, g model.Game) error {
	_, err := x.Exec(`
		INSERT OR REPLACE INTO games(id, match_date, match_time, opponent, location, done)
		VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Date, g.Time, g.Opponent, g.Location, boolInt(g.Done),
	)
	if err != nil {
		return fmt.Errorf("upsert game %s: %w", g.ID, err)
	}
	return nil
}

// GetGame returns the game with the given ID, or nil if there is none.
func (db *DB) GetGame(id string) (*model.Game, error) {
	var g model.Game
	var done int
	err := db.conn.QueryRow(`
		SELECT id, match_date, match_time, opponent, location, done FROM games WHERE id = ?`, id).
		Scan(&g.ID, &g.Date, &g.Time, &g.Opponent, &g.Location, &done)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.Done = done != 0
	return &g, nil
}

// ListGames returns the schedule ordered by date then time.
func (db *DB) ListGames() ([]model.Game, error) {
	rows, err := db.conn.Query(`
		SELECT id, match_date, match_time, opponent, location, done FROM games
		ORDER BY match_date || match_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Game
	for rows.Next() {
		var g model.Game
		var done int
		if err := rows.Scan(&g.ID, &g.Date, &g.Time, &g.Opponent, &g.Location, &done); err != nil {
			return nil, err
		}
		g.Done = done != 0
		out = append(out, g)
	}
	return out, rows.Err()
}

// DeleteGame removes a game. Reports whether it existed.
func (db *DB) DeleteGame(id string) (bool, error) {
	res, err := db.conn.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
