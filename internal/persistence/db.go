// Package persistence provides SQLite-based storage for match history,
// faction event logs, and learned profile state carried across matches.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/vanguard/internal/faction"
	"github.com/talgya/vanguard/internal/profile"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path, creating parent
// directories as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		sim_seconds REAL NOT NULL,
		winner TEXT,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS match_factions (
		match_id INTEGER NOT NULL REFERENCES matches(id),
		name TEXT NOT NULL,
		archetype TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		units_lost INTEGER NOT NULL,
		kills INTEGER NOT NULL,
		won INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id INTEGER NOT NULL,
		sim_time REAL NOT NULL,
		faction INTEGER NOT NULL,
		type TEXT NOT NULL,
		detail TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS learned_profiles (
		archetype TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		battles_won INTEGER NOT NULL,
		battles_lost INTEGER NOT NULL,
		aggression_level REAL NOT NULL,
		defense_focus REAL NOT NULL,
		risk_tolerance REAL NOT NULL,
		PRIMARY KEY (archetype, difficulty)
	);

	CREATE INDEX IF NOT EXISTS idx_events_match ON events(match_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// MatchFaction is one faction's line in a saved match result.
type MatchFaction struct {
	Name       string
	Archetype  string
	Difficulty string
	UnitsLost  int
	Kills      int
	Won        bool
}

// SaveMatch records a finished match and its per-faction lines, returning the
// match ID.
func (db *DB) SaveMatch(seed int64, simSeconds float64, winner string, factions []MatchFaction) (int64, error) {
	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO matches (seed, sim_seconds, winner) VALUES (?, ?, ?)",
		seed, simSeconds, winner,
	)
	if err != nil {
		return 0, fmt.Errorf("insert match: %w", err)
	}
	matchID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, f := range factions {
		won := 0
		if f.Won {
			won = 1
		}
		_, err := tx.Exec(`INSERT INTO match_factions
			(match_id, name, archetype, difficulty, units_lost, kills, won)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			matchID, f.Name, f.Archetype, f.Difficulty, f.UnitsLost, f.Kills, won,
		)
		if err != nil {
			return 0, fmt.Errorf("insert match faction %s: %w", f.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return matchID, nil
}

// SaveEvents appends faction events under a match.
func (db *DB) SaveEvents(matchID int64, events []faction.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (match_id, sim_time, faction, type, detail) VALUES (?, ?, ?, ?, ?)",
			matchID, e.Time, e.Faction, e.Type, e.Detail,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// EventRow is one persisted faction event.
type EventRow struct {
	MatchID int64   `db:"match_id"`
	SimTime float64 `db:"sim_time"`
	Faction int64   `db:"faction"`
	Type    string  `db:"type"`
	Detail  string  `db:"detail"`
}

// RecentEvents returns the most recent N events across matches.
func (db *DB) RecentEvents(limit int) ([]EventRow, error) {
	var rows []EventRow
	err := db.conn.Select(&rows,
		"SELECT match_id, sim_time, faction, type, detail FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return rows, err
}

// SaveLearnedProfile persists the baseline drift and battle record a profile
// accumulated, keyed by archetype and difficulty.
func (db *DB) SaveLearnedProfile(p *profile.Profile, difficulty string) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO learned_profiles
		(archetype, difficulty, battles_won, battles_lost,
		 aggression_level, defense_focus, risk_tolerance)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, difficulty, p.BattlesWon, p.BattlesLost,
		p.AggressionLevel, p.DefenseFocus, p.RiskTolerance,
	)
	return err
}

// RestoreLearnedProfile overlays saved learning onto a freshly built profile.
// A profile never saved before is returned untouched.
func (db *DB) RestoreLearnedProfile(p *profile.Profile, difficulty string) error {
	var row struct {
		BattlesWon      int     `db:"battles_won"`
		BattlesLost     int     `db:"battles_lost"`
		AggressionLevel float64 `db:"aggression_level"`
		DefenseFocus    float64 `db:"defense_focus"`
		RiskTolerance   float64 `db:"risk_tolerance"`
	}
	err := db.conn.Get(&row,
		`SELECT battles_won, battles_lost, aggression_level, defense_focus, risk_tolerance
		 FROM learned_profiles WHERE archetype = ? AND difficulty = ?`,
		p.Name, difficulty,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore profile: %w", err)
	}

	p.AggressionLevel = row.AggressionLevel
	p.DefenseFocus = row.DefenseFocus
	p.RiskTolerance = row.RiskTolerance
	p.InitializeDynamicValues()
	// Carry the lifetime record forward after the reset above.
	p.BattlesWon = row.BattlesWon
	p.BattlesLost = row.BattlesLost
	if total := row.BattlesWon + row.BattlesLost; total > 0 {
		p.WinRate = float64(row.BattlesWon) / float64(total)
	}

	slog.Info("restored learned profile",
		"archetype", p.Name, "difficulty", difficulty,
		"record", fmt.Sprintf("%d-%d", row.BattlesWon, row.BattlesLost))
	return nil
}
