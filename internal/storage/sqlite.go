// Package storage keeps a SQLite history of played matches and their
// battles. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sqlx.DB
}

// Match is one row of the matches table. Unfinished matches have outcome
// "ongoing" and a zero EndedAt.
type Match struct {
	ID         string    `db:"id"`
	Scenario   string    `db:"scenario"`
	Seed       int64     `db:"seed"`
	Difficulty string    `db:"difficulty"`
	Autoplay   bool      `db:"autoplay"`
	Turns      int       `db:"turns"`
	Outcome    string    `db:"outcome"`
	StartedAt  time.Time `db:"-"`
	EndedAt    time.Time `db:"-"`

	Started int64 `db:"started_at"`
	Ended   int64 `db:"ended_at"`
}

// Battle is one recorded engagement.
type Battle struct {
	ID             int64   `db:"id"`
	MatchID        string  `db:"match_id"`
	Turn           int     `db:"turn"`
	Kind           string  `db:"kind"`
	Location       string  `db:"location"`
	Attacker       string  `db:"attacker"`
	Defender       string  `db:"defender"`
	AttackerPower  float64 `db:"attacker_power"`
	DefenderPower  float64 `db:"defender_power"`
	AttackerWon    bool    `db:"attacker_won"`
	AttackerLosses int     `db:"attacker_losses"`
	DefenderLosses int     `db:"defender_losses"`
}

// Stats aggregates the whole history.
type Stats struct {
	Matches   int `db:"matches"`
	Victories int `db:"victories"`
	Defeats   int `db:"defeats"`
	Draws     int `db:"draws"`
	Battles   int `db:"battles"`
}

// OutcomeOngoing marks a match that has not been finished.
const OutcomeOngoing = "ongoing"

// NewMatchID returns a fresh match identifier.
func NewMatchID() string {
	return uuid.NewString()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			scenario TEXT NOT NULL,
			seed INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			autoplay INTEGER NOT NULL DEFAULT 0,
			turns INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL DEFAULT 'ongoing',
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_matches_started ON matches(started_at DESC);

		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(id),
			turn INTEGER NOT NULL,
			kind TEXT NOT NULL,
			location TEXT NOT NULL,
			attacker TEXT NOT NULL,
			defender TEXT NOT NULL,
			attacker_power REAL NOT NULL,
			defender_power REAL NOT NULL,
			attacker_won INTEGER NOT NULL,
			attacker_losses INTEGER NOT NULL,
			defender_losses INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_battles_match ON battles(match_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginMatch records the start of a match. An empty ID is filled in.
func (s *Store) BeginMatch(m *Match) error {
	if m.ID == "" {
		m.ID = NewMatchID()
	}
	if m.StartedAt.IsZero() {
		m.StartedAt = time.Now()
	}
	if m.Outcome == "" {
		m.Outcome = OutcomeOngoing
	}
	m.Started = m.StartedAt.Unix()
	_, err := s.db.NamedExec(
		`INSERT INTO matches (id, scenario, seed, difficulty, autoplay, turns, outcome, started_at)
		 VALUES (:id, :scenario, :seed, :difficulty, :autoplay, :turns, :outcome, :started_at)`,
		m,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save match: %w", err)
	}
	return nil
}

// FinishMatch stores the final turn count and outcome.
func (s *Store) FinishMatch(id string, turns int, outcome string, at time.Time) error {
	res, err := s.db.Exec(
		"UPDATE matches SET turns = ?, outcome = ?, ended_at = ? WHERE id = ?",
		turns, outcome, at.Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish match: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: no match %s", id)
	}
	return nil
}

// SaveBattle records an engagement. Returns the ID of the inserted record.
func (s *Store) SaveBattle(b Battle) (int64, error) {
	res, err := s.db.NamedExec(
		`INSERT INTO battles
		 (match_id, turn, kind, location, attacker, defender, attacker_power, defender_power,
		  attacker_won, attacker_losses, defender_losses)
		 VALUES (:match_id, :turn, :kind, :location, :attacker, :defender, :attacker_power, :defender_power,
		  :attacker_won, :attacker_losses, :defender_losses)`,
		b,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save battle: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// MatchByID retrieves a match. Returns nil if there is none.
func (s *Store) MatchByID(id string) (*Match, error) {
	var m Match
	err := s.db.Get(&m, "SELECT * FROM matches WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	m.fillTimes()
	return &m, nil
}

// RecentMatches returns the latest matches, newest first.
func (s *Store) RecentMatches(limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 20
	}
	var matches []Match
	err := s.db.Select(&matches,
		"SELECT * FROM matches ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	for i := range matches {
		matches[i].fillTimes()
	}
	return matches, nil
}

// Battles returns a match's engagements in the order they happened.
func (s *Store) Battles(matchID string) ([]Battle, error) {
	var battles []Battle
	err := s.db.Select(&battles, "SELECT * FROM battles WHERE match_id = ? ORDER BY id", matchID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	return battles, nil
}

// Stats counts finished matches by outcome and every recorded battle.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.Get(&st,
		`SELECT
			COUNT(*) AS matches,
			COALESCE(SUM(outcome = 'victory'), 0) AS victories,
			COALESCE(SUM(outcome = 'defeat'), 0) AS defeats,
			COALESCE(SUM(outcome = 'draw'), 0) AS draws,
			(SELECT COUNT(*) FROM battles) AS battles
		 FROM matches`,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	return st, nil
}

func (m *Match) fillTimes() {
	m.StartedAt = time.Unix(m.Started, 0)
	if m.Ended > 0 {
		m.EndedAt = time.Unix(m.Ended, 0)
	}
}
