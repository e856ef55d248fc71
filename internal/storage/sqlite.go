// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"fmt"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/interfaces"
	"log"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists per-mode progress and finished runs in a SQLite file.
type SQLiteStore struct {
	conn *sql.DB
}

// RunRow is one finished session.
type RunRow struct {
	Mode          defs.Mode
	Victory       bool
	Score         int
	WavesSurvived int
}

// OpenDB opens (or creates) the database at path.
func OpenDB(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	db := &SQLiteStore{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *SQLiteStore) Close() error {
	return db.conn.Close()
}

func (db *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS progress (
		mode TEXT PRIMARY KEY,
		wave_index INTEGER NOT NULL DEFAULT 0,
		currency INTEGER NOT NULL DEFAULT 0,
		lives INTEGER NOT NULL DEFAULT 0,
		score INTEGER NOT NULL DEFAULT 0,
		build_counts BLOB,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mode TEXT NOT NULL,
		victory INTEGER NOT NULL DEFAULT 0,
		score INTEGER NOT NULL DEFAULT 0,
		waves_survived INTEGER NOT NULL DEFAULT 0,
		build_counts BLOB,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_mode_score ON runs(mode, score);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// SaveProgress replaces the record of mode.
func (db *SQLiteStore) SaveProgress(mode defs.Mode, p interfaces.Progress) error {
	counts, err := encodeCounts(p.TowerBuildCounts)
	if err != nil {
		return fmt.Errorf("encode build counts: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT INTO progress (mode, wave_index, currency, lives, score, build_counts, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(mode) DO UPDATE SET
			wave_index = excluded.wave_index,
			currency = excluded.currency,
			lives = excluded.lives,
			score = excluded.score,
			build_counts = excluded.build_counts,
			updated_at = CURRENT_TIMESTAMP`,
		string(mode), p.WaveIndex, p.Currency, p.Lives, p.Score, counts,
	)
	return err
}

// LoadProgress returns the record of mode, if one was saved.
func (db *SQLiteStore) LoadProgress(mode defs.Mode) (interfaces.Progress, bool, error) {
	row := db.conn.QueryRow(
		"SELECT wave_index, currency, lives, score, build_counts FROM progress WHERE mode = ?",
		string(mode),
	)
	var p interfaces.Progress
	var counts []byte
	err := row.Scan(&p.WaveIndex, &p.Currency, &p.Lives, &p.Score, &counts)
	if err == sql.ErrNoRows {
		return interfaces.Progress{}, false, nil
	}
	if err != nil {
		return interfaces.Progress{}, false, err
	}
	if p.TowerBuildCounts, err = decodeCounts(counts); err != nil {
		return interfaces.Progress{}, false, fmt.Errorf("decode build counts: %w", err)
	}
	return p, true, nil
}

// RecordRun appends a finished session to the run history.
func (db *SQLiteStore) RecordRun(s interfaces.Summary) error {
	counts, err := encodeCounts(s.TowerBuildCounts)
	if err != nil {
		return fmt.Errorf("encode build counts: %w", err)
	}
	victory := 0
	if s.Victory {
		victory = 1
	}
	_, err = db.conn.Exec(
		"INSERT INTO runs (mode, victory, score, waves_survived, build_counts) VALUES (?, ?, ?, ?, ?)",
		string(s.Mode), victory, s.FinalScore, s.WavesSurvived, counts,
	)
	return err
}

// TopRuns returns the best finished runs of mode, highest score first.
func (db *SQLiteStore) TopRuns(mode defs.Mode, limit int) ([]RunRow, error) {
	rows, err := db.conn.Query(
		"SELECT mode, victory, score, waves_survived FROM runs WHERE mode = ? ORDER BY score DESC, id ASC LIMIT ?",
		string(mode), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		var m string
		var victory int
		if err := rows.Scan(&m, &victory, &r.Score, &r.WavesSurvived); err != nil {
			return nil, err
		}
		r.Mode = defs.Mode(m)
		r.Victory = victory != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
