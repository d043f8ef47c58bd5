package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/streetbook/internal/engine"
	_ "modernc.org/sqlite"
)

const saveSlot = 1

// SQLiteStore keeps the save in a single-row sqlite table, the snapshot
// serialized as a JSON blob. One writer at a time; the connection pool is
// pinned to a single connection for that reason.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens (or creates) the save database at path. Parent
// directories are created as needed.
func OpenSQLite(path string, logger *log.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create save directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open save database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping save database: %w", err)
	}

	create := `
		CREATE TABLE IF NOT EXISTS saves (
			slot INTEGER PRIMARY KEY,
			payload TEXT NOT NULL,
			week INTEGER NOT NULL,
			day INTEGER NOT NULL,
			bankroll INTEGER NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`
	if _, err := db.ExecContext(ctx, create); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create saves table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger.WithPrefix("store")}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*engine.GameState, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM saves WHERE slot = ?", saveSlot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load save: %w", err)
	}

	state, err := engine.DecodeSnapshot([]byte(payload))
	if err != nil {
		// A corrupt save is treated as no save rather than a hard failure.
		s.logger.Warn("discarding corrupt save", "error", err)
		return nil, false, nil
	}
	return state, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, state *engine.GameState) error {
	payload, err := engine.EncodeSnapshot(state)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	upsert := `
		INSERT INTO saves (slot, payload, week, day, bankroll, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			payload = excluded.payload,
			week = excluded.week,
			day = excluded.day,
			bankroll = excluded.bankroll,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, upsert,
		saveSlot, string(payload), state.Week, state.Day, state.Bankroll, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Delete clears the save slot.
func (s *SQLiteStore) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM saves WHERE slot = ?", saveSlot); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
