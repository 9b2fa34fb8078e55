// Package storage keeps saved puzzle states in SQLite save slots.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"jigsaw/src/puzzle"

	_ "modernc.org/sqlite"
)

var (
	ErrSlotNotFound  = errors.New("save slot not found")
	ErrNotConfigured = errors.New("storage is not configured")
	ErrEmptySlotName = errors.New("slot name is required")
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS placements (
	slot     TEXT    NOT NULL REFERENCES slots(name) ON DELETE CASCADE,
	seq      INTEGER NOT NULL,
	piece_id INTEGER NOT NULL,
	x        REAL    NOT NULL,
	y        REAL    NOT NULL,
	PRIMARY KEY (slot, seq)
);`

// Store persists board placements per named slot
type Store struct {
	sqlDB *sql.DB
}

// Slot describes one saved state
type Slot struct {
	Name      string
	Pieces    int
	UpdatedAt time.Time
}

func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save replaces the slot content with the placements in the given order
func (s *Store) Save(ctx context.Context, slot string, placements []puzzle.Placement) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}
	slot, err = slotName(slot)
	if err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM placements WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("clear slot %q: %w", slot, err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO slots (name, updated_at) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET updated_at = excluded.updated_at`,
		slot, time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("upsert slot %q: %w", slot, err)
	}
	for i, p := range placements {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO placements (slot, seq, piece_id, x, y) VALUES (?, ?, ?, ?, ?)`,
			slot, i, p.ID, p.X, p.Y,
		); err != nil {
			return fmt.Errorf("insert placement %d: %w", p.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load returns the slot placements in saved order
func (s *Store) Load(ctx context.Context, slot string) ([]puzzle.Placement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, ErrNotConfigured
	}
	slot, err := slotName(slot)
	if err != nil {
		return nil, err
	}

	var exists int
	err = s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM slots WHERE name = ?`, slot).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup slot %q: %w", slot, err)
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT piece_id, x, y FROM placements WHERE slot = ? ORDER BY seq`, slot)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	var out []puzzle.Placement
	for rows.Next() {
		var p puzzle.Placement
		if err := rows.Scan(&p.ID, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate placements: %w", err)
	}
	return out, nil
}

// Slots lists saved slots, most recent first
func (s *Store) Slots(ctx context.Context) ([]Slot, error) {
	if s == nil || s.sqlDB == nil {
		return nil, ErrNotConfigured
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT s.name, s.updated_at, COUNT(p.seq)
		   FROM slots s LEFT JOIN placements p ON p.slot = s.name
		  GROUP BY s.name
		  ORDER BY s.updated_at DESC, s.name`)
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}
	defer rows.Close()

	var out []Slot
	for rows.Next() {
		var (
			sl      Slot
			updated int64
		)
		if err := rows.Scan(&sl.Name, &updated, &sl.Pieces); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		sl.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sl)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, slot string) error {
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}
	slot, err := slotName(slot)
	if err != nil {
		return err
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, slot)
	if err != nil {
		return fmt.Errorf("delete slot %q: %w", slot, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	return nil
}

// slotName is the stored form of a slot name
func slotName(slot string) (string, error) {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return "", ErrEmptySlotName
	}
	return slot, nil
}
