// Package journal records executed rename batches in a SQLite database.
//
// The journal is an audit trail, not an error log: recording failures never
// fail the rename that produced them, and a missing or broken journal leaves
// the tool fully functional.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// MoveRecord is one attempted move inside a batch.
type MoveRecord struct {
	Source      string
	Destination string
	Number      int
	Success     bool
	Error       string
}

// Batch is one confirmed rename operation for a single identifier.
type Batch struct {
	ID          string
	Destination string
	Identifier  string
	StartedAt   time.Time
	Moves       []MoveRecord
}

// NewBatch creates a Batch with a fresh unique ID, ready to collect move
// records.
func NewBatch(destination, identifier string) *Batch {
	return &Batch{
		ID:          uuid.New().String(),
		Destination: destination,
		Identifier:  identifier,
		StartedAt:   time.Now().UTC(),
	}
}

// Add appends one move outcome to the batch.
func (b *Batch) Add(source, destination string, number int, err error) {
	rec := MoveRecord{
		Source:      source,
		Destination: destination,
		Number:      number,
		Success:     err == nil,
	}
	if err != nil {
		rec.Error = err.Error()
	}
	b.Moves = append(b.Moves, rec)
}

// Store manages the SQLite journal database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if necessary) the journal database at dbPath.
// The special path ":memory:" opens an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	// busy_timeout first so schema creation waits on locks held by a
	// sibling run instead of failing.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordBatch writes a batch and its moves in one transaction.
func (s *Store) RecordBatch(ctx context.Context, batch *Batch) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (id, destination, identifier, started_at) VALUES (?, ?, ?, ?)`,
		batch.ID, batch.Destination, batch.Identifier, batch.StartedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for i, mv := range batch.Moves {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO moves (batch_id, position, source, destination, number, success, error)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			batch.ID, i, mv.Source, mv.Destination, mv.Number, mv.Success, mv.Error,
		)
		if err != nil {
			return fmt.Errorf("insert move %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit journal transaction: %w", err)
	}
	return nil
}

// RecentBatches returns up to limit batches for the given destination
// directory, newest first, each with its moves in plan order. An empty
// destination returns batches for all destinations.
func (s *Store) RecentBatches(ctx context.Context, destination string, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, destination, identifier, started_at FROM batches`
	args := []interface{}{}
	if destination != "" {
		query += ` WHERE destination = ?`
		args = append(args, destination)
	}
	query += ` ORDER BY started_at DESC, id LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	batches := make([]Batch, 0)
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.Destination, &b.Identifier, &b.StartedAt); err != nil {
			return nil, fmt.Errorf("scan batch row: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch rows: %w", err)
	}

	for i := range batches {
		moves, err := s.batchMoves(ctx, batches[i].ID)
		if err != nil {
			return nil, err
		}
		batches[i].Moves = moves
	}

	return batches, nil
}

func (s *Store) batchMoves(ctx context.Context, batchID string) ([]MoveRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, destination, number, success, error FROM moves
		 WHERE batch_id = ? ORDER BY position`,
		batchID,
	)
	if err != nil {
		return nil, fmt.Errorf("query moves for batch %s: %w", batchID, err)
	}
	defer rows.Close()

	moves := make([]MoveRecord, 0)
	for rows.Next() {
		var mv MoveRecord
		if err := rows.Scan(&mv.Source, &mv.Destination, &mv.Number, &mv.Success, &mv.Error); err != nil {
			return nil, fmt.Errorf("scan move row: %w", err)
		}
		moves = append(moves, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate move rows: %w", err)
	}
	return moves, nil
}
