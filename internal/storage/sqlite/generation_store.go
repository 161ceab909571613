package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxGenerations is the number of generation records kept.
const maxGenerations = 500

var (
	// ErrNotFound is returned when no generation matches an id.
	ErrNotFound = errors.New("generation not found")
	// ErrAmbiguousID is returned when an id prefix matches several generations.
	ErrAmbiguousID = errors.New("generation id prefix is ambiguous")
)

// Generation is one text generation request and its outcome.
type Generation struct {
	ID        string
	Prompt    string
	Output    string
	Error     string // Empty when the generator succeeded
	Accepted  bool   // Whether the output was inserted into the document
	Duration  time.Duration
	File      string // File being edited, empty for an untitled document
	CreatedAt time.Time
}

// Failed reports whether the generator returned an error.
func (g Generation) Failed() bool {
	return g.Error != ""
}

// ShortID returns the first eight characters of the id.
func (g Generation) ShortID() string {
	if len(g.ID) > 8 {
		return g.ID[:8]
	}
	return g.ID
}

// GenerationStore records text generation history.
type GenerationStore struct {
	db *DB
}

// NewGenerationStore creates a new GenerationStore with the given database connection.
func NewGenerationStore(db *DB) *GenerationStore {
	return &GenerationStore{db: db}
}

// Add inserts a generation. A missing ID or CreatedAt is filled in on g.
// Only the most recent records are kept.
func (s *GenerationStore) Add(ctx context.Context, g *Generation) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO generations (id, prompt, output, error, accepted, duration_ms, file, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.Prompt, g.Output, g.Error, g.Accepted, g.Duration.Milliseconds(), g.File,
		g.CreatedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to save generation: %w", err)
	}

	// Cleanup old entries
	_, _ = s.db.conn.ExecContext(ctx, `
		DELETE FROM generations
		WHERE id NOT IN (
			SELECT id FROM generations
			ORDER BY created_at DESC
			LIMIT ?
		)
	`, maxGenerations)

	return nil
}

// Recent returns the most recent generations, newest first.
func (s *GenerationStore) Recent(ctx context.Context, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT id, prompt, output, error, accepted, duration_ms, file, created_at
		FROM generations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query generations: %w", err)
	}
	defer rows.Close()

	var gens []Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}

// Get returns the generation with the given id. A unique prefix of an id is
// accepted as well.
func (s *GenerationStore) Get(ctx context.Context, id string) (Generation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Generation{}, ErrNotFound
	}

	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT id, prompt, output, error, accepted, duration_ms, file, created_at
		FROM generations
		WHERE id = ? OR id LIKE ? || '%'
		ORDER BY (id = ?) DESC
		LIMIT 2
	`, id, id, id)
	if err != nil {
		return Generation{}, fmt.Errorf("failed to query generation: %w", err)
	}
	defer rows.Close()

	var matches []Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return Generation{}, err
		}
		matches = append(matches, g)
	}
	if err := rows.Err(); err != nil {
		return Generation{}, err
	}

	switch {
	case len(matches) == 0:
		return Generation{}, ErrNotFound
	case matches[0].ID == id || len(matches) == 1:
		return matches[0], nil
	default:
		return Generation{}, ErrAmbiguousID
	}
}

// Count returns the number of stored generations.
func (s *GenerationStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM generations").Scan(&count)
	return count, err
}

// Clear deletes all generations and returns how many were removed.
func (s *GenerationStore) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.conn.ExecContext(ctx, "DELETE FROM generations")
	if err != nil {
		return 0, fmt.Errorf("failed to clear generations: %w", err)
	}
	return result.RowsAffected()
}

func scanGeneration(rows *sql.Rows) (Generation, error) {
	var (
		g          Generation
		durationMs int64
		createdAt  string
	)
	if err := rows.Scan(&g.ID, &g.Prompt, &g.Output, &g.Error, &g.Accepted,
		&durationMs, &g.File, &createdAt); err != nil {
		return Generation{}, fmt.Errorf("failed to scan generation: %w", err)
	}

	g.Duration = time.Duration(durationMs) * time.Millisecond
	ts, err := time.Parse(timeFormat, createdAt)
	if err != nil {
		return Generation{}, fmt.Errorf("invalid timestamp %q: %w", createdAt, err)
	}
	g.CreatedAt = ts.Local()
	return g, nil
}
