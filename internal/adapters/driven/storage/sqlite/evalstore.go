package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/medrag-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/medrag-cli/internal/core/domain"
	"github.com/custodia-labs/medrag-cli/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// EvaluationStore persists evaluation results in SQLite.
type EvaluationStore struct {
	db   *sql.DB
	path string
}

var _ driven.EvaluationStore = (*EvaluationStore)(nil)

// NewEvaluationStore creates a SQLite evaluation store at the specified
// data directory. If dataDir is empty, defaults to ~/.medrag/data/evaluations.db.
func NewEvaluationStore(dataDir string) (*EvaluationStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".medrag", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "evaluations.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &EvaluationStore{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *EvaluationStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *EvaluationStore) Path() string {
	return s.path
}

// Save stores one evaluation result.
func (s *EvaluationStore) Save(ctx context.Context, result domain.EvaluationResult) error {
	sourcesJSON, err := json.Marshal(result.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	metricsJSON, err := json.Marshal(result.Metrics)
	if err != nil {
		return fmt.Errorf("marshalling metrics: %w", err)
	}

	feedbackJSON, err := json.Marshal(result.Feedback)
	if err != nil {
		return fmt.Errorf("marshalling feedback: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (query_id, query, answer, sources, metrics, feedback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, result.QueryID, result.Query, result.Answer, string(sourcesJSON),
		string(metricsJSON), string(feedbackJSON), result.CreatedAt)

	if err != nil {
		return fmt.Errorf("saving evaluation: %w", err)
	}
	return nil
}

// List returns the most recent evaluations, newest first, up to limit
// (all when limit <= 0).
func (s *EvaluationStore) List(ctx context.Context, limit int) ([]domain.EvaluationResult, error) {
	query := `
		SELECT query_id, query, answer, sources, metrics, feedback, created_at
		FROM evaluations
		ORDER BY created_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying evaluations: %w", err)
	}
	defer rows.Close()

	var results []domain.EvaluationResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		result, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating evaluations: %w", err)
	}

	return results, nil
}

// scanEvaluation scans an evaluation from *sql.Rows.
func scanEvaluation(rows *sql.Rows) (*domain.EvaluationResult, error) {
	var result domain.EvaluationResult
	var sourcesJSON, metricsJSON string
	var feedbackJSON sql.NullString

	if err := rows.Scan(&result.QueryID, &result.Query, &result.Answer,
		&sourcesJSON, &metricsJSON, &feedbackJSON, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("scanning evaluation: %w", err)
	}

	if err := json.Unmarshal([]byte(sourcesJSON), &result.Sources); err != nil {
		return nil, fmt.Errorf("unmarshalling sources: %w", err)
	}

	if err := json.Unmarshal([]byte(metricsJSON), &result.Metrics); err != nil {
		return nil, fmt.Errorf("unmarshalling metrics: %w", err)
	}

	if feedbackJSON.Valid && feedbackJSON.String != jsonNull {
		if err := json.Unmarshal([]byte(feedbackJSON.String), &result.Feedback); err != nil {
			return nil, fmt.Errorf("unmarshalling feedback: %w", err)
		}
	}

	return &result, nil
}

// migrate runs all pending migrations.
func (s *EvaluationStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}
