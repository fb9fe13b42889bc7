package driven

import (
	"context"

	"github.com/custodia-labs/medrag-cli/internal/core/domain"
)

// EvaluationStore persists answer evaluations for offline monitoring.
// The serving path never reads from this store.
type EvaluationStore interface {
	// Save stores one evaluation result.
	Save(ctx context.Context, result domain.EvaluationResult) error

	// List returns the most recent evaluations, newest first,
	// up to limit (all when limit <= 0).
	List(ctx context.Context, limit int) ([]domain.EvaluationResult, error)

	// Close releases resources.
	Close() error
}
