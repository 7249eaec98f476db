package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/maxsrimongkol-lgtm/study-buddy/internal/repositories/session Repository

import (
	"context"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
)

// Repository defines the interface for session storage.
// Implementations keep sessions in insertion order and hand out copies.
type Repository interface {
	// CreateSession appends a new session
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// ListSessions returns every stored session in insertion order
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// UpdateSession overwrites a stored session. The join count is owned by IncrementJoins and is left alone.
	UpdateSession(ctx context.Context, input *UpdateSessionInput) error

	// IncrementJoins adds one to the join counter and returns the updated session
	IncrementJoins(ctx context.Context, input *IncrementJoinsInput) (*models.Session, error)

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, input *DeleteSessionInput) error

	// DeleteExpired removes every session whose end time is at or before Now
	DeleteExpired(ctx context.Context, input *DeleteExpiredInput) (*DeleteExpiredOutput, error)
}
