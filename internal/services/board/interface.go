package board

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/maxsrimongkol-lgtm/study-buddy/internal/services/board Service

import "context"

// Service defines the operations of the study session board
type Service interface {
	// Create validates and posts a new study session
	Create(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// Get returns one session by ID
	Get(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// Prune permanently removes sessions that have ended
	Prune(ctx context.Context, input *PruneInput) (*PruneOutput, error)

	// ListActive prunes, then returns the remaining sessions in posting order
	ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error)

	// Join bumps the join counter of a session
	Join(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// Delete removes a session when the secret key matches
	Delete(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error)

	// EditLocation changes where a session happens when the secret key matches
	EditLocation(ctx context.Context, input *EditLocationInput) (*EditLocationOutput, error)
}
