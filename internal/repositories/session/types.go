package session

import (
	"errors"
	"time"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
)

var (
	// ErrSessionNotFound is returned when a session is not found
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists is returned when creating a session whose ID is taken
	ErrSessionExists = errors.New("session already exists")
)

type CreateSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type ListSessionsInput struct {
}

type ListSessionsOutput struct {
	Sessions []*models.Session
}

type UpdateSessionInput struct {
	Session *models.Session
}

type IncrementJoinsInput struct {
	SessionID string
}

type DeleteSessionInput struct {
	SessionID string
}

type DeleteExpiredInput struct {
	Now time.Time
}

type DeleteExpiredOutput struct {
	// SessionIDs lists what was pruned, in insertion order for the memory store
	SessionIDs []string
}
