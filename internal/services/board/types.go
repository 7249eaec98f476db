package board

import (
	"time"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/clock"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/uuid"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	sessionRepo "github.com/maxsrimongkol-lgtm/study-buddy/internal/repositories/session"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/secret"
	"go.uber.org/zap"
)

const (
	DefaultMaxDuration          = 5 * time.Hour
	DefaultMaxLocationLength    = 50
	DefaultMaxDescriptionLength = 100
)

// Locator maps a location string to map coordinates
type Locator interface {
	Resolve(text string) (lat, lon float64)
}

// Rules are the posting constraints. Zero values switch a constraint off.
type Rules struct {
	// MaxDuration caps EndTime - StartTime
	MaxDuration time.Duration

	// MaxLocationLength caps the location, in characters
	MaxLocationLength int

	// MaxDescriptionLength caps the description, in characters
	MaxDescriptionLength int

	// Vibes restricts the vibe to a fixed list; empty allows free text
	Vibes []models.Vibe

	// RecomputeCoordsOnEdit re-resolves lat/lon when the location is edited.
	// Off by default: an edited session keeps the pin of its original location.
	RecomputeCoordsOnEdit bool
}

// DefaultRules are the strict posting rules
func DefaultRules() Rules {
	return Rules{
		MaxDuration:          DefaultMaxDuration,
		MaxLocationLength:    DefaultMaxLocationLength,
		MaxDescriptionLength: DefaultMaxDescriptionLength,
	}
}

// Config holds configuration for the board service
type Config struct {
	// Posting rules
	Rules Rules

	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Locator       Locator
	Keeper        secret.Keeper
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// CreateSessionInput is the typed form of a posted session
type CreateSessionInput struct {
	Course      string
	Location    string
	Vibe        string
	Description string
	SecretKey   string
	StartTime   time.Time
	EndTime     time.Time
}

type CreateSessionOutput struct {
	Session *models.Session
}

type GetSessionInput struct {
	SessionID string
}

type GetSessionOutput struct {
	Session *models.Session
}

type PruneInput struct {
	// Now defaults to the service clock
	Now time.Time
}

type PruneOutput struct {
	// SessionIDs lists the sessions that were removed
	SessionIDs []string
}

type ListActiveInput struct {
	// Now defaults to the service clock
	Now time.Time
}

type ListActiveOutput struct {
	Sessions []*models.Session

	// Now is the instant the listing was taken at
	Now time.Time
}

type JoinSessionInput struct {
	SessionID string
}

type JoinSessionOutput struct {
	Session *models.Session
}

type DeleteSessionInput struct {
	SessionID string
	SecretKey string
}

type DeleteSessionOutput struct {
	Success bool
}

type EditLocationInput struct {
	SessionID string
	SecretKey string
	Location  string
}

type EditLocationOutput struct {
	Session *models.Session
}
