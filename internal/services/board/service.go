package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/clock"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/uuid"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	sessionRepo "github.com/maxsrimongkol-lgtm/study-buddy/internal/repositories/session"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/secret"
	"go.uber.org/zap"
)

// service implements the Service interface
type service struct {
	rules         Rules
	sessionRepo   sessionRepo.Repository
	locator       Locator
	keeper        secret.Keeper
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *zap.Logger
}

// New creates a new board service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Locator == nil {
		return nil, ErrNilLocator
	}

	if cfg.Keeper == nil {
		return nil, ErrNilKeeper
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		rules:         cfg.Rules,
		sessionRepo:   cfg.SessionRepo,
		locator:       cfg.Locator,
		keeper:        cfg.Keeper,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger.Named("board"),
	}, nil
}

// Create validates and posts a new study session
func (s *service) Create(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	fields, err := s.validateCreate(input)
	if err != nil {
		return nil, err
	}

	storedKey, err := s.keeper.Seal(input.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to seal secret key: %w", err)
	}

	lat, lon := s.locator.Resolve(fields.Location)

	session := &models.Session{
		ID:          s.uuidGenerator.NewUUID(),
		Course:      strings.ToUpper(fields.Course),
		Location:    fields.Location,
		Vibe:        fields.vibe,
		Description: fields.Description,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		SecretKey:   storedKey,
		Joins:       0,
		Lat:         lat,
		Lon:         lon,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
		Session: session,
	}); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("session posted",
		zap.String("session_id", session.ID),
		zap.String("course", session.Course),
		zap.Time("start", session.StartTime),
		zap.Time("end", session.EndTime),
		zap.Duration("length", session.Duration()),
	)

	return &CreateSessionOutput{
		Session: session,
	}, nil
}

// Get returns one session by ID
func (s *service) Get(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: session,
	}, nil
}

// Prune permanently removes sessions whose end time is at or before now
func (s *service) Prune(ctx context.Context, input *PruneInput) (*PruneOutput, error) {
	if input == nil {
		input = &PruneInput{}
	}

	now := s.now(input.Now)
	out, err := s.sessionRepo.DeleteExpired(ctx, &sessionRepo.DeleteExpiredInput{
		Now: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to prune sessions: %w", err)
	}

	if len(out.SessionIDs) > 0 {
		s.logger.Info("pruned ended sessions",
			zap.Int("count", len(out.SessionIDs)),
			zap.Strings("session_ids", out.SessionIDs),
		)
	}

	return &PruneOutput{
		SessionIDs: out.SessionIDs,
	}, nil
}

// ListActive prunes, then returns what is left in posting order
func (s *service) ListActive(ctx context.Context, input *ListActiveInput) (*ListActiveOutput, error) {
	if input == nil {
		input = &ListActiveInput{}
	}

	now := s.now(input.Now)
	if _, err := s.Prune(ctx, &PruneInput{Now: now}); err != nil {
		return nil, err
	}

	out, err := s.sessionRepo.ListSessions(ctx, &sessionRepo.ListSessionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	// Pruning and listing are separate store calls; filter again so nothing ended slips through
	active := make([]*models.Session, 0, len(out.Sessions))
	for _, session := range out.Sessions {
		if session.IsActive(now) {
			active = append(active, session)
		}
	}

	return &ListActiveOutput{
		Sessions: active,
		Now:      now,
	}, nil
}

// Join adds one to the join counter. Anyone may join any number of times.
func (s *service) Join(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessionRepo.IncrementJoins(ctx, &sessionRepo.IncrementJoinsInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to join session: %w", err)
	}

	s.logger.Debug("session joined",
		zap.String("session_id", session.ID),
		zap.Int("joins", session.Joins),
	)

	return &JoinSessionOutput{
		Session: session,
	}, nil
}

// Delete removes the session if the supplied key unlocks it
func (s *service) Delete(ctx context.Context, input *DeleteSessionInput) (*DeleteSessionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := s.authorize(ctx, input.SessionID, input.SecretKey, "delete")
	if err != nil {
		return nil, err
	}

	err = s.sessionRepo.DeleteSession(ctx, &sessionRepo.DeleteSessionInput{
		SessionID: session.ID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info("session deleted", zap.String("session_id", session.ID))

	return &DeleteSessionOutput{
		Success: true,
	}, nil
}

// EditLocation overwrites the location if the supplied key unlocks the session.
// Coordinates stay as they were unless Rules.RecomputeCoordsOnEdit is set.
func (s *service) EditLocation(ctx context.Context, input *EditLocationInput) (*EditLocationOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	newLocation, err := s.validateLocation(input.Location)
	if err != nil {
		return nil, err
	}

	session, err := s.authorize(ctx, input.SessionID, input.SecretKey, "edit_location")
	if err != nil {
		return nil, err
	}

	session.Location = newLocation
	if s.rules.RecomputeCoordsOnEdit {
		session.Lat, session.Lon = s.locator.Resolve(newLocation)
	}

	err = s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Session: session,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	s.logger.Info("session moved",
		zap.String("session_id", session.ID),
		zap.Bool("coords_recomputed", s.rules.RecomputeCoordsOnEdit),
	)

	return &EditLocationOutput{
		Session: session,
	}, nil
}

// authorize loads the session and checks the supplied key against it
func (s *service) authorize(ctx context.Context, sessionID, suppliedKey, action string) (*models.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !s.keeper.Match(session.SecretKey, suppliedKey) {
		s.logger.Warn("secret key mismatch",
			zap.String("session_id", sessionID),
			zap.String("action", action),
		)
		return nil, ErrUnauthorized
	}

	return session, nil
}

func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (s *service) now(override time.Time) time.Time {
	if !override.IsZero() {
		return override
	}
	return s.clock.Now()
}
