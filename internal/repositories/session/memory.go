package session

import (
	"context"
	"errors"
	"sync"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
)

// memoryRepository keeps sessions in process memory. Everything is lost on restart.
type memoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*models.Session
}

// NewMemory creates an empty in-memory session repository
func NewMemory() *memoryRepository {
	return &memoryRepository{
		byID: make(map[string]*models.Session),
	}
}

func (r *memoryRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[input.Session.ID]; ok {
		return ErrSessionExists
	}

	r.byID[input.Session.ID] = input.Session.Clone()
	r.order = append(r.order, input.Session.ID)

	return nil
}

func (r *memoryRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[input.SessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	return s.Clone(), nil
}

func (r *memoryRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]*models.Session, 0, len(r.order))
	for _, id := range r.order {
		sessions = append(sessions, r.byID[id].Clone())
	}

	return &ListSessionsOutput{
		Sessions: sessions,
	}, nil
}

func (r *memoryRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[input.Session.ID]
	if !ok {
		return ErrSessionNotFound
	}

	updated := input.Session.Clone()
	updated.Joins = existing.Joins
	r.byID[updated.ID] = updated

	return nil
}

func (r *memoryRepository) IncrementJoins(ctx context.Context, input *IncrementJoinsInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[input.SessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Joins++

	return s.Clone(), nil
}

func (r *memoryRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[input.SessionID]; !ok {
		return ErrSessionNotFound
	}
	r.removeLocked(input.SessionID)

	return nil
}

func (r *memoryRepository) DeleteExpired(ctx context.Context, input *DeleteExpiredInput) (*DeleteExpiredOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var pruned []string
	kept := r.order[:0]
	for _, id := range r.order {
		if r.byID[id].IsActive(input.Now) {
			kept = append(kept, id)
			continue
		}
		pruned = append(pruned, id)
		delete(r.byID, id)
	}
	r.order = kept

	return &DeleteExpiredOutput{
		SessionIDs: pruned,
	}, nil
}

// removeLocked drops id from the store; callers hold the write lock
func (r *memoryRepository) removeLocked(id string) {
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}
