package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "session:"
	joinsKeySuffix   = ":joins"
	boardKey         = "sessions"        // ZSET scored by insertion sequence
	boardSeqKey      = "sessions:seq"    // INCR counter feeding boardKey scores
	endIndexKey      = "sessions:by_end" // ZSET scored by end time in unix millis
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// maxTxRetries bounds optimistic-lock retries when a watched key changes mid-transaction
const maxTxRetries = 5

// redisRepository implements the Repository interface using Redis, so several
// processes can share one board
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func joinsKey(id string) string {
	return sessionKeyPrefix + id + joinsKeySuffix
}

// CreateSession stores the session and appends it to the board order
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	s := input.Session
	sessionJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	seq, err := r.client.Incr(ctx, boardSeqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate board position: %w", err)
	}

	// the record and both indexes are written in one MULTI, so a failure leaves nothing behind
	key := sessionKey(s.ID)
	err = r.watch(ctx, key, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrSessionExists
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, 0)
			pipe.Set(ctx, joinsKey(s.ID), s.Joins, 0)
			pipe.ZAdd(ctx, boardKey, redis.Z{
				Score:  float64(seq),
				Member: s.ID,
			})
			pipe.ZAdd(ctx, endIndexKey, redis.Z{
				Score:  float64(s.EndTime.UnixMilli()),
				Member: s.ID,
			})
			return nil
		})
		return err
	})

	if err != nil {
		if errors.Is(err, ErrSessionExists) {
			return err
		}
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	pipe := r.client.Pipeline()
	sessionCmd := pipe.Get(ctx, sessionKey(input.SessionID))
	joinsCmd := pipe.Get(ctx, joinsKey(input.SessionID))
	_, _ = pipe.Exec(ctx)

	return decodeSession(sessionCmd, joinsCmd)
}

// decodeSession builds a session from its JSON and its counter
func decodeSession(sessionCmd, joinsCmd *redis.StringCmd) (*models.Session, error) {
	sessionJSON, err := sessionCmd.Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	joins, err := joinsCmd.Int()
	switch {
	case err == nil:
		s.Joins = joins
	case errors.Is(err, redis.Nil):
		s.Joins = 0
	default:
		return nil, fmt.Errorf("failed to get join count: %w", err)
	}

	return &s, nil
}

// ListSessions returns every session in board order
func (r *redisRepository) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	ids, err := r.client.ZRange(ctx, boardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(ids) == 0 {
		return &ListSessionsOutput{Sessions: []*models.Session{}}, nil
	}

	pipe := r.client.Pipeline()
	sessionCmds := make([]*redis.StringCmd, len(ids))
	joinsCmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		sessionCmds[i] = pipe.Get(ctx, sessionKey(id))
		joinsCmds[i] = pipe.Get(ctx, joinsKey(id))
	}
	// Individual commands may fail with redis.Nil; those are handled per session below
	_, _ = pipe.Exec(ctx)

	sessions := make([]*models.Session, 0, len(ids))
	for i := range ids {
		s, err := decodeSession(sessionCmds[i], joinsCmds[i])
		if err != nil {
			if errors.Is(err, ErrSessionNotFound) {
				// deleted between ZRANGE and GET
				continue
			}
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return &ListSessionsOutput{
		Sessions: sessions,
	}, nil
}

// UpdateSession overwrites the stored JSON, keeping the join counter
func (r *redisRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	s := input.Session
	key := sessionKey(s.ID)

	err := r.watch(ctx, key, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrSessionNotFound
		}

		sessionJSON, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, sessionJSON, 0)
			pipe.ZAdd(ctx, endIndexKey, redis.Z{
				Score:  float64(s.EndTime.UnixMilli()),
				Member: s.ID,
			})
			return nil
		})
		return err
	})

	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return err
		}
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

// IncrementJoins bumps the counter of an existing session
func (r *redisRepository) IncrementJoins(ctx context.Context, input *IncrementJoinsInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	key := sessionKey(input.SessionID)

	var updated *models.Session
	err := r.watch(ctx, key, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrSessionNotFound
		}

		var sessionCmd, joinsCmd *redis.StringCmd
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Incr(ctx, joinsKey(input.SessionID))
			sessionCmd = pipe.Get(ctx, key)
			joinsCmd = pipe.Get(ctx, joinsKey(input.SessionID))
			return nil
		})
		if err != nil {
			return err
		}

		updated, err = decodeSession(sessionCmd, joinsCmd)
		return err
	})

	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to join session: %w", err)
	}

	return updated, nil
}

// watch runs fn under WATCH key, retrying when another client touched the key first
func (r *redisRepository) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	var err error
	for i := 0; i < maxTxRetries; i++ {
		err = r.client.Watch(ctx, fn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

// DeleteSession removes a session and its indexes
func (r *redisRepository) DeleteSession(ctx context.Context, input *DeleteSessionInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	deleted, err := r.deleteSessions(ctx, []string{input.SessionID})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteExpired prunes sessions whose end time is at or before input.Now
func (r *redisRepository) DeleteExpired(ctx context.Context, input *DeleteExpiredInput) (*DeleteExpiredOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	nowMilli := input.Now.UnixMilli()
	candidates, err := r.client.ZRangeByScoreWithScores(ctx, endIndexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(nowMilli, 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to find expired sessions: %w", err)
	}

	ids := make([]string, 0, len(candidates))
	for _, z := range candidates {
		id, ok := z.Member.(string)
		if !ok {
			continue
		}
		// the index is millisecond grained; within now's millisecond the stored end time decides
		if int64(z.Score) == nowMilli {
			ended, err := r.endedBy(ctx, id, input.Now)
			if err != nil {
				return nil, err
			}
			if !ended {
				continue
			}
		}
		ids = append(ids, id)
	}

	if len(ids) > 0 {
		if _, err := r.deleteSessions(ctx, ids); err != nil {
			return nil, err
		}
	}

	return &DeleteExpiredOutput{
		SessionIDs: ids,
	}, nil
}

// endedBy reports whether the stored session is over at now. A missing record counts as over
// so its index entries get cleaned up.
func (r *redisRepository) endedBy(ctx context.Context, id string, now time.Time) (bool, error) {
	sessionJSON, err := r.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return false, fmt.Errorf("failed to get session: %w", err)
	}

	var s models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &s); err != nil {
		return false, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return !s.IsActive(now), nil
}

// deleteSessions removes the given sessions in one transaction and returns how many existed
func (r *redisRepository) deleteSessions(ctx context.Context, ids []string) (int64, error) {
	pipe := r.client.TxPipeline()

	delCmds := make([]*redis.IntCmd, len(ids))
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		delCmds[i] = pipe.Del(ctx, sessionKey(id))
		pipe.Del(ctx, joinsKey(id))
		members[i] = id
	}
	pipe.ZRem(ctx, boardKey, members...)
	pipe.ZRem(ctx, endIndexKey, members...)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}

	var deleted int64
	for _, cmd := range delCmds {
		deleted += cmd.Val()
	}

	return deleted, nil
}
