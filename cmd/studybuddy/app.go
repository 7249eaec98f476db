package main

import (
	"context"
	"fmt"
	"time"

	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/clock"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/common/uuid"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/config"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/location"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/logger"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/models"
	sessionRepo "github.com/maxsrimongkol-lgtm/study-buddy/internal/repositories/session"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/secret"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/board"
	"github.com/maxsrimongkol-lgtm/study-buddy/internal/services/messaging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds everything the surfaces share
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	loc       *time.Location
	uuid      uuid.UUID
	board     board.Service
	messaging messaging.Service

	redisClient *redis.Client
}

// newApp loads config and wires config -> logger -> store -> board
func newApp(configFile string) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Board.TimeLocation()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: log,
		loc:    loc,
		uuid:   uuid.New(),
	}

	repo, err := a.newRepository()
	if err != nil {
		return nil, err
	}

	keeper, err := secret.New(secret.Scheme(cfg.Board.KeyScheme))
	if err != nil {
		return nil, err
	}

	boardSvc, err := board.New(&board.Config{
		Rules:       boardRules(&cfg.Board),
		SessionRepo: repo,
		Locator: location.New(&location.Config{
			Landmarks: cfg.Location.Landmarks,
			Fallback:  cfg.Location.Fallback,
		}),
		Keeper:        keeper,
		Clock:         clock.New(),
		UUIDGenerator: a.uuid,
		Logger:        log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create board service: %w", err)
	}
	a.board = boardSvc

	msgs, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging service: %w", err)
	}
	a.messaging = msgs

	log.Info("study buddy configured",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("key_scheme", cfg.Board.KeyScheme),
		zap.String("timezone", loc.String()),
	)

	return a, nil
}

func (a *app) newRepository() (sessionRepo.Repository, error) {
	if a.cfg.Storage.Backend != config.BackendRedis {
		return sessionRepo.NewMemory(), nil
	}

	a.redisClient = redis.NewClient(&redis.Options{
		Addr:     a.cfg.Storage.Redis.Addr,
		Password: a.cfg.Storage.Redis.Password,
		DB:       a.cfg.Storage.Redis.DB,
	})

	repo, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient: a.redisClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session repository: %w", err)
	}
	return repo, nil
}

// close releases the store connection and flushes logs
func (a *app) close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}

func boardVibes(cfg *config.BoardConfig) []models.Vibe {
	vibes := make([]models.Vibe, 0, len(cfg.Vibes))
	for _, v := range cfg.Vibes {
		vibes = append(vibes, models.Vibe(v))
	}
	return vibes
}

func boardRules(cfg *config.BoardConfig) board.Rules {
	return board.Rules{
		MaxDuration:           cfg.MaxDuration,
		MaxLocationLength:     cfg.MaxLocationLength,
		MaxDescriptionLength:  cfg.MaxDescriptionLength,
		Vibes:                 boardVibes(cfg),
		RecomputeCoordsOnEdit: cfg.RecomputeCoordsOnEdit,
	}
}

// prune drops ended sessions once
func (a *app) prune(ctx context.Context) (int, error) {
	out, err := a.board.Prune(ctx, &board.PruneInput{})
	if err != nil {
		return 0, err
	}
	return len(out.SessionIDs), nil
}
