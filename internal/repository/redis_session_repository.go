package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"westeros-realty/internal/models"
)

// Compile-time check
var _ SessionRepository = (*redisSessionRepository)(nil)

type redisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionRepository creates a Redis-backed SessionRepository.
// Sessions expire after ttl of inactivity; every SaveTurn refreshes it.
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) SessionRepository {
	return &redisSessionRepository{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisSessionRepo"),
	}
}

func stateKey(sessionID string) string {
	return fmt.Sprintf("game_state:%s", sessionID)
}

func segmentKey(sessionID string) string {
	return fmt.Sprintf("current_segment:%s", sessionID)
}

// SaveTurn stores the serialized state record and the raw pending segment
// in one pipeline so a session is never left half-written.
func (r *redisSessionRepository) SaveTurn(ctx context.Context, sessionID string, state *models.GameState, rawSegment string) error {
	data, err := json.Marshal(state.ToRecord())
	if err != nil {
		return fmt.Errorf("failed to serialize game state: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, stateKey(sessionID), data, r.ttl)
	pipe.Set(ctx, segmentKey(sessionID), rawSegment, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("Failed to save session turn", zap.String("sessionID", sessionID), zap.Error(err))
		return fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}

	r.logger.Debug("Session turn saved",
		zap.String("sessionID", sessionID),
		zap.String("gameID", state.GameID.String()),
		zap.Int("turnCount", state.TurnCount),
	)
	return nil
}

// LoadState reads and validates the stored game state record.
func (r *redisSessionRepository) LoadState(ctx context.Context, sessionID string) (*models.GameState, error) {
	data, err := r.client.Get(ctx, stateKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Session state not found", zap.String("sessionID", sessionID))
			return nil, models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get session state", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to get session %s: %w", sessionID, err)
	}

	var rec models.GameStateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		r.logger.Warn("Corrupt session state record", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidRecord, err)
	}

	state, err := models.GameStateFromRecord(&rec)
	if err != nil {
		r.logger.Warn("Invalid session state record", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}
	return state, nil
}

// LoadSegment reads the raw pending story segment.
func (r *redisSessionRepository) LoadSegment(ctx context.Context, sessionID string) (string, error) {
	raw, err := r.client.Get(ctx, segmentKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Pending segment not found", zap.String("sessionID", sessionID))
			return "", models.ErrSessionNotFound
		}
		r.logger.Error("Failed to get pending segment", zap.String("sessionID", sessionID), zap.Error(err))
		return "", fmt.Errorf("failed to get segment for session %s: %w", sessionID, err)
	}
	return raw, nil
}

// Delete discards both session keys.
func (r *redisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, stateKey(sessionID), segmentKey(sessionID)).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.String("sessionID", sessionID), zap.Error(err))
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	r.logger.Info("Session deleted", zap.String("sessionID", sessionID))
	return nil
}
