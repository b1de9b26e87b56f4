package repository

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Compile-time check
var _ ChoiceHistoryRepository = (*pgChoiceRepository)(nil)

type pgChoiceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewPgChoiceRepository creates a Postgres-backed ChoiceHistoryRepository.
func NewPgChoiceRepository(db *pgxpool.Pool, logger *zap.Logger) ChoiceHistoryRepository {
	return &pgChoiceRepository{
		db:     db,
		logger: logger.Named("PgChoiceRepo"),
	}
}

// Record appends one chosen option to the game's choice log.
func (r *pgChoiceRepository) Record(ctx context.Context, gameID uuid.UUID, choiceText string) error {
	query := `
        INSERT INTO choices (choice_text, game_id)
        VALUES ($1, $2)
    `
	logFields := []zap.Field{zap.String("gameID", gameID.String())}
	r.logger.Debug("Recording choice", logFields...)

	if _, err := r.db.Exec(ctx, query, choiceText, gameID); err != nil {
		r.logger.Error("Failed to record choice", append(logFields, zap.Error(err))...)
		return fmt.Errorf("failed to record choice for game %s: %w", gameID, err)
	}
	return nil
}

// ListByGameID returns all recorded choices for the game in insertion order.
func (r *pgChoiceRepository) ListByGameID(ctx context.Context, gameID uuid.UUID) ([]string, error) {
	query := `
        SELECT choice_text
        FROM choices
        WHERE game_id = $1
        ORDER BY id
    `
	logFields := []zap.Field{zap.String("gameID", gameID.String())}
	r.logger.Debug("Listing choices", logFields...)

	var choices []string
	if err := pgxscan.Select(ctx, r.db, &choices, query, gameID); err != nil {
		r.logger.Error("Failed to list choices", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to list choices for game %s: %w", gameID, err)
	}
	return choices, nil
}
