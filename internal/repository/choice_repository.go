package repository

import (
	"context"

	"github.com/google/uuid"
)

// ChoiceHistoryRepository logs every chosen option, scoped by game id.
// The log only enriches prompts ("previously used choices"); its failure
// must never fail a turn.
type ChoiceHistoryRepository interface {
	Record(ctx context.Context, gameID uuid.UUID, choiceText string) error
	ListByGameID(ctx context.Context, gameID uuid.UUID) ([]string, error)
}
