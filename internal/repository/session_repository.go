package repository

import (
	"context"

	"westeros-realty/internal/models"
)

// SessionRepository persists one session's game state and the raw text of
// its pending story segment between turns. The session id is an opaque
// key minted by the HTTP layer; the engine never manages its lifecycle.
type SessionRepository interface {
	// SaveTurn stores the state record and the pending segment together.
	SaveTurn(ctx context.Context, sessionID string, state *models.GameState, rawSegment string) error
	// LoadState returns models.ErrSessionNotFound when no session exists
	// and models.ErrInvalidRecord when the stored record is corrupt.
	LoadState(ctx context.Context, sessionID string) (*models.GameState, error)
	// LoadSegment returns the raw text of the pending story segment.
	LoadSegment(ctx context.Context, sessionID string) (string, error)
	// Delete discards the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
