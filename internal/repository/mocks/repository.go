package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"westeros-realty/internal/models"
)

// ChoiceHistoryRepository is a testify mock for repository.ChoiceHistoryRepository.
type ChoiceHistoryRepository struct {
	mock.Mock
}

func (m *ChoiceHistoryRepository) Record(ctx context.Context, gameID uuid.UUID, choiceText string) error {
	args := m.Called(ctx, gameID, choiceText)
	return args.Error(0)
}

func (m *ChoiceHistoryRepository) ListByGameID(ctx context.Context, gameID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// SessionRepository is a testify mock for repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) SaveTurn(ctx context.Context, sessionID string, state *models.GameState, rawSegment string) error {
	args := m.Called(ctx, sessionID, state, rawSegment)
	return args.Error(0)
}

func (m *SessionRepository) LoadState(ctx context.Context, sessionID string) (*models.GameState, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GameState), args.Error(1)
}

func (m *SessionRepository) LoadSegment(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
