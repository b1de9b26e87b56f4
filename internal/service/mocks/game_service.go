package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"westeros-realty/internal/models"
)

// GameService is a testify mock for service.GameService.
type GameService struct {
	mock.Mock
}

func (m *GameService) StartGame(ctx context.Context, sessionID string) (*models.TurnResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TurnResult), args.Error(1)
}

func (m *GameService) MakeChoice(ctx context.Context, sessionID string, choiceIndex int) (*models.TurnResult, error) {
	args := m.Called(ctx, sessionID, choiceIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TurnResult), args.Error(1)
}

func (m *GameService) ResetGame(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
