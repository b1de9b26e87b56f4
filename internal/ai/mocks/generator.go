package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"westeros-realty/internal/ai"
)

// Generator is a testify mock for ai.Generator.
type Generator struct {
	mock.Mock
}

func (m *Generator) GenerateStorySegment(ctx context.Context, data ai.StoryPromptData) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}

func (m *Generator) GenerateConsequence(ctx context.Context, data ai.ConsequencePromptData) (string, error) {
	args := m.Called(ctx, data)
	return args.String(0), args.Error(1)
}
