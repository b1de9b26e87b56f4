package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	aimocks "westeros-realty/internal/ai/mocks"
	"westeros-realty/internal/models"
	repomocks "westeros-realty/internal/repository/mocks"
)

const validSegment = `STORY: Jon surveys the Glass Tower from the street below.
CHOICES:
1. Act like a Dothraki: Take what is yours with fire and blood (Happiness: +20, Wealth: -50000)
2. Consult with Bran: See the future and make wise investments (Happiness: +10, Wealth: +25000)
3. Meet with the Iron Bank: Get a loan and rule the market (Happiness: -15, Wealth: +40000)`

type testDeps struct {
	generator *aimocks.Generator
	sessions  *repomocks.SessionRepository
	choices   *repomocks.ChoiceHistoryRepository
	service   GameService
}

func newTestDeps() *testDeps {
	d := &testDeps{
		generator: new(aimocks.Generator),
		sessions:  new(repomocks.SessionRepository),
		choices:   new(repomocks.ChoiceHistoryRepository),
	}
	d.service = NewGameService(d.generator, d.sessions, d.choices, zap.NewNop())
	return d
}

func TestStartGame(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		d := newTestDeps()
		d.choices.On("ListByGameID", mock.Anything, mock.Anything).Return([]string{}, nil)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).Return(validSegment, nil)
		d.sessions.On("SaveTurn", mock.Anything, "sess-1", mock.Anything, validSegment).Return(nil)

		result, err := d.service.StartGame(context.Background(), "sess-1")

		require.NoError(t, err)
		assert.Equal(t, 1, result.Turn)
		assert.Equal(t, models.InitialHappiness, result.Happiness)
		assert.Equal(t, models.InitialWealth, result.Wealth)
		assert.Equal(t, "Jon surveys the Glass Tower from the street below.", result.Story)
		assert.Len(t, result.Choices, models.ChoicesPerSegment)
		assert.False(t, result.IsGameOver)
		d.sessions.AssertExpectations(t)
	})

	t.Run("GeneratorFailureFallsBack", func(t *testing.T) {
		d := newTestDeps()
		d.choices.On("ListByGameID", mock.Anything, mock.Anything).Return([]string{}, nil)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).
			Return("", models.ErrGeneratorUnavailable)
		d.sessions.On("SaveTurn", mock.Anything, "sess-1", mock.Anything, fallbackSegmentText).Return(nil)

		result, err := d.service.StartGame(context.Background(), "sess-1")

		require.NoError(t, err)
		assert.Equal(t, 1, result.Turn)
		assert.Len(t, result.Choices, models.ChoicesPerSegment)
		d.sessions.AssertExpectations(t)
	})

	t.Run("MalformedSegmentFallsBack", func(t *testing.T) {
		d := newTestDeps()
		d.choices.On("ListByGameID", mock.Anything, mock.Anything).Return([]string{}, nil)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).
			Return("STORY: no choices follow", nil)
		d.sessions.On("SaveTurn", mock.Anything, "sess-1", mock.Anything, fallbackSegmentText).Return(nil)

		_, err := d.service.StartGame(context.Background(), "sess-1")

		require.NoError(t, err)
		d.sessions.AssertExpectations(t)
	})

	t.Run("SaveFailure", func(t *testing.T) {
		d := newTestDeps()
		d.choices.On("ListByGameID", mock.Anything, mock.Anything).Return([]string{}, nil)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).Return(validSegment, nil)
		d.sessions.On("SaveTurn", mock.Anything, "sess-1", mock.Anything, validSegment).
			Return(errors.New("redis down"))

		result, err := d.service.StartGame(context.Background(), "sess-1")

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestMakeChoice(t *testing.T) {
	t.Run("AppliesImpactAndAdvances", func(t *testing.T) {
		d := newTestDeps()
		state := models.NewGameState()
		d.sessions.On("LoadState", mock.Anything, "sess-1").Return(state, nil)
		d.sessions.On("LoadSegment", mock.Anything, "sess-1").Return(validSegment, nil)
		d.choices.On("Record", mock.Anything, state.GameID,
			"Consult with Bran: See the future and make wise investments (Happiness: +10, Wealth: +25000)").Return(nil)
		d.choices.On("ListByGameID", mock.Anything, state.GameID).Return([]string{}, nil)
		d.generator.On("GenerateConsequence", mock.Anything, mock.Anything).
			Return("Bran's visions pay off handsomely.", nil)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).Return(validSegment, nil)
		d.sessions.On("SaveTurn", mock.Anything, "sess-1", state, validSegment).Return(nil)

		result, err := d.service.MakeChoice(context.Background(), "sess-1", 2)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Turn)
		assert.Equal(t, 40, result.Happiness)
		assert.Equal(t, 125000, result.Wealth)
		assert.Equal(t, "Bran's visions pay off handsomely.", result.Consequence)
		assert.False(t, result.IsGameOver)
		assert.Equal(t, 1, state.TurnCount)
		assert.Equal(t, []string{
			"Consult with Bran: See the future and make wise investments (Happiness: +10, Wealth: +25000)",
		}, state.History)
		d.sessions.AssertExpectations(t)
		d.choices.AssertExpectations(t)
	})

	t.Run("InvalidIndexDoesNotConsumeTurn", func(t *testing.T) {
		d := newTestDeps()
		state := models.NewGameState()
		d.sessions.On("LoadState", mock.Anything, "sess-1").Return(state, nil)
		d.sessions.On("LoadSegment", mock.Anything, "sess-1").Return(validSegment, nil)

		for _, idx := range []int{0, 4, -1} {
			result, err := d.service.MakeChoice(context.Background(), "sess-1", idx)
			assert.ErrorIs(t, err, models.ErrInvalidChoice)
			assert.Nil(t, result)
		}

		assert.Equal(t, 0, state.TurnCount)
		d.choices.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything)
		d.sessions.AssertNotCalled(t, "SaveTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("SessionNotFound", func(t *testing.T) {
		d := newTestDeps()
		d.sessions.On("LoadState", mock.Anything, "sess-1").Return(nil, models.ErrSessionNotFound)

		result, err := d.service.MakeChoice(context.Background(), "sess-1", 1)

		assert.ErrorIs(t, err, models.ErrSessionNotFound)
		assert.Nil(t, result)
	})

	t.Run("CorruptPendingSegment", func(t *testing.T) {
		d := newTestDeps()
		state := models.NewGameState()
		d.sessions.On("LoadState", mock.Anything, "sess-1").Return(state, nil)
		d.sessions.On("LoadSegment", mock.Anything, "sess-1").Return("not a segment", nil)

		result, err := d.service.MakeChoice(context.Background(), "sess-1", 1)

		assert.ErrorIs(t, err, models.ErrInvalidRecord)
		assert.Nil(t, result)
		assert.Equal(t, 0, state.TurnCount)
	})

	t.Run("RecordFailureDoesNotAbortTurn", func(t *testing.T) {
		d := newTestDeps()
		state := models.NewGameState()
		d.sessions.On("LoadState", mock.Anything, "sess-1").Return(state, nil)
		d.sessions.On("LoadSegment", mock.Anything, "sess-1").Return(validSegment, nil)
		d.choices.On("Record", mock.Anything, state.GameID, mock.Anything).
			Return(errors.New("db down"))
		d.choices.On("ListByGameID", mock.Anything, state.GameID).
			Return(nil, errors.New("db down"))
		d.generator.On("GenerateConsequence", mock.Anything, mock.Anything).Return("Fine.", nil)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).Return(validSegment, nil)
		d.sessions.On("SaveTurn", mock.Anything, "sess-1", state, validSegment).Return(nil)

		result, err := d.service.MakeChoice(context.Background(), "sess-1", 2)

		require.NoError(t, err)
		assert.Equal(t, 40, result.Happiness)
	})

	t.Run("ConsequenceFailureUsesFallback", func(t *testing.T) {
		d := newTestDeps()
		state := models.NewGameState()
		d.sessions.On("LoadState", mock.Anything, "sess-1").Return(state, nil)
		d.sessions.On("LoadSegment", mock.Anything, "sess-1").Return(validSegment, nil)
		d.choices.On("Record", mock.Anything, state.GameID, mock.Anything).Return(nil)
		d.choices.On("ListByGameID", mock.Anything, state.GameID).Return([]string{}, nil)
		d.generator.On("GenerateConsequence", mock.Anything, mock.Anything).
			Return("", models.ErrGeneratorUnavailable)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).Return(validSegment, nil)
		d.sessions.On("SaveTurn", mock.Anything, "sess-1", state, validSegment).Return(nil)

		result, err := d.service.MakeChoice(context.Background(), "sess-1", 2)

		require.NoError(t, err)
		assert.Equal(t, fallbackConsequence, result.Consequence)
		assert.Equal(t, 1, state.TurnCount)
	})
}

func TestMakeChoiceGameOver(t *testing.T) {
	segmentWith := func(choice string) string {
		return "STORY: A crossroads.\nCHOICES:\n1. " + choice + "\n2. Wait (Happiness: +0, Wealth: +0)\n3. Leave (Happiness: +0, Wealth: +0)"
	}

	run := func(t *testing.T, state *models.GameState, choice string) *models.TurnResult {
		t.Helper()
		d := newTestDeps()
		d.sessions.On("LoadState", mock.Anything, "sess-1").Return(state, nil)
		d.sessions.On("LoadSegment", mock.Anything, "sess-1").Return(segmentWith(choice), nil)
		d.choices.On("Record", mock.Anything, state.GameID, mock.Anything).Return(nil)
		d.choices.On("ListByGameID", mock.Anything, state.GameID).Return([]string{}, nil)
		d.generator.On("GenerateConsequence", mock.Anything, mock.Anything).Return("The end nears.", nil)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).Return(validSegment, nil)
		d.sessions.On("Delete", mock.Anything, "sess-1").Return(nil)

		result, err := d.service.MakeChoice(context.Background(), "sess-1", 1)
		require.NoError(t, err)

		// The closing turn keeps the full result shape but the session is
		// discarded instead of saved.
		assert.NotEmpty(t, result.Story)
		assert.Len(t, result.Choices, models.ChoicesPerSegment)
		d.sessions.AssertNotCalled(t, "SaveTurn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		d.sessions.AssertExpectations(t)
		return result
	}

	t.Run("HappinessDepleted", func(t *testing.T) {
		state := models.NewGameState()
		state.Happiness = 5
		result := run(t, state, "Brood on the battlements alone (Happiness: -10, Wealth: +0)")

		assert.True(t, result.IsGameOver)
		assert.Equal(t, messageHappinessDepleted, result.GameOverMessage)
		assert.Equal(t, 0, result.Happiness)
		assert.Equal(t, 2, result.Turn)
	})

	t.Run("HappinessCheckedBeforeWealth", func(t *testing.T) {
		state := models.NewGameState()
		state.Happiness = 5
		state.Wealth = 100000
		result := run(t, state, "Sell your soul to the Iron Bank (Happiness: -10, Wealth: +100000)")

		assert.Equal(t, messageHappinessDepleted, result.GameOverMessage)
		assert.Equal(t, 200000, result.Wealth)
	})

	t.Run("WealthDepleted", func(t *testing.T) {
		state := models.NewGameState()
		state.Wealth = 50000
		result := run(t, state, "Buy the haunted holdfast sight unseen (Happiness: +10, Wealth: -50000)")

		assert.True(t, result.IsGameOver)
		assert.Equal(t, messageWealthDepleted, result.GameOverMessage)
		assert.Equal(t, 0, result.Wealth)
	})

	t.Run("WealthClampedBelowZeroStillDefeat", func(t *testing.T) {
		state := models.NewGameState()
		state.Wealth = 30000
		result := run(t, state, "Wager everything on dragon futures (Happiness: +10, Wealth: -50000)")

		assert.Equal(t, messageWealthDepleted, result.GameOverMessage)
		assert.Equal(t, 0, result.Wealth)
	})

	t.Run("Victory", func(t *testing.T) {
		state := models.NewGameState()
		state.Happiness = 75
		state.Wealth = 130000
		result := run(t, state, "Close the Glass Tower deal (Happiness: +10, Wealth: +25000)")

		assert.True(t, result.IsGameOver)
		assert.Equal(t, messageVictory, result.GameOverMessage)
		assert.Equal(t, 85, result.Happiness)
		assert.Equal(t, 155000, result.Wealth)
	})

	t.Run("TurnLimit", func(t *testing.T) {
		state := models.NewGameState()
		state.TurnCount = models.MaxTurns - 1
		result := run(t, state, "Keep grinding listings (Happiness: +1, Wealth: +1000)")

		assert.True(t, result.IsGameOver)
		assert.Equal(t, messageTurnLimit, result.GameOverMessage)
		assert.Equal(t, models.MaxTurns+1, result.Turn)
	})

	t.Run("VictoryThresholdNotReachedContinues", func(t *testing.T) {
		d := newTestDeps()
		state := models.NewGameState()
		state.Happiness = 75
		state.Wealth = 130000
		d.sessions.On("LoadState", mock.Anything, "sess-1").Return(state, nil)
		d.sessions.On("LoadSegment", mock.Anything, "sess-1").
			Return(segmentWith("Close a modest deal (Happiness: +4, Wealth: +10000)"), nil)
		d.choices.On("Record", mock.Anything, state.GameID, mock.Anything).Return(nil)
		d.choices.On("ListByGameID", mock.Anything, state.GameID).Return([]string{}, nil)
		d.generator.On("GenerateConsequence", mock.Anything, mock.Anything).Return("Almost there.", nil)
		d.generator.On("GenerateStorySegment", mock.Anything, mock.Anything).Return(validSegment, nil)
		d.sessions.On("SaveTurn", mock.Anything, "sess-1", state, validSegment).Return(nil)

		result, err := d.service.MakeChoice(context.Background(), "sess-1", 1)

		require.NoError(t, err)
		assert.False(t, result.IsGameOver)
		assert.Equal(t, 79, result.Happiness)
		assert.Equal(t, 140000, result.Wealth)
	})
}

func TestResetGame(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		d := newTestDeps()
		d.sessions.On("Delete", mock.Anything, "sess-1").Return(nil)

		assert.NoError(t, d.service.ResetGame(context.Background(), "sess-1"))
		d.sessions.AssertExpectations(t)
	})

	t.Run("Failure", func(t *testing.T) {
		d := newTestDeps()
		d.sessions.On("Delete", mock.Anything, "sess-1").Return(errors.New("redis down"))

		assert.Error(t, d.service.ResetGame(context.Background(), "sess-1"))
	})
}
