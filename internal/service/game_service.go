package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"westeros-realty/internal/ai"
	"westeros-realty/internal/models"
	"westeros-realty/internal/parser"
	"westeros-realty/internal/repository"
)

const (
	initialSituation = "Jon Snow, having left the Night's Watch for a new life in modern-day real estate, " +
		"stands before the gleaming Glass Tower in downtown King's Landing (formerly Manhattan). " +
		"His father's words echo in his head: 'Winter is Coming... and so is the housing market crash.'"

	recoverySituation = "Jon needs to reassess his options..."

	fallbackConsequence = "The outcome of your choice was unclear..."
)

// fallbackSegmentText is substituted whenever the generator fails or
// produces output the parser rejects. It follows the same format contract
// so the rest of the turn pipeline treats it like any other segment.
const fallbackSegmentText = `STORY: The market shifts like the seasons in Westeros, and Jon must adapt his strategy.
CHOICES:
1. Hold a grand open house at the Glass Tower (Happiness: +5, Wealth: -5000)
2. Study the ledgers like a maester studies scrolls (Happiness: -5, Wealth: +10000)
3. Network at the local tavern with fellow realtors (Happiness: +10, Wealth: -2000)`

// Terminal outcome messages, checked in fixed order.
const (
	messageHappinessDepleted = "Game Over! Your happiness has reached zero. The night is dark and full of terrors."
	messageWealthDepleted    = "Game Over! You've gone broke. Even the Iron Bank won't help you now."
	messageVictory           = "Victory! You've achieved both wealth and happiness. The North remembers your success!"
	messageTurnLimit         = "Game Over! You've completed your journey, but haven't reached greatness."
)

// GameService drives the turn loop of one session: starting a game,
// resolving a chosen option and resetting.
type GameService interface {
	StartGame(ctx context.Context, sessionID string) (*models.TurnResult, error)
	MakeChoice(ctx context.Context, sessionID string, choiceIndex int) (*models.TurnResult, error)
	ResetGame(ctx context.Context, sessionID string) error
}

// Compile-time check
var _ GameService = (*gameService)(nil)

type gameService struct {
	generator ai.Generator
	sessions  repository.SessionRepository
	choices   repository.ChoiceHistoryRepository
	logger    *zap.Logger
}

// NewGameService wires the generator and both stores into a GameService.
func NewGameService(
	generator ai.Generator,
	sessions repository.SessionRepository,
	choices repository.ChoiceHistoryRepository,
	logger *zap.Logger,
) GameService {
	return &gameService{
		generator: generator,
		sessions:  sessions,
		choices:   choices,
		logger:    logger.Named("GameService"),
	}
}

// StartGame creates a fresh state, generates the opening segment and
// persists both. An unusable generator response degrades to the fallback
// segment rather than failing the request.
func (s *gameService) StartGame(ctx context.Context, sessionID string) (*models.TurnResult, error) {
	state := models.NewGameState()

	raw, segment := s.generateSegment(ctx, state, initialSituation)

	if err := s.sessions.SaveTurn(ctx, sessionID, state, raw); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	s.logger.Info("Game started",
		zap.String("sessionID", sessionID),
		zap.String("gameID", state.GameID.String()),
	)

	return &models.TurnResult{
		Turn:      state.TurnCount + 1,
		Happiness: state.Happiness,
		Wealth:    state.Wealth,
		Story:     segment.Story,
		Choices:   segment.Choices,
	}, nil
}

// MakeChoice resolves one turn: validate the selection against the pending
// segment, apply its impacts, narrate the consequence, check terminal
// conditions and generate the next segment if the game goes on.
//
// Validation failures (bad index, blank label) happen before the turn
// counter moves, so a rejected request never consumes a turn.
func (s *gameService) MakeChoice(ctx context.Context, sessionID string, choiceIndex int) (*models.TurnResult, error) {
	state, err := s.sessions.LoadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	rawSegment, err := s.sessions.LoadSegment(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	segment, err := parser.ParseSegment(rawSegment)
	if err != nil {
		return nil, fmt.Errorf("%w: stored segment unparseable: %v", models.ErrInvalidRecord, err)
	}

	if choiceIndex < 1 || choiceIndex > models.ChoicesPerSegment {
		return nil, fmt.Errorf("%w: index %d out of range", models.ErrInvalidChoice, choiceIndex)
	}
	label := parser.CleanChoiceLabel(segment.Choices[choiceIndex-1])
	if label == "" {
		return nil, fmt.Errorf("%w: empty choice label", models.ErrInvalidChoice)
	}
	happinessDelta, wealthDelta := parser.ParseImpact(label)
	chosen := models.ChoiceOption{
		Label:          label,
		HappinessDelta: happinessDelta,
		WealthDelta:    wealthDelta,
	}

	state.TurnCount++

	if err := s.choices.Record(ctx, state.GameID, chosen.Label); err != nil {
		s.logger.Warn("Failed to record choice",
			zap.String("gameID", state.GameID.String()),
			zap.Error(err),
		)
	}

	state.ApplyImpact(chosen.HappinessDelta, chosen.WealthDelta)

	consequence, err := s.generator.GenerateConsequence(ctx, ai.ConsequencePromptData{
		History:   state.FormatHistory(),
		Choice:    chosen.Label,
		Happiness: state.Happiness,
		Wealth:    state.Wealth,
	})
	situation := consequence
	if err != nil || consequence == "" {
		s.logger.Warn("Consequence generation failed, using fallback",
			zap.String("gameID", state.GameID.String()),
			zap.Error(err),
		)
		consequence = fallbackConsequence
		situation = recoverySituation
	}

	state.History = append(state.History, chosen.Label)

	raw, nextSegment := s.generateSegment(ctx, state, situation)

	// A terminal turn still carries a closing segment, the same shape the
	// client renders on every other turn.
	if over, message := checkGameOver(state); over {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			s.logger.Warn("Failed to delete finished session",
				zap.String("sessionID", sessionID),
				zap.Error(err),
			)
		}
		s.logger.Info("Game over",
			zap.String("gameID", state.GameID.String()),
			zap.Int("turnCount", state.TurnCount),
			zap.String("message", message),
		)
		return &models.TurnResult{
			Turn:            state.TurnCount + 1,
			Happiness:       state.Happiness,
			Wealth:          state.Wealth,
			Story:           nextSegment.Story,
			Choices:         nextSegment.Choices,
			Consequence:     consequence,
			IsGameOver:      true,
			GameOverMessage: message,
		}, nil
	}

	if err := s.sessions.SaveTurn(ctx, sessionID, state, raw); err != nil {
		return nil, fmt.Errorf("failed to save turn: %w", err)
	}

	s.logger.Info("Turn resolved",
		zap.String("gameID", state.GameID.String()),
		zap.Int("turnCount", state.TurnCount),
		zap.Int("happiness", state.Happiness),
		zap.Int("wealth", state.Wealth),
	)

	return &models.TurnResult{
		Turn:        state.TurnCount + 1,
		Happiness:   state.Happiness,
		Wealth:      state.Wealth,
		Story:       nextSegment.Story,
		Choices:     nextSegment.Choices,
		Consequence: consequence,
	}, nil
}

// ResetGame discards the session so the next request starts fresh.
func (s *gameService) ResetGame(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to reset game: %w", err)
	}
	s.logger.Info("Game reset", zap.String("sessionID", sessionID))
	return nil
}

// generateSegment asks the generator for the next segment and parses it.
// The cross-game choice log is advisory: a lookup failure only means the
// prompt loses its "previously used" hint. Any generation or parse failure
// substitutes the fallback segment.
func (s *gameService) generateSegment(ctx context.Context, state *models.GameState, situation string) (string, *models.StorySegment) {
	previous, err := s.choices.ListByGameID(ctx, state.GameID)
	if err != nil {
		s.logger.Warn("Failed to list previous choices",
			zap.String("gameID", state.GameID.String()),
			zap.Error(err),
		)
		previous = nil
	}

	raw, err := s.generator.GenerateStorySegment(ctx, ai.StoryPromptData{
		History:          state.FormatHistory(),
		CurrentSituation: situation,
		Happiness:        state.Happiness,
		Wealth:           state.Wealth,
		PreviousChoices:  previous,
	})
	if err != nil {
		s.logger.Warn("Segment generation failed, using fallback",
			zap.String("gameID", state.GameID.String()),
			zap.Error(err),
		)
		return fallbackSegmentText, fallbackSegment
	}

	segment, err := parser.ParseSegment(raw)
	if err != nil {
		s.logger.Warn("Generated segment malformed, using fallback",
			zap.String("gameID", state.GameID.String()),
			zap.Error(err),
		)
		return fallbackSegmentText, fallbackSegment
	}
	return raw, segment
}

// fallbackSegment is parsed once at startup; the constant must satisfy the
// same contract it substitutes for.
var fallbackSegment = func() *models.StorySegment {
	segment, err := parser.ParseSegment(fallbackSegmentText)
	if err != nil {
		panic(err)
	}
	return segment
}()

// checkGameOver evaluates terminal conditions in fixed priority order:
// depleted happiness, depleted wealth, victory, turn limit.
func checkGameOver(state *models.GameState) (bool, string) {
	switch {
	case state.Happiness <= models.MinHappiness:
		return true, messageHappinessDepleted
	case state.Wealth <= 0:
		return true, messageWealthDepleted
	case state.Happiness >= models.VictoryHappiness && state.Wealth >= models.VictoryWealth:
		return true, messageVictory
	case state.TurnCount >= models.MaxTurns:
		return true, messageTurnLimit
	}
	return false, ""
}
