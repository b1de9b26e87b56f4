package models

import (
	"strings"

	"github.com/google/uuid"
)

// Starting values and bounds for the two tracked resources.
const (
	InitialHappiness = 30
	InitialWealth    = 100000

	MinHappiness = 0
	MaxHappiness = 100

	VictoryHappiness = 80
	VictoryWealth    = 150000

	MaxTurns = 10
)

// GameState is the aggregate root of one game session. It is mutated only
// by the game service within a single turn; nothing is shared across
// sessions.
type GameState struct {
	History   []string
	Happiness int
	Wealth    int
	TurnCount int
	GameID    uuid.UUID
}

// NewGameState returns a fresh state with the fixed starting resources and
// a newly generated game id.
func NewGameState() *GameState {
	return &GameState{
		History:   []string{},
		Happiness: InitialHappiness,
		Wealth:    InitialWealth,
		TurnCount: 0,
		GameID:    uuid.New(),
	}
}

// ApplyImpact adds the deltas to the tracked resources. Happiness is
// clamped to [0,100], wealth is floored at 0 and has no upper bound.
// Returns the new values.
func (s *GameState) ApplyImpact(happinessDelta, wealthDelta int) (int, int) {
	s.Happiness = clamp(s.Happiness+happinessDelta, MinHappiness, MaxHappiness)
	s.Wealth = max(0, s.Wealth+wealthDelta)
	return s.Happiness, s.Wealth
}

// FormatHistory renders the choice history for prompt interpolation.
func (s *GameState) FormatHistory() string {
	if len(s.History) == 0 {
		return "No previous choices."
	}
	return strings.Join(s.History, " Then ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
