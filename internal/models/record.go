package models

import (
	"fmt"

	"github.com/google/uuid"
)

// GameStateRecord is the serializable form of GameState stored in the
// session store between turns. Numeric fields are pointers so that a
// missing field can be told apart from a zero on deserialize.
type GameStateRecord struct {
	History   []string `json:"player_history"`
	Happiness *int     `json:"happiness"`
	Wealth    *int     `json:"wealth"`
	TurnCount *int     `json:"turn_count"`
	GameID    string   `json:"game_id"`
}

// ToRecord converts the state into its storable record.
func (s *GameState) ToRecord() *GameStateRecord {
	happiness := s.Happiness
	wealth := s.Wealth
	turnCount := s.TurnCount
	history := s.History
	if history == nil {
		history = []string{}
	}
	return &GameStateRecord{
		History:   history,
		Happiness: &happiness,
		Wealth:    &wealth,
		TurnCount: &turnCount,
		GameID:    s.GameID.String(),
	}
}

// GameStateFromRecord validates the record and reconstructs a GameState.
// Any missing field or out-of-range value fails with ErrInvalidRecord; a
// GameState is never partially populated.
func GameStateFromRecord(rec *GameStateRecord) (*GameState, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}
	if rec.Happiness == nil || rec.Wealth == nil || rec.TurnCount == nil {
		return nil, fmt.Errorf("%w: missing required field", ErrInvalidRecord)
	}
	if *rec.Happiness < MinHappiness || *rec.Happiness > MaxHappiness {
		return nil, fmt.Errorf("%w: happiness %d out of range", ErrInvalidRecord, *rec.Happiness)
	}
	if *rec.Wealth < 0 {
		return nil, fmt.Errorf("%w: negative wealth %d", ErrInvalidRecord, *rec.Wealth)
	}
	if *rec.TurnCount < 0 {
		return nil, fmt.Errorf("%w: negative turn count %d", ErrInvalidRecord, *rec.TurnCount)
	}
	gameID, err := uuid.Parse(rec.GameID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad game id %q", ErrInvalidRecord, rec.GameID)
	}
	history := rec.History
	if history == nil {
		history = []string{}
	}
	return &GameState{
		History:   history,
		Happiness: *rec.Happiness,
		Wealth:    *rec.Wealth,
		TurnCount: *rec.TurnCount,
		GameID:    gameID,
	}, nil
}
