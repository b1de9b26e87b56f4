package models

// TurnResult is the player-facing outcome of one resolved turn. Turn is
// the 1-based number of the segment being played, so a fresh game reports
// turn 1 while its TurnCount is still 0.
type TurnResult struct {
	Turn            int      `json:"turn"`
	Happiness       int      `json:"happiness"`
	Wealth          int      `json:"wealth"`
	Story           string   `json:"story"`
	Choices         []string `json:"choices"`
	Consequence     string   `json:"consequence,omitempty"`
	IsGameOver      bool     `json:"is_game_over"`
	GameOverMessage string   `json:"game_over_message,omitempty"`
}
