package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildStoryPrompt(t *testing.T) {
	prompt := BuildStoryPrompt(StoryPromptData{
		History:          "Consult with Bran",
		CurrentSituation: "Jon stands before the Glass Tower.",
		Happiness:        40,
		Wealth:           125000,
		PreviousChoices:  []string{"Meet with the Iron Bank"},
	})

	assert.Contains(t, prompt, "Happiness: 40/100")
	assert.Contains(t, prompt, "Wealth: $125000")
	assert.Contains(t, prompt, "Previous choices in this game: Consult with Bran")
	assert.Contains(t, prompt, `["Meet with the Iron Bank"]`)
	assert.Contains(t, prompt, "Current situation: Jon stands before the Glass Tower.")
	// The format contract the parser depends on must always be requested.
	assert.Contains(t, prompt, "STORY:")
	assert.Contains(t, prompt, "CHOICES:")
}

func TestBuildStoryPromptNoPreviousChoices(t *testing.T) {
	prompt := BuildStoryPrompt(StoryPromptData{
		History:          "No previous choices.",
		CurrentSituation: "start",
	})
	assert.Contains(t, prompt, "Previously used choices in database: null")
}

func TestBuildConsequencePrompt(t *testing.T) {
	prompt := BuildConsequencePrompt(ConsequencePromptData{
		History:   "No previous choices.",
		Choice:    "Consult with Bran (Happiness: +10, Wealth: +25000)",
		Happiness: 30,
		Wealth:    100000,
	})

	assert.Contains(t, prompt, "Based on Jon's history: No previous choices.")
	assert.Contains(t, prompt, "They chose: Consult with Bran (Happiness: +10, Wealth: +25000)")
	assert.Contains(t, prompt, "Happiness: 30/100")
	assert.Contains(t, prompt, "Wealth: $100000")
}
