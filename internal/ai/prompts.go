package ai

import (
	"encoding/json"
	"fmt"
)

// StoryPromptData carries everything interpolated into the story prompt.
type StoryPromptData struct {
	History          string
	CurrentSituation string
	Happiness        int
	Wealth           int
	PreviousChoices  []string
}

// ConsequencePromptData carries everything interpolated into the
// consequence prompt.
type ConsequencePromptData struct {
	History   string
	Choice    string
	Happiness int
	Wealth    int
}

const storyPromptFormat = `You are a witty narrator in a world where Jon Snow has traded his Night's Watch cloak for a realtor's suit. Mix modern real estate scenarios with Game of Thrones references and humor.

Jon's Current Status:
Happiness: %d/100
Wealth: $%d

Previous choices in this game: %s
Previously used choices in database: %s
Current situation: %s

Generate a short story segment (2-3 sentences) with Game of Thrones references.
Then provide 3 UNIQUE choices that are witty and concise (max 15 words each).
Use GOT-style humor and puns in the choices. Each choice must have exact numerical impacts in parentheses.

Format your response as follows:
STORY: [Your story text here]
CHOICES:
1. Act like a Dothraki: Take what is yours with fire and blood (Happiness: +20, Wealth: -50000)
2. Consult with Bran: See the future and make wise investments (Happiness: +10, Wealth: +25000)
3. Meet with the Iron Bank: Get a loan and rule the market (Happiness: -15, Wealth: +40000)

IMPORTANT FORMAT RULES:
- Do not use square brackets []
- Never use +/- together
- Always specify a sign (+ or -) for every number
- No spaces in numbers
- Keep exact order: Happiness, Wealth
`

const consequencePromptFormat = `Based on Jon's history: %s
Current status:
Happiness: %d/100
Wealth: $%d
They chose: %s

Generate a consequence (2-3 sentences) that blends modern real estate outcomes with Game of Thrones references.
Be creative and humorous while keeping the real estate aspects realistic.
`

// BuildStoryPrompt renders the prompt asking the generator for the next
// story segment with three annotated choices.
func BuildStoryPrompt(data StoryPromptData) string {
	previous, err := json.Marshal(data.PreviousChoices)
	if err != nil {
		previous = []byte("[]")
	}
	return fmt.Sprintf(storyPromptFormat,
		data.Happiness,
		data.Wealth,
		data.History,
		string(previous),
		data.CurrentSituation,
	)
}

// BuildConsequencePrompt renders the prompt asking the generator to
// narrate the outcome of the chosen option.
func BuildConsequencePrompt(data ConsequencePromptData) string {
	return fmt.Sprintf(consequencePromptFormat,
		data.History,
		data.Happiness,
		data.Wealth,
		data.Choice,
	)
}
