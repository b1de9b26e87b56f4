package models

// ChoicesPerSegment is fixed by the prompt contract: every segment offers
// exactly three options.
const ChoicesPerSegment = 3

// StorySegment is the parsed form of one generator response: a story
// paragraph and exactly three choice lines. It is transient; the raw text
// it was parsed from is what gets cached alongside the session so a later
// index selection can be resolved against it.
type StorySegment struct {
	Story   string
	Choices []string
}

// ChoiceOption is a resolved selection: the cleaned label plus the impacts
// extracted from its annotation. Discarded once the turn is resolved.
type ChoiceOption struct {
	Label          string
	HappinessDelta int
	WealthDelta    int
}
