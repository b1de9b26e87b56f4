// Package parser extracts structured game data from the plain-text format
// the generator is prompted to produce. It is a format-contract parser,
// not NLP: two literal markers and one parenthesized impact tuple.
package parser

import (
	"fmt"
	"strings"

	"westeros-realty/internal/models"
)

const (
	storyMarker   = "STORY:"
	choicesMarker = "CHOICES:"
)

// ParseSegment splits a raw generator response into a story paragraph and
// exactly three choice lines. The expected contract is:
//
//	STORY: <free text>
//	CHOICES:
//	1. <choice text with (Happiness: ±N, Wealth: ±N)>
//	2. ...
//	3. ...
//
// Any violation (missing marker, fewer than three non-empty choice lines)
// fails with ErrMalformedSegment so the caller can substitute a fallback
// segment instead of presenting garbage. Choice lines are kept verbatim;
// impact extraction is deferred to ParseImpact at selection time.
func ParseSegment(raw string) (*models.StorySegment, error) {
	parts := strings.SplitN(raw, storyMarker, 2)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: missing %q marker", models.ErrMalformedSegment, storyMarker)
	}

	body := strings.SplitN(parts[1], choicesMarker, 2)
	if len(body) < 2 {
		return nil, fmt.Errorf("%w: missing %q marker", models.ErrMalformedSegment, choicesMarker)
	}
	story := strings.TrimSpace(body[0])

	choices := make([]string, 0, models.ChoicesPerSegment)
	for _, line := range strings.Split(body[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		choices = append(choices, line)
		if len(choices) == models.ChoicesPerSegment {
			break
		}
	}
	if len(choices) < models.ChoicesPerSegment {
		return nil, fmt.Errorf("%w: expected %d choice lines, got %d",
			models.ErrMalformedSegment, models.ChoicesPerSegment, len(choices))
	}

	return &models.StorySegment{Story: story, Choices: choices}, nil
}

// CleanChoiceLabel strips the leading list numbering ("1. ", "2. ", "3. ")
// from a raw choice line.
func CleanChoiceLabel(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "123. "))
}
