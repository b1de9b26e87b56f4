package parser

import (
	"strconv"
	"strings"
)

// ParseImpact extracts the signed (happiness, wealth) deltas from a choice
// line's "(Happiness: ±N, Wealth: ±N)" annotation. Token order is the
// contract: first token is happiness, second is wealth, regardless of the
// labels. Every failure mode returns (0, 0): a choice without a readable
// annotation simply has no effect, it never aborts the turn.
func ParseImpact(choiceText string) (happinessDelta, wealthDelta int) {
	open := strings.Index(choiceText, "(")
	if open == -1 {
		return 0, 0
	}
	closing := strings.Index(choiceText[open+1:], ")")
	if closing == -1 {
		return 0, 0
	}

	tokens := strings.Split(choiceText[open+1:open+1+closing], ",")
	if len(tokens) < 2 {
		return 0, 0
	}

	happiness, err := extractNumber(tokens[0])
	if err != nil {
		return 0, 0
	}
	wealth, err := extractNumber(tokens[1])
	if err != nil {
		return 0, 0
	}
	return happiness, wealth
}

// extractNumber keeps only digit and sign characters from the token and
// parses the result as a signed integer. Stray label text ("Happiness: +20")
// is discarded; multiple embedded signs produce an invalid numeral and
// fail closed.
func extractNumber(token string) (int, error) {
	var b strings.Builder
	for _, r := range token {
		if (r >= '0' && r <= '9') || r == '+' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strconv.Atoi(b.String())
}
