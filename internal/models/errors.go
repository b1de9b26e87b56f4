package models

import "errors"

// Application-wide standard errors
var (
	// Parsing & Generation Errors
	ErrMalformedSegment     = errors.New("segment text violates the story format contract")
	ErrGeneratorUnavailable = errors.New("text generator unavailable")

	// Player Input Errors
	ErrInvalidChoice = errors.New("invalid choice")

	// Session & Persistence Errors
	ErrSessionNotFound = errors.New("no active game session")
	ErrInvalidRecord   = errors.New("invalid game state record")
)
