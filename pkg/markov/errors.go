package markov

import "errors"

var (
	// ErrEmptyModel is returned when generating from a model with no predecessor atoms.
	ErrEmptyModel = errors.New("markov: model is empty")
	// ErrEmptyTable is the panic value of Choose when given a table with no entries.
	ErrEmptyTable = errors.New("markov: transition table is empty")
	// ErrInvalidStart is returned when a walk would start from a comma or sentence break.
	ErrInvalidStart = errors.New("markov: start atom is not a word")
	// ErrUnknownStart is returned when a requested start word has no transitions.
	ErrUnknownStart = errors.New("markov: start word not found in model")
	// ErrDegenerateComma is returned when a comma follows a word whose table
	// offers no word to continue with.
	ErrDegenerateComma = errors.New("markov: degenerate comma chain")
)
