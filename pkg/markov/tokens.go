package markov

import (
	"io"
	"strings"
)

// Token represents a single whitespace-delimited token of a corpus line. Text
// has its trailing comma removed, and Comma records whether one was present.
type Token struct {
	Text  string
	Comma bool
}

// Tokenizer is an interface that defines the contract for splitting corpus
// lines into tokens. This allows the builder to be independent of the
// specific tokenization strategy.
type Tokenizer interface {
	// Tokenize splits a single line into tokens. An empty or blank line
	// yields no tokens.
	Tokenize(line string) []Token
	// NewStream returns a stateful StreamTokenizer for processing an io.Reader
	// one line at a time.
	NewStream(io.Reader) StreamTokenizer
}

// StreamTokenizer is an interface for a stateful tokenizer that processes a
// stream of lines, returning the tokens of one line per call.
type StreamTokenizer interface {
	// Next returns the tokens of the next line, which may be empty. It
	// returns io.EOF as the error when the stream is fully consumed.
	Next() ([]Token, error)
}

// TrimTrailingComma removes exactly one trailing comma from s. Any other
// trailing punctuation is left alone.
func TrimTrailingComma(s string) string {
	return strings.TrimSuffix(s, ",")
}
