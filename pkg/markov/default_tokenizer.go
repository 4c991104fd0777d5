package markov

import (
	"bufio"
	"io"
	"strings"
)

// defaultMaxLineBytes is the largest line the stream tokenizer accepts.
const defaultMaxLineBytes = 1 << 20

// DefaultTokenizer is the default implementation of the Tokenizer interface.
// It splits lines on runs of whitespace and strips a single trailing comma
// from each token. Its behavior can be customized with functional options.
type DefaultTokenizer struct {
	lowercase    bool
	maxLineBytes int
}

// Option is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithLowercase folds word text to lower case before it is recorded.
// Default: false
func WithLowercase(lower bool) Option {
	return func(t *DefaultTokenizer) {
		t.lowercase = lower
	}
}

// WithMaxLineBytes sets the maximum length of a single line read by a stream.
// Longer lines make the stream fail with bufio.ErrTooLong.
// Default: 1 MiB
func WithMaxLineBytes(n int) Option {
	return func(t *DefaultTokenizer) {
		if n > 0 {
			t.maxLineBytes = n
		}
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		maxLineBytes: defaultMaxLineBytes,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tokenize splits line on whitespace. A token ending in a comma is reported
// with the comma stripped and Comma set. A token that is nothing but a comma
// marks the token before it instead, and is dropped when it starts the line.
func (t *DefaultTokenizer) Tokenize(line string) []Token {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	tokens := make([]Token, 0, len(fields))
	for _, field := range fields {
		if field == "," {
			if len(tokens) > 0 {
				tokens[len(tokens)-1].Comma = true
			}
			continue
		}
		text := TrimTrailingComma(field)
		comma := len(text) != len(field)
		if t.lowercase {
			text = strings.ToLower(text)
		}
		tokens = append(tokens, Token{Text: text, Comma: comma})
	}
	return tokens
}

// NewStream returns the stream processor.
func (t *DefaultTokenizer) NewStream(r io.Reader) StreamTokenizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, t.maxLineBytes)), t.maxLineBytes)
	return &DefaultStreamTokenizer{
		scanner:   scanner,
		tokenizer: t,
	}
}

// DefaultStreamTokenizer is the default implementation of the StreamTokenizer
// interface. It reads one line at a time with a bufio.Scanner.
type DefaultStreamTokenizer struct {
	scanner   *bufio.Scanner
	tokenizer *DefaultTokenizer
}

// Next returns the tokens of the next line. When the stream is exhausted, it
// returns nil and io.EOF. Any other error indicates a problem reading from the
// underlying stream.
func (s *DefaultStreamTokenizer) Next() ([]Token, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return s.tokenizer.Tokenize(s.scanner.Text()), nil
}
