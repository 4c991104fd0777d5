package markov

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Builder turns a stream of corpus lines into transitions on a Model.
type Builder struct {
	tokenizer       Tokenizer
	keepSingleWords bool
	maxLineTokens   int
	logger          *slog.Logger
}

// BuilderOption is a function that configures a Builder.
type BuilderOption func(*Builder)

// WithKeepSingleWordLines makes the builder record a sentence break for lines
// holding exactly one token. By default such lines are dropped, like every
// other line with fewer than two tokens.
func WithKeepSingleWordLines(keep bool) BuilderOption {
	return func(b *Builder) { b.keepSingleWords = keep }
}

// WithMaxLineTokens caps how many tokens of a single line are used. Tokens
// past the cap are ignored and the line ends at the last kept token.
// Default: 4096
func WithMaxLineTokens(n int) BuilderOption {
	return func(b *Builder) {
		if n > 0 {
			b.maxLineTokens = n
		}
	}
}

// WithBuilderLogger sets the logger used for training summaries.
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a Builder that splits lines with tokenizer. A nil
// tokenizer selects NewDefaultTokenizer().
func NewBuilder(tokenizer Tokenizer, opts ...BuilderOption) *Builder {
	if tokenizer == nil {
		tokenizer = NewDefaultTokenizer()
	}
	b := &Builder{
		tokenizer:     tokenizer,
		maxLineTokens: 4096,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build creates a model from a slice of lines using the default tokenizer
// and builder settings. It never fails: blank lines and lines with fewer
// than two tokens are skipped.
func Build(lines []string) *Model {
	b := NewBuilder(nil)
	model := NewModel()
	for _, line := range lines {
		b.addLine(model, b.tokenizer.Tokenize(line))
	}
	return model
}

// Train reads data line by line and adds every transition it finds to model.
// Counts accumulate, so training the same model on several readers merges
// them. Only errors from reading data are returned.
func (b *Builder) Train(ctx context.Context, model *Model, data io.Reader) error {
	stream := b.tokenizer.NewStream(data)

	var lineCount, usedCount, transitions int64
	for {
		tokens, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("tokenizer error on line %d: %w", lineCount+1, err)
		}
		lineCount++

		if n := b.addLine(model, tokens); n > 0 {
			usedCount++
			transitions += int64(n)
		}
	}

	b.logger.InfoContext(ctx, "Training completed",
		slog.Int64("lines_read", lineCount),
		slog.Int64("lines_used", usedCount),
		slog.Int64("transitions_recorded", transitions),
		slog.Int("predecessors", model.Len()),
	)
	return nil
}

// TrainString is a convenience wrapper around Train for in-memory text.
func (b *Builder) TrainString(ctx context.Context, model *Model, text string) error {
	return b.Train(ctx, model, strings.NewReader(text))
}

// addLine records the transitions of one tokenized line and returns how many
// it recorded.
func (b *Builder) addLine(model *Model, tokens []Token) int {
	if len(tokens) > b.maxLineTokens {
		tokens = tokens[:b.maxLineTokens]
	}

	switch {
	case len(tokens) == 0:
		return 0
	case len(tokens) == 1:
		if !b.keepSingleWords {
			return 0
		}
		model.Observe(Word(tokens[0].Text), SentenceBreak)
		return 1
	}

	recorded := 0
	for i := 0; i < len(tokens)-1; i++ {
		prev := Word(tokens[i].Text)
		if tokens[i].Comma {
			model.Observe(prev, Comma)
			recorded++
		}
		model.Observe(prev, Word(tokens[i+1].Text))
		recorded++
	}
	model.Observe(Word(tokens[len(tokens)-1].Text), SentenceBreak)
	return recorded + 1
}
