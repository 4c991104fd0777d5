package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
)

// pcgStream is the fixed second word of the PCG state; only the seed varies.
const pcgStream = 0x9e3779b97f4a7c15

// generateOptions holds the settings applied by GenerateOption functions.
type generateOptions struct {
	maxWords        int
	maxCommaRedraws int
	temperature     float64
	topK            int
	logger          *slog.Logger
}

// GenerateOption is a function that configures a Generator.
type GenerateOption func(*generateOptions)

// WithMaxWords stops a sentence once it holds n words even if no sentence
// break was drawn. A value of 0 disables the limit.
// Default: 0
func WithMaxWords(n int) GenerateOption {
	return func(o *generateOptions) { o.maxWords = n }
}

// WithMaxCommaRedraws bounds how many times a draw is repeated after a comma
// while looking for the next word. When the bound is hit generation fails with
// ErrDegenerateComma.
// Default: 1000
func WithMaxCommaRedraws(n int) GenerateOption {
	return func(o *generateOptions) {
		if n > 0 {
			o.maxCommaRedraws = n
		}
	}
}

// WithTemperature adjusts the randomness of successor selection.
// A value of 1.0 is standard weighted random selection.
// Values > 1.0 flatten the distribution, values < 1.0 sharpen it, and a value
// of 0 or less always picks the most frequent successor.
// Default: 1.0
func WithTemperature(t float64) GenerateOption {
	return func(o *generateOptions) { o.temperature = t }
}

// WithTopK restricts selection to the k most frequent successors at each
// step. A value of 0 disables Top-K sampling.
// Default: 0
func WithTopK(k int) GenerateOption {
	return func(o *generateOptions) { o.topK = k }
}

// WithLogger sets the logger for the Generator. By default, all logs are discarded.
func WithLogger(logger *slog.Logger) GenerateOption {
	return func(o *generateOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Generator walks a Model to produce sentences. It owns its random source, so
// a Generator must not be used from more than one goroutine at a time.
type Generator struct {
	rng             *rand.Rand
	seed            uint64
	sampler         sampler
	maxWords        int
	maxCommaRedraws int
	logger          *slog.Logger
}

// NewGenerator creates a Generator whose random source is seeded with seed.
// Two generators with the same seed and options produce the same sentences
// from the same model.
func NewGenerator(seed uint64, opts ...GenerateOption) *Generator {
	options := &generateOptions{
		maxCommaRedraws: 1000,
		temperature:     1.0,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Generator{
		rng:             rand.New(rand.NewPCG(seed, pcgStream)),
		seed:            seed,
		sampler:         sampler{temperature: options.temperature, topK: options.topK},
		maxWords:        options.maxWords,
		maxCommaRedraws: options.maxCommaRedraws,
		logger:          options.logger,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// SetLogger sets the logger for the Generator.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Generate produces one sentence. The first word is drawn uniformly from all
// predecessor atoms of the model, and the rest of the sentence follows the
// weighted transitions until a sentence break is drawn.
func (g *Generator) Generate(ctx context.Context, model *Model) (string, error) {
	if model == nil || model.Len() == 0 {
		return "", ErrEmptyModel
	}
	keys := model.Keys()
	first := keys[g.rng.IntN(len(keys))]
	return g.walk(ctx, model, first)
}

// GenerateFrom produces one sentence starting from the given word.
func (g *Generator) GenerateFrom(ctx context.Context, model *Model, start Atom) (string, error) {
	if model == nil || model.Len() == 0 {
		return "", ErrEmptyModel
	}
	if !start.IsWord() {
		return "", ErrInvalidStart
	}
	if model.Table(start) == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownStart, start.Text)
	}
	return g.walk(ctx, model, start)
}

// walk contains the main loop for generating a sentence.
func (g *Generator) walk(ctx context.Context, model *Model, first Atom) (string, error) {
	if !first.IsWord() {
		return "", fmt.Errorf("%w: %s", ErrInvalidStart, first)
	}

	words := []string{first.Text}
	current := first
	next := g.sampler.choose(g.rng, model.Table(current))

	for next != SentenceBreak {
		if g.maxWords > 0 && len(words) >= g.maxWords {
			g.logger.DebugContext(ctx, "Generation terminated by reaching maxWords",
				slog.Int("max_words", g.maxWords),
			)
			break
		}

		if next == Comma {
			// The comma belongs to the word we are continuing from, and the
			// sentence continues with a fresh word drawn from the same table.
			words[len(words)-1] += ","
			replacement, err := g.redraw(model.Table(current))
			if err != nil {
				return "", fmt.Errorf("after %q: %w", current.Text, err)
			}
			next = replacement
		}

		words = append(words, next.Text)
		current = next

		table := model.Table(current)
		if table == nil || table.Len() == 0 { // Dead end in chain
			g.logger.DebugContext(ctx, "Generation terminated due to dead-end",
				slog.String("last_word", current.Text),
				slog.Int("generated_length", len(words)),
			)
			break
		}
		next = g.sampler.choose(g.rng, table)
	}

	return strings.Join(words, " "), nil
}

// redraw draws from t until a word comes out. Tables without any word
// successor fail immediately rather than spinning.
func (g *Generator) redraw(t *Table) (Atom, error) {
	if t == nil || !t.hasWord() {
		return Atom{}, ErrDegenerateComma
	}

	if g.sampler.temperature <= 0 || g.sampler.topK > 0 {
		// Shaped samplers may never offer a word, so sample the words alone.
		words := NewTable()
		for _, e := range t.entries {
			if e.Next.IsWord() {
				words.Add(e.Next, e.Count)
			}
		}
		return g.sampler.choose(g.rng, words), nil
	}

	for i := 0; i < g.maxCommaRedraws; i++ {
		if a := Choose(g.rng, t); a.IsWord() {
			return a, nil
		}
	}
	return Atom{}, ErrDegenerateComma
}
