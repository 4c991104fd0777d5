package markov

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// State bundles a Generator and the Model it walks so that both share one
// lifetime. Each call to Sentence advances the generator's random source, so a
// State must have a single owner at a time.
type State struct {
	gen   *Generator
	model *Model
}

// NewState bundles gen and model. It fails with ErrEmptyModel if the model has
// nothing to generate from.
func NewState(gen *Generator, model *Model) (*State, error) {
	if model == nil || model.Len() == 0 {
		return nil, ErrEmptyModel
	}
	return &State{gen: gen, model: model}, nil
}

// LoadConfig holds the settings used by LoadState.
type LoadConfig struct {
	Seed      uint64
	Tokenizer Tokenizer
	Builder   []BuilderOption
	Generate  []GenerateOption
	Logger    *slog.Logger
}

// LoadState reads the corpus at path, builds its model and seeds a generator.
// Nothing is returned unless the file could be read and produced a non-empty
// model.
func LoadState(ctx context.Context, path string, cfg LoadConfig) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open corpus: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	builderOpts := cfg.Builder
	genOpts := cfg.Generate
	if cfg.Logger != nil {
		builderOpts = append(builderOpts[:len(builderOpts):len(builderOpts)], WithBuilderLogger(cfg.Logger))
		genOpts = append(genOpts[:len(genOpts):len(genOpts)], WithLogger(cfg.Logger))
	}

	model := NewModel()
	if err = NewBuilder(cfg.Tokenizer, builderOpts...).Train(ctx, model, f); err != nil {
		return nil, fmt.Errorf("could not read corpus %s: %w", path, err)
	}

	state, err := NewState(NewGenerator(cfg.Seed, genOpts...), model)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return state, nil
}

// Sentence generates one sentence and advances the random source.
func (s *State) Sentence(ctx context.Context) (string, error) {
	return s.gen.Generate(ctx, s.model)
}

// Model returns the bundled model.
func (s *State) Model() *Model {
	return s.model
}

// Generator returns the bundled generator.
func (s *State) Generator() *Generator {
	return s.gen
}
