package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/CTAG07/markovgen/pkg/corpus"
	"github.com/CTAG07/markovgen/pkg/markov"
)

// openStore opens the corpus database, prepares its schema and returns a
// store on it. The caller closes both.
func openStore(dataSource string) (*sql.DB, *corpus.Store, error) {
	db, err := initDB(dataSource)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err = corpus.SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to setup corpus schema: %w", err)
	}
	store, err := corpus.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to prepare corpus store: %w", err)
	}
	return db, store, nil
}

// corpusReader returns the configured corpus and a function that releases it.
func corpusReader(ctx context.Context, cfg *CorpusConfig, logger *slog.Logger) (io.Reader, func(), error) {
	if cfg.Source == "" {
		f, err := os.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open corpus: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	db, store, err := openStore(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	store.SetLogger(logger)
	release := func() {
		store.Close()
		_ = db.Close()
	}
	r, err := store.Reader(ctx, cfg.Source)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("could not read corpus source %q: %w", cfg.Source, err)
	}
	return r, release, nil
}

// buildState trains a model from the configured corpus, prunes it if asked
// and bundles it with a seeded generator.
func buildState(ctx context.Context, cfg *Config, logger *slog.Logger) (*markov.State, error) {
	r, release, err := corpusReader(ctx, cfg.Corpus, logger)
	if err != nil {
		return nil, err
	}
	defer release()

	model := markov.NewModel()
	builder := markov.NewBuilder(cfg.Corpus.tokenizer(), append(cfg.Corpus.builderOptions(), markov.WithBuilderLogger(logger))...)
	if err = builder.Train(ctx, model, r); err != nil {
		return nil, fmt.Errorf("training failed: %w", err)
	}
	if cfg.Corpus.PruneBelow > 0 {
		model.Prune(ctx, cfg.Corpus.PruneBelow, logger)
	}

	gen := markov.NewGenerator(cfg.Generation.Seed, append(cfg.Generation.generateOptions(), markov.WithLogger(logger))...)
	return markov.NewState(gen, model)
}
