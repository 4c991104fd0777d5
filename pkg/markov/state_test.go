package markov

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeCorpus writes text into a file under t.TempDir and returns its path.
func writeCorpus(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}
	return path
}

func TestLoadState(t *testing.T) {
	ctx := context.Background()
	path := writeCorpus(t, "this is a sentence\nthis is another sentence\n")

	state, err := LoadState(ctx, path, LoadConfig{Seed: 9})
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if got := state.Model().Table(Word("this")).Count(Word("is")); got != 2 {
		t.Errorf("expected 'this' -> 'is' count 2, got %d", got)
	}
	if state.Generator().Seed() != 9 {
		t.Errorf("expected seed 9, got %d", state.Generator().Seed())
	}

	again, err := LoadState(ctx, path, LoadConfig{Seed: 9})
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		a, errA := state.Sentence(ctx)
		b, errB := again.Sentence(ctx)
		if errA != nil || errB != nil {
			t.Fatalf("Sentence failed: %v, %v", errA, errB)
		}
		if a != b {
			t.Fatalf("call %d: states with the same seed diverged: %q vs %q", i, a, b)
		}
	}
}

func TestLoadStateErrors(t *testing.T) {
	ctx := context.Background()

	_, err := LoadState(ctx, filepath.Join(t.TempDir(), "missing.txt"), LoadConfig{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}

	_, err = LoadState(ctx, writeCorpus(t, "one\ntwo\n\n"), LoadConfig{})
	if !errors.Is(err, ErrEmptyModel) {
		t.Errorf("expected ErrEmptyModel, got %v", err)
	}

	if _, err = NewState(NewGenerator(1), NewModel()); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("expected ErrEmptyModel from NewState, got %v", err)
	}
}
