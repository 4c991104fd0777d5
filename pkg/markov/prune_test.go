package markov

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestPrune(t *testing.T) {
	ctx := context.Background()
	model := setupTestModel(t, "a b c\na b d")
	// Link "a" -> "b" has count 2. Every other link has count 1.

	res := model.Prune(ctx, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if res.ChainsRemoved != 4 {
		t.Errorf("expected 4 chains removed, got %d", res.ChainsRemoved)
	}
	if res.PredecessorsRemoved != 3 {
		t.Errorf("expected 3 predecessors removed, got %d", res.PredecessorsRemoved)
	}
	if model.Len() != 1 || model.Keys()[0] != Word("a") {
		t.Fatalf("expected only 'a' to remain, got %v", model.Keys())
	}
	if got := model.Table(Word("a")).Total(); got != 2 {
		t.Errorf("expected 'a' to keep a total of 2, got %d", got)
	}

	// "b" lost its table, so the walk ends there.
	out, err := NewGenerator(1).Generate(ctx, model)
	if err != nil {
		t.Fatalf("Generate after prune failed: %v", err)
	}
	if out != "a b" {
		t.Errorf("expected %q, got %q", "a b", out)
	}
}

func TestPruneNoop(t *testing.T) {
	model := setupTestModel(t, "a b c")
	before := model.Stats()

	res := model.Prune(context.Background(), 0, nil)
	if res != (PruneResult{}) {
		t.Errorf("expected nothing removed, got %+v", res)
	}
	if model.Stats() != before {
		t.Errorf("model changed after a no-op prune: %+v -> %+v", before, model.Stats())
	}
}
