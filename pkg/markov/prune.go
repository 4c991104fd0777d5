package markov

import (
	"context"
	"log/slog"
)

// PruneResult reports what a call to Prune removed.
type PruneResult struct {
	ChainsRemoved       int
	PredecessorsRemoved int
}

// Prune removes every transition observed minFreq times or fewer. This is
// useful for reducing the size of a model by removing rare, and often noisy,
// transitions. Predecessors left without any transition are removed too, and
// a walk that reaches a word with no table ends its sentence there.
func (m *Model) Prune(ctx context.Context, minFreq int, logger *slog.Logger) PruneResult {
	var res PruneResult
	if minFreq <= 0 {
		return res
	}

	kept := m.keys[:0]
	for _, k := range m.keys {
		t := m.tables[k]
		res.ChainsRemoved += t.retain(func(tr Transition) bool {
			return tr.Count > minFreq
		})
		if t.Len() == 0 {
			delete(m.tables, k)
			res.PredecessorsRemoved++
			continue
		}
		kept = append(kept, k)
	}
	clear(m.keys[len(kept):])
	m.keys = kept

	if logger != nil {
		logger.InfoContext(ctx, "Model pruned",
			slog.Int("min_frequency", minFreq),
			slog.Int("chains_removed", res.ChainsRemoved),
			slog.Int("predecessors_removed", res.PredecessorsRemoved),
		)
	}
	return res
}
