package markov

import (
	"context"
	"iter"
)

// Sentences returns an iterator that generates up to n sentences from model,
// one per step. A negative n yields sentences until the caller stops or ctx is
// cancelled. Iteration stops after the first error, which is yielded with an
// empty sentence.
func (g *Generator) Sentences(ctx context.Context, model *Model, n int) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for i := 0; n < 0 || i < n; i++ {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			sentence, err := g.Generate(ctx, model)
			if !yield(sentence, err) || err != nil {
				return
			}
		}
	}
}
