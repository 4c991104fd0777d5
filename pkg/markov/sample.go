package markov

import (
	"math"
	"slices"
)

// RNG is the source of randomness used for sampling. *rand.Rand from
// math/rand/v2 satisfies it.
type RNG interface {
	IntN(n int) int
	Float64() float64
}

// Choose draws one successor from t with probability proportional to its
// count. It panics with ErrEmptyTable if t has no entries; every table in a
// built model has at least one.
func Choose(rng RNG, t *Table) Atom {
	if t == nil || t.total <= 0 {
		panic(ErrEmptyTable)
	}
	r := rng.IntN(t.total)
	for _, e := range t.entries {
		r -= e.Count
		if r < 0 {
			return e.Next
		}
	}
	// Unreachable while total matches the entries.
	return t.entries[len(t.entries)-1].Next
}

// sampler holds the selection settings shared by a Generator.
type sampler struct {
	temperature float64
	topK        int
}

// choose abstracts the selection logic from the generation loop. With the
// default settings it is exactly Choose.
func (s sampler) choose(rng RNG, t *Table) Atom {
	if t == nil || t.total <= 0 {
		panic(ErrEmptyTable)
	}
	if s.topK <= 0 && s.temperature == 1.0 {
		return Choose(rng, t)
	}

	choices := t.entries
	if s.topK > 0 && s.topK < len(choices) {
		choices = slices.Clone(choices)
		slices.SortStableFunc(choices, func(a, b Transition) int {
			return b.Count - a.Count
		})
		choices = choices[:s.topK]
	}

	if s.temperature <= 0 { // Deterministic
		best := choices[0]
		for _, c := range choices[1:] {
			if c.Count > best.Count {
				best = c
			}
		}
		return best.Next
	}

	if s.temperature == 1.0 {
		total := 0
		for _, c := range choices {
			total += c.Count
		}
		r := rng.IntN(total)
		for _, c := range choices {
			r -= c.Count
			if r < 0 {
				return c.Next
			}
		}
		return choices[len(choices)-1].Next
	}

	// Temperature-based sampling over log frequencies.
	maxLog := math.Inf(-1)
	logs := make([]float64, len(choices))
	for i, c := range choices {
		lp := math.Log(float64(c.Count)) / s.temperature
		logs[i] = lp
		if lp > maxLog {
			maxLog = lp
		}
	}
	var totalWeight float64
	weights := make([]float64, len(choices))
	for i, lp := range logs {
		weights[i] = math.Exp(lp - maxLog)
		totalWeight += weights[i]
	}
	r := rng.Float64() * totalWeight
	for i, c := range choices {
		r -= weights[i]
		if r < 0 {
			return c.Next
		}
	}
	return choices[len(choices)-1].Next
}
