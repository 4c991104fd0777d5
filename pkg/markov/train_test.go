package markov

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestBuildHelloWorld(t *testing.T) {
	model := Build([]string{"hello world"})

	want := map[Atom]map[Atom]int{
		Word("hello"): {Word("world"): 1},
		Word("world"): {SentenceBreak: 1},
	}
	if got := model.Counts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
}

func TestBuildAccumulatesCounts(t *testing.T) {
	model := setupTestModel(t, "this is a sentence\nthis is another sentence")

	table := model.Table(Word("this"))
	if table == nil {
		t.Fatal("expected a table for 'this'")
	}
	if got := table.Count(Word("is")); got != 2 {
		t.Errorf("expected 'this' -> 'is' to have count 2, got %d", got)
	}
	if got := model.Table(Word("sentence")).Count(SentenceBreak); got != 2 {
		t.Errorf("expected 'sentence' -> break to have count 2, got %d", got)
	}
}

func TestBuildComma(t *testing.T) {
	model := Build([]string{"not this, though"})

	want := map[Atom]map[Atom]int{
		Word("not"):    {Word("this"): 1},
		Word("this"):   {Comma: 1, Word("though"): 1},
		Word("though"): {SentenceBreak: 1},
	}
	if got := model.Counts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Build() = %v, want %v", got, want)
	}
	for _, k := range model.Keys() {
		if !k.IsWord() {
			t.Errorf("model key %v is not a word", k)
		}
	}
}

func TestBuildSkipsShortLines(t *testing.T) {
	testCases := []struct {
		name  string
		lines []string
		opts  []BuilderOption
		want  map[Atom]map[Atom]int
	}{
		{
			name:  "Blank and single-word lines are dropped",
			lines: []string{"", "   ", "alone"},
			want:  map[Atom]map[Atom]int{},
		},
		{
			name:  "Single-word lines kept on request",
			lines: []string{"alone", "alone,"},
			opts:  []BuilderOption{WithKeepSingleWordLines(true)},
			want:  map[Atom]map[Atom]int{Word("alone"): {SentenceBreak: 2}},
		},
		{
			name:  "Long lines are truncated",
			lines: []string{"a b c d"},
			opts:  []BuilderOption{WithMaxLineTokens(2)},
			want: map[Atom]map[Atom]int{
				Word("a"): {Word("b"): 1},
				Word("b"): {SentenceBreak: 1},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			model := setupTestModel(t, strings.Join(tc.lines, "\n"), tc.opts...)
			if got := model.Counts(); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTrainMergesReaders(t *testing.T) {
	ctx := context.Background()
	b := NewBuilder(NewDefaultTokenizer(WithLowercase(true)))
	model := NewModel()

	if err := b.TrainString(ctx, model, "Red fish"); err != nil {
		t.Fatalf("Train() failed: %v", err)
	}
	if err := b.TrainString(ctx, model, "red fish\nblue fish"); err != nil {
		t.Fatalf("Train() failed: %v", err)
	}

	if got := model.Table(Word("red")).Count(Word("fish")); got != 2 {
		t.Errorf("expected 'red' -> 'fish' count 2, got %d", got)
	}
	if got := model.Table(Word("fish")).Count(SentenceBreak); got != 3 {
		t.Errorf("expected 'fish' -> break count 3, got %d", got)
	}
	if model.Len() != 3 {
		t.Errorf("expected 3 predecessors, got %d", model.Len())
	}
}

func TestStats(t *testing.T) {
	model := setupTestModel(t, "hello world\nsay hello, world")

	want := ModelStats{
		Predecessors:   3,
		TotalChains:    4,
		TotalFrequency: 6,
		CommaLinks:     1,
		BreakLinks:     1,
		Vocabulary:     3,
	}
	if got := model.Stats(); got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func FuzzBuild(f *testing.F) {
	f.Add("hello world")
	f.Add("not this, though\nthis is, a sentence,")
	f.Add(", , ,\n,a b,, c")
	f.Add("a\n\nb c d\n")

	f.Fuzz(func(t *testing.T, corpus string) {
		model := setupTestModel(t, corpus)
		keys := make(map[Atom]bool, model.Len())
		for _, k := range model.Keys() {
			keys[k] = true
		}
		for _, k := range model.Keys() {
			if !k.IsWord() || k.Text == "" {
				t.Fatalf("invalid model key %#v", k)
			}
			table := model.Table(k)
			if table.Len() == 0 || table.Total() <= 0 {
				t.Fatalf("empty table for %q", k.Text)
			}
			for _, e := range table.Entries() {
				if e.Count <= 0 {
					t.Fatalf("non-positive count %d for %q -> %v", e.Count, k.Text, e.Next)
				}
				if e.Next.IsWord() && !keys[e.Next] {
					t.Fatalf("successor %q of %q has no table", e.Next.Text, k.Text)
				}
			}
		}
	})
}

func BenchmarkTrain(b *testing.B) {
	corpus := createBenchmarkCorpus()
	ctx := context.Background()

	for _, lower := range []bool{false, true} {
		b.Run(fmt.Sprintf("Lowercase%v", lower), func(b *testing.B) {
			builder := NewBuilder(NewDefaultTokenizer(WithLowercase(lower)))
			b.SetBytes(int64(len(corpus)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := builder.TrainString(ctx, NewModel(), corpus); err != nil {
					b.Fatalf("Train() failed: %v", err)
				}
			}
		})
	}
}
