package markov

import (
	"context"
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestModel trains a new model on corpus with the default builder.
func setupTestModel(t testing.TB, corpus string, opts ...BuilderOption) *Model {
	t.Helper()
	model := NewModel()
	if err := NewBuilder(nil, opts...).TrainString(context.Background(), model, corpus); err != nil {
		t.Fatalf("setup: Train() failed: %v", err)
	}
	return model
}

// sequenceRNG replays a fixed list of draws, for tests that need to pick a
// specific successor.
type sequenceRNG struct {
	ints []int
	pos  int
}

func (s *sequenceRNG) IntN(n int) int {
	v := s.ints[s.pos%len(s.ints)]
	s.pos++
	return v % n
}

func (s *sequenceRNG) Float64() float64 {
	return 0
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking\nit is not very long, but will prevent a crash\n"
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
