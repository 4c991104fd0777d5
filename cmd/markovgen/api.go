package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/CTAG07/markovgen/pkg/markov"
)

// MarkovAPI serves sentences from a single State. The state's random source
// is not safe for concurrent use, so every request takes the mutex.
type MarkovAPI struct {
	mu       sync.Mutex
	state    *markov.State
	maxCount int
	logger   *slog.Logger
}

// SentenceResponse is the body returned by the sentence endpoint.
type SentenceResponse struct {
	Sentences []string `json:"sentences"`
}

// VersionInfo defines the structure for build/version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
}

// NewMarkovAPI creates a new instance of the MarkovAPI.
func NewMarkovAPI(state *markov.State, maxCount int, logger *slog.Logger) *MarkovAPI {
	if maxCount <= 0 {
		maxCount = 1
	}
	return &MarkovAPI{
		state:    state,
		maxCount: maxCount,
		logger:   logger,
	}
}

// RegisterRoutes sets up the routing for all /api endpoints.
func (m *MarkovAPI) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/markov/sentence", m.handleSentence)
	mux.HandleFunc("/api/markov/stats", m.handleStats)
	mux.HandleFunc("/api/server/version", m.handleVersion)
}

// handleSentence generates ?n= sentences, optionally all starting from ?start=.
func (m *MarkovAPI) handleSentence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	count := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondWithError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		count = min(n, m.maxCount)
	}
	start := r.URL.Query().Get("start")

	m.mu.Lock()
	defer m.mu.Unlock()

	resp := SentenceResponse{Sentences: make([]string, 0, count)}
	for i := 0; i < count; i++ {
		var sentence string
		var err error
		if start != "" {
			sentence, err = m.state.Generator().GenerateFrom(r.Context(), m.state.Model(), markov.Word(start))
		} else {
			sentence, err = m.state.Sentence(r.Context())
		}
		if err != nil {
			if errors.Is(err, markov.ErrUnknownStart) {
				respondWithError(w, http.StatusNotFound, fmt.Sprintf("Start word %q not found", start))
				return
			}
			m.logger.Error("Failed to generate sentence", "error", err)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Generation failed: %v", err))
			return
		}
		resp.Sentences = append(resp.Sentences, sentence)
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// handleStats returns statistics for the loaded model.
func (m *MarkovAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	m.mu.Lock()
	stats := m.state.Model().Stats()
	m.mu.Unlock()
	respondWithJSON(w, http.StatusOK, stats)
}

// handleVersion returns the application's build information.
func (m *MarkovAPI) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	respondWithJSON(w, http.StatusOK, VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	})
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode JSON response", "error", err)
		}
	}
}
