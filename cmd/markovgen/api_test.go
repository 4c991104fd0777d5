package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CTAG07/markovgen/pkg/markov"
	"github.com/stretchr/testify/require"
)

// setupTestAPI builds a state from corpus and returns a mux serving it.
func setupTestAPI(t *testing.T, corpus string, maxCount int) *http.ServeMux {
	t.Helper()
	state, err := buildState(context.Background(), testConfig(t, corpus), discardLogger())
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewMarkovAPI(state, maxCount, discardLogger()).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestHandleSentence(t *testing.T) {
	mux := setupTestAPI(t, testCorpus, 5)

	t.Run("default count", func(t *testing.T) {
		rr := doRequest(t, mux, http.MethodGet, "/api/markov/sentence")
		require.Equal(t, http.StatusOK, rr.Code)
		require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp SentenceResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Sentences, 1)
		assertSuffixSentences(t, resp.Sentences)
	})

	t.Run("count is capped", func(t *testing.T) {
		rr := doRequest(t, mux, http.MethodGet, "/api/markov/sentence?n=50")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp SentenceResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Len(t, resp.Sentences, 5)
	})

	t.Run("start word", func(t *testing.T) {
		rr := doRequest(t, mux, http.MethodGet, "/api/markov/sentence?n=2&start=beta")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp SentenceResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.Equal(t, []string{"beta gamma", "beta gamma"}, resp.Sentences)
	})

	t.Run("unknown start word", func(t *testing.T) {
		rr := doRequest(t, mux, http.MethodGet, "/api/markov/sentence?start=omega")
		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	for _, n := range []string{"0", "-3", "many"} {
		t.Run("bad count "+n, func(t *testing.T) {
			rr := doRequest(t, mux, http.MethodGet, "/api/markov/sentence?n="+n)
			require.Equal(t, http.StatusBadRequest, rr.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			require.NotEmpty(t, body["error"])
		})
	}

	t.Run("method not allowed", func(t *testing.T) {
		rr := doRequest(t, mux, http.MethodPost, "/api/markov/sentence")
		require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		require.Equal(t, "GET", rr.Header().Get("Allow"))
	})
}

func TestHandleStats(t *testing.T) {
	mux := setupTestAPI(t, "hello world\nhello there, world\n", 1)

	rr := doRequest(t, mux, http.MethodGet, "/api/markov/stats")
	require.Equal(t, http.StatusOK, rr.Code)

	var stats markov.ModelStats
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&stats))
	require.Equal(t, markov.ModelStats{
		Predecessors:   3,
		TotalChains:    5,
		TotalFrequency: 6,
		CommaLinks:     1,
		BreakLinks:     1,
		Vocabulary:     3,
	}, stats)

	rr = doRequest(t, mux, http.MethodDelete, "/api/markov/stats")
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandleVersion(t *testing.T) {
	mux := setupTestAPI(t, testCorpus, 1)

	rr := doRequest(t, mux, http.MethodGet, "/api/server/version")
	require.Equal(t, http.StatusOK, rr.Code)

	var info VersionInfo
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&info))
	require.Equal(t, VersionInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}, info)
}
