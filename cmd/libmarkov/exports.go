//go:build cgo

package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/CTAG07/markovgen/internal/handle"
	"github.com/CTAG07/markovgen/pkg/markov"
)

// The calling protocol is:
//
//	h = markov_create_generator(path, seed)    // 0 on failure, see markov_last_error
//	s = markov_generate_sentence(h)            // NULL on failure
//	markov_release_string(s)                   // exactly once per returned string
//	markov_destroy_generator(h)
//
// Every non-NULL char* returned by this library is owned by the library until
// it is passed to markov_release_string.

var (
	states      = handle.NewTable()
	liveStrings = handle.NewStrings()

	lastErrMu sync.Mutex
	lastErr   string
)

func setLastError(err error) {
	lastErrMu.Lock()
	lastErr = err.Error()
	lastErrMu.Unlock()
}

// newCString copies s into C memory and tracks it until it is released.
func newCString(s string) *C.char {
	cs := C.CString(s)
	liveStrings.Track(uintptr(unsafe.Pointer(cs)))
	return cs
}

//export markov_create_generator
func markov_create_generator(path *C.char, seed C.uint64_t) C.uintptr_t {
	if path == nil {
		setLastError(errNilPath)
		return 0
	}
	goPath := C.GoString(path)
	ctx := context.Background()

	state, err := markov.LoadState(ctx, goPath, markov.LoadConfig{
		Seed:   uint64(seed),
		Logger: logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create generator",
			slog.String("path", goPath),
			slog.String("error", err.Error()),
		)
		setLastError(err)
		return 0
	}

	h := states.Register(state)
	logger.InfoContext(ctx, "Generator created",
		slog.String("path", goPath),
		slog.Uint64("handle", uint64(h)),
		slog.Int("predecessors", state.Model().Len()),
	)
	return C.uintptr_t(h)
}

//export markov_generate_sentence
func markov_generate_sentence(h C.uintptr_t) *C.char {
	sentence, err := states.Generate(context.Background(), handle.Handle(h))
	if err != nil {
		logger.Error("Failed to generate sentence",
			slog.Uint64("handle", uint64(h)),
			slog.String("error", err.Error()),
		)
		setLastError(err)
		return nil
	}
	return newCString(sentence)
}

//export markov_release_string
func markov_release_string(s *C.char) {
	if s == nil {
		return
	}
	if !liveStrings.Release(uintptr(unsafe.Pointer(s))) {
		logger.Warn("Ignoring release of a string not owned by the library")
		return
	}
	C.free(unsafe.Pointer(s))
}

//export markov_destroy_generator
func markov_destroy_generator(h C.uintptr_t) {
	if err := states.Destroy(handle.Handle(h)); err != nil {
		logger.Warn("Failed to destroy generator",
			slog.Uint64("handle", uint64(h)),
			slog.String("error", err.Error()),
		)
		setLastError(err)
	}
}

// markov_last_error returns the message of the most recent failure, or NULL
// if nothing has failed yet. The string must be released like any other.
//
//export markov_last_error
func markov_last_error() *C.char {
	lastErrMu.Lock()
	msg := lastErr
	lastErrMu.Unlock()
	if msg == "" {
		return nil
	}
	return newCString(msg)
}
