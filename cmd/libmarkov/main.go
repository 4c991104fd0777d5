// Command libmarkov is built as a C shared library:
//
//	go build -buildmode=c-shared -o libmarkov.so ./cmd/libmarkov
//
// It exposes sentence generation to non-Go callers. The exported functions
// are only compiled when cgo is enabled.
package main

import (
	"os"

	"github.com/CTAG07/markovgen/internal/logging"
)

// logLevelEnv names the environment variable holding the library's log level.
const logLevelEnv = "MARKOV_LOG_LEVEL"

// logger writes to stderr so that it never mixes with the caller's stdout.
var logger = logging.New(os.Stderr, levelFromEnv())

func levelFromEnv() string {
	if level, ok := os.LookupEnv(logLevelEnv); ok {
		return level
	}
	return "error"
}

func main() {}
