// Command markovgen trains a sentence model from a corpus and generates
// sentences from it, either on the command line or over a small HTTP API.
//
// Usage:
//
//	markovgen [-config path] generate [-n count] [-seed n] [-start word] [-out file]
//	markovgen [-config path] ingest [-source name] [-reuters] files...
//	markovgen [-config path] stats
//	markovgen [-config path] serve
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/CTAG07/markovgen/internal/logging"
	"github.com/CTAG07/markovgen/pkg/corpus"
	"github.com/CTAG07/markovgen/pkg/markov"
	"github.com/natefinch/atomic"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "./config.json", "path to the JSON config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config path] <generate|ingest|stats|serve> [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, config.Server.LogLevel)

	ctx := context.Background()
	args := flag.Args()
	switch args[0] {
	case "generate":
		err = runGenerate(ctx, config, logger, args[1:], os.Stdout)
	case "ingest":
		err = runIngest(ctx, config, logger, args[1:])
	case "stats":
		err = runStats(ctx, config, logger, os.Stdout)
	case "serve":
		err = runServe(ctx, config, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("Command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

// runGenerate prints or writes generated sentences, one per line.
func runGenerate(ctx context.Context, config *Config, logger *slog.Logger, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	count := fs.Int("n", config.Generation.Count, "number of sentences")
	seed := fs.Uint64("seed", config.Generation.Seed, "random seed")
	start := fs.String("start", "", "start every sentence from this word")
	out := fs.String("out", "", "write sentences to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	genConfig := *config.Generation
	genConfig.Seed = *seed
	runConfig := *config
	runConfig.Generation = &genConfig

	state, err := buildState(ctx, &runConfig, logger)
	if err != nil {
		return err
	}

	sentences := make([]string, 0, max(*count, 0))
	for i := 0; i < *count; i++ {
		var sentence string
		if *start != "" {
			sentence, err = state.Generator().GenerateFrom(ctx, state.Model(), markov.Word(*start))
		} else {
			sentence, err = state.Sentence(ctx)
		}
		if err != nil {
			return fmt.Errorf("sentence %d: %w", i+1, err)
		}
		sentences = append(sentences, sentence)
	}

	text := strings.Join(sentences, "\n")
	if len(sentences) > 0 {
		text += "\n"
	}
	if *out != "" {
		if err = atomic.WriteFile(*out, strings.NewReader(text)); err != nil {
			return fmt.Errorf("failed to write %s: %w", *out, err)
		}
		logger.Info("Sentences written", "path", *out, "count", len(sentences))
		return nil
	}
	_, err = io.WriteString(stdout, text)
	return err
}

// runIngest stores the sentences of each file under a corpus source.
func runIngest(ctx context.Context, config *Config, logger *slog.Logger, args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	source := fs.String("source", config.Corpus.Source, "corpus source name")
	reuters := fs.Bool("reuters", false, "files are Reuters-21578 SGML")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *source == "" {
		return errors.New("ingest: -source is required")
	}
	if fs.NArg() == 0 {
		return errors.New("ingest: no input files")
	}

	db, store, err := openStore(config.Corpus.DatabasePath)
	if err != nil {
		return err
	}
	defer func() {
		store.Close()
		_ = db.Close()
	}()
	store.SetLogger(logger)

	for _, path := range fs.Args() {
		lines, err := readSentences(path, *reuters)
		if err != nil {
			return err
		}
		if _, _, err = store.Add(ctx, *source, lines); err != nil {
			return fmt.Errorf("failed to store %s: %w", path, err)
		}
	}
	return nil
}

// readSentences returns the corpus lines of one input file.
func readSentences(path string, reuters bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if reuters {
		return corpus.ExtractReuters(f)
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}
	return lines, nil
}

// runStats prints statistics for the configured corpus as JSON.
func runStats(ctx context.Context, config *Config, logger *slog.Logger, stdout io.Writer) error {
	state, err := buildState(ctx, config, logger)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(state.Model().Stats())
}

// runServe hosts the API until the process receives SIGINT or SIGTERM.
func runServe(ctx context.Context, config *Config, logger *slog.Logger) error {
	state, err := buildState(ctx, config, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	NewMarkovAPI(state, config.Server.MaxSentencesReq, logger).RegisterRoutes(mux)
	apiHttpServer := &http.Server{Addr: config.Server.ApiAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting api server", "address", apiHttpServer.Addr)
		if err := apiHttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err = <-errChan:
		if err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("OS signal received, stopping server.")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = apiHttpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Api server shutdown failed", "error", err)
	}
	logger.Info("markovgen has shut down.")
	return nil
}
