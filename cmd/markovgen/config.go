package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/CTAG07/markovgen/pkg/markov"
	"github.com/natefinch/atomic"
)

// ServerConfig holds the settings for logging and the HTTP API.
type ServerConfig struct {
	ApiAddr         string `json:"api_addr"`
	LogLevel        string `json:"log_level"`
	MaxSentencesReq int    `json:"max_sentences_per_request"`
}

// CorpusConfig says where training sentences come from. When Source is set
// the sentences stored under that name in the database are used, otherwise
// the text file at Path is read.
type CorpusConfig struct {
	Path         string `json:"path"`
	DatabasePath string `json:"database_path"`
	Source       string `json:"source"`
	Lowercase    bool   `json:"lowercase"`
	KeepSingle   bool   `json:"keep_single_word_lines"`
	MaxLineWords int    `json:"max_line_words"`
	PruneBelow   int    `json:"prune_min_frequency"`
}

// GenerationConfig holds the sampling settings.
type GenerationConfig struct {
	Seed            uint64  `json:"seed"`
	Count           int     `json:"count"`
	MaxWords        int     `json:"max_words"`
	MaxCommaRedraws int     `json:"max_comma_redraws"`
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"top_k"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server     *ServerConfig     `json:"server_config"`
	Corpus     *CorpusConfig     `json:"corpus_config"`
	Generation *GenerationConfig `json:"generation_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: &ServerConfig{
			ApiAddr:         ":7278",
			LogLevel:        "info",
			MaxSentencesReq: 100,
		},
		Corpus: &CorpusConfig{
			Path:         "./data/corpus.txt",
			DatabasePath: "./data/markovgen_corpus.db?_journal_mode=WAL&_busy_timeout=5000",
			MaxLineWords: 4096,
		},
		Generation: &GenerationConfig{
			Seed:            1,
			Count:           10,
			MaxCommaRedraws: 1000,
			Temperature:     1.0,
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Log a warning instead of failing, as the tool can still run with defaults.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.fillDefaults()
	return config, nil
}

// fillDefaults restores any section left out of a config file.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Server == nil {
		c.Server = def.Server
	}
	if c.Corpus == nil {
		c.Corpus = def.Corpus
	}
	if c.Generation == nil {
		c.Generation = def.Generation
	}
}

// tokenizer returns the tokenizer described by the corpus config.
func (c *CorpusConfig) tokenizer() markov.Tokenizer {
	return markov.NewDefaultTokenizer(markov.WithLowercase(c.Lowercase))
}

// builderOptions returns the builder options described by the corpus config.
func (c *CorpusConfig) builderOptions() []markov.BuilderOption {
	return []markov.BuilderOption{
		markov.WithKeepSingleWordLines(c.KeepSingle),
		markov.WithMaxLineTokens(c.MaxLineWords),
	}
}

// generateOptions returns the generator options described by the config.
func (g *GenerationConfig) generateOptions() []markov.GenerateOption {
	return []markov.GenerateOption{
		markov.WithMaxWords(g.MaxWords),
		markov.WithMaxCommaRedraws(g.MaxCommaRedraws),
		markov.WithTemperature(g.Temperature),
		markov.WithTopK(g.TopK),
	}
}
