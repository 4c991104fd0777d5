package corpus

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// SetupSchema initializes the table used by Store. It is idempotent and safe
// to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaSentences = `
CREATE TABLE IF NOT EXISTS corpus_sentences (
    sentence_id INTEGER PRIMARY KEY,
    batch_id TEXT NOT NULL,
    source TEXT NOT NULL,
    sentence TEXT NOT NULL
);
`
		indexSource = `CREATE INDEX IF NOT EXISTS idx_corpus_sentences_source ON corpus_sentences (source);`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaSentences); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}
	if _, err = tx.Exec(indexSource); err != nil {
		return fmt.Errorf("could not create corpus index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Store reads and writes corpus sentences in a SQLite database.
type Store struct {
	db              *sql.DB
	stmtSources     *sql.Stmt
	stmtSentences   *sql.Stmt
	stmtRemove      *sql.Stmt
	stmtInsertBatch *sql.Stmt
	logger          *slog.Logger
}

// NewStore prepares the statements used by the store. SetupSchema must have
// been called on db first.
func NewStore(db *sql.DB) (*Store, error) {
	stmtSources, err := db.Prepare(`SELECT source, COUNT(*) FROM corpus_sentences GROUP BY source;`)
	if err != nil {
		return nil, err
	}

	stmtSentences, err := db.Prepare(`SELECT sentence FROM corpus_sentences WHERE source = ? ORDER BY sentence_id;`)
	if err != nil {
		_ = stmtSources.Close()
		return nil, err
	}

	stmtRemove, err := db.Prepare(`DELETE FROM corpus_sentences WHERE source = ?;`)
	if err != nil {
		_ = stmtSources.Close()
		_ = stmtSentences.Close()
		return nil, err
	}

	stmtInsertBatch, err := db.Prepare(`INSERT INTO corpus_sentences (batch_id, source, sentence) VALUES (?, ?, ?);`)
	if err != nil {
		_ = stmtSources.Close()
		_ = stmtSentences.Close()
		_ = stmtRemove.Close()
		return nil, err
	}

	return &Store{
		db:              db,
		stmtSources:     stmtSources,
		stmtSentences:   stmtSentences,
		stmtRemove:      stmtRemove,
		stmtInsertBatch: stmtInsertBatch,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtSources.Close()
	_ = s.stmtSentences.Close()
	_ = s.stmtRemove.Close()
	_ = s.stmtInsertBatch.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Add stores lines under source in a single transaction and returns the batch
// ID assigned to them along with how many were stored. Blank lines are skipped
// and surrounding whitespace is trimmed.
func (s *Store) Add(ctx context.Context, source string, lines []string) (string, int, error) {
	if source == "" {
		return "", 0, fmt.Errorf("corpus source name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, fmt.Errorf("could not begin transaction for ingest: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	batchID := uuid.NewString()
	stmt := tx.StmtContext(ctx, s.stmtInsertBatch)

	var added int
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err = stmt.ExecContext(ctx, batchID, source, line); err != nil {
			return "", 0, fmt.Errorf("failed to insert sentence %d of batch %s: %w", added+1, batchID, err)
		}
		added++
	}

	if err = tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("could not commit ingest batch %s: %w", batchID, err)
	}

	s.logger.InfoContext(ctx, "Corpus batch stored",
		slog.String("source", source),
		slog.String("batch_id", batchID),
		slog.Int("sentences", added),
	)
	return batchID, added, nil
}

// Lines returns every sentence stored under source in insertion order.
func (s *Store) Lines(ctx context.Context, source string) ([]string, error) {
	rows, err := s.stmtSentences.QueryContext(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("could not query sentences for %q: %w", source, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var lines []string
	for rows.Next() {
		var line string
		if err = rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Reader returns the sentences of source joined one per line, ready to be
// passed to markov.Builder.Train.
func (s *Store) Reader(ctx context.Context, source string) (io.Reader, error) {
	lines, err := s.Lines(ctx, source)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(strings.Join(lines, "\n")), nil
}

// Sources returns every source name with its sentence count.
func (s *Store) Sources(ctx context.Context) (map[string]int, error) {
	rows, err := s.stmtSources.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	sources := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err = rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		sources[name] = count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sources, nil
}

// Remove deletes every sentence stored under source and returns how many
// were removed.
func (s *Store) Remove(ctx context.Context, source string) (int64, error) {
	res, err := s.stmtRemove.ExecContext(ctx, source)
	if err != nil {
		return 0, fmt.Errorf("could not remove source %q: %w", source, err)
	}
	removed, _ := res.RowsAffected()

	s.logger.InfoContext(ctx, "Corpus source removed",
		slog.String("source", source),
		slog.Int64("sentences_removed", removed),
	)
	return removed, nil
}
