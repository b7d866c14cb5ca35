package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dmarceau/receiptscan/constants"
	"github.com/dmarceau/receiptscan/internal/common"
)

// Entry is one processed file in the batch history journal.
type Entry struct {
	ID           string
	ContentHash  string
	OriginalPath string
	RenamedPath  string
	Vendor       string
	Date         string // YYYY-MM-DD, empty when not found
	Amount       string // $XX.XX, empty when not found
	Identifier   string
	Status       constants.FileStatus
	ErrorMessage string
	ProcessedAt  time.Time
}

// Store journals batch outcomes in a local SQLite database so repeated
// runs can skip files whose content was already processed.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS processed_files (
	id            TEXT PRIMARY KEY,
	content_hash  TEXT NOT NULL,
	original_path TEXT NOT NULL,
	renamed_path  TEXT,
	vendor        TEXT,
	txn_date      TEXT,
	txn_amount    TEXT,
	identifier    TEXT,
	status        TEXT NOT NULL,
	error_message TEXT,
	processed_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_processed_files_hash ON processed_files(content_hash);
`

// Open creates or opens the journal database at path and ensures the
// schema exists. Pass ":memory:" for an ephemeral journal.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, common.WrapError(err, "open history db")
	}
	// modernc sqlite is not safe for concurrent writers on one connection pool
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, common.WrapError(err, "init history schema")
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HashFile returns the hex SHA-256 of the file's content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Seen reports whether a file with this content hash was already
// processed successfully (RENAMED or PLANNED entries count; failures
// do not, so a fixed file is retried).
func (s *Store) Seen(ctx context.Context, contentHash string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM processed_files WHERE content_hash = ? AND status IN (?, ?)`,
		contentHash, string(constants.FileStatusRenamed), string(constants.FileStatusPlanned),
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query history: %w", err)
	}
	return n > 0, nil
}

// Record appends an entry to the journal. A zero ID or ProcessedAt is
// filled in; the stored entry is returned.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ContentHash == "" {
		return Entry{}, fmt.Errorf("%w: content hash is required", common.ErrInvalidInput)
	}
	if e.Status == "" {
		return Entry{}, fmt.Errorf("%w: status is required", common.ErrInvalidInput)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.ProcessedAt.IsZero() {
		e.ProcessedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processed_files
		 (id, content_hash, original_path, renamed_path, vendor, txn_date, txn_amount, identifier, status, error_message, processed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ContentHash, e.OriginalPath, e.RenamedPath,
		e.Vendor, e.Date, e.Amount, e.Identifier,
		string(e.Status), e.ErrorMessage, e.ProcessedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record history entry: %w", err)
	}
	s.logger.Debug("history entry recorded", "id", e.ID, "status", e.Status, "path", e.OriginalPath)
	return e, nil
}

// Recent returns entries newest first. A limit <= 0 returns the whole
// journal.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT id, content_hash, original_path, renamed_path, vendor, txn_date, txn_amount, identifier, status, error_message, processed_at
	 FROM processed_files ORDER BY processed_at DESC, id`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var e Entry
		var status string
		if err := rows.Scan(&e.ID, &e.ContentHash, &e.OriginalPath, &e.RenamedPath,
			&e.Vendor, &e.Date, &e.Amount, &e.Identifier,
			&status, &e.ErrorMessage, &e.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Status = constants.FileStatus(status)
		out = append(out, e)
	}
	return out, rows.Err()
}
