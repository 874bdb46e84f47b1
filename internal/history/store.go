package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/pageaudit/internal/model"
)

// FileName is the database file created inside the history directory.
const FileName = "pageaudit.db"

// ErrNotFound is returned by Open when the database does not exist and
// CreateIfNotExists is false.
var ErrNotFound = errors.New("history database not found")

// Store provides SQLite-based storage for audit history.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// path is the path to the SQLite database file.
	path string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dir.
func Open(dir string, opts Options) (*Store, error) {
	path := filepath.Join(dir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file.
	dsn := path + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = path + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:   db,
		path: path,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	-- One row per audited page per run
	CREATE TABLE IF NOT EXISTS audits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		url TEXT NOT NULL,
		title TEXT,
		overall_score INTEGER NOT NULL,
		status TEXT NOT NULL,
		results_json TEXT NOT NULL,
		fingerprint TEXT,
		audited_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audits_url ON audits(url);
	CREATE INDEX IF NOT EXISTS idx_audits_run ON audits(run_id);
	CREATE INDEX IF NOT EXISTS idx_audits_time ON audits(audited_at);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Record is one stored page audit.
type Record struct {
	ID           int64               `json:"id"`
	RunID        string              `json:"run_id"`
	URL          string              `json:"url"`
	Title        string              `json:"title"`
	OverallScore int                 `json:"overall_score"`
	Status       model.Status        `json:"status"`
	Results      []model.AuditResult `json:"results"`
	Fingerprint  string              `json:"fingerprint,omitempty"`
	AuditedAt    time.Time           `json:"audited_at"`
}

// Run is the set of audits saved together by one CLI invocation.
type Run struct {
	// ID groups the rows of this run. NewRunID derives one from At.
	ID string

	// At is the audit time stored on every row.
	At time.Time

	// Audits are the pages to store.
	Audits []model.PageAudit

	// Markup maps page urls to the audited HTML for fingerprinting.
	// Pages without markup get an empty fingerprint.
	Markup map[string]string
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// NewRunID returns a run id derived from the run time.
func NewRunID(at time.Time) string {
	return at.UTC().Format("20060102T150405.000000000")
}

// Fingerprint returns the hex SHA3-256 digest of markup.
func Fingerprint(markup string) string {
	sum := sha3.Sum256([]byte(markup))
	return hex.EncodeToString(sum[:])
}

// Save stores every audit of run in one transaction and returns the number
// of rows written.
func (s *Store) Save(ctx context.Context, run Run) (int, error) {
	if len(run.Audits) == 0 {
		return 0, nil
	}
	if run.ID == "" {
		run.ID = NewRunID(run.At)
	}
	at := run.At.UTC().Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // no-op after commit
	}()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO audits (run_id, url, title, overall_score, status, results_json, fingerprint, audited_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, pa := range run.Audits {
		resultsJSON, err := json.Marshal(pa.Results)
		if err != nil {
			return 0, fmt.Errorf("failed to serialize results for %s: %w", pa.URL, err)
		}

		var fingerprint string
		if markup, ok := run.Markup[pa.URL]; ok {
			fingerprint = Fingerprint(markup)
		}

		_, err = stmt.ExecContext(ctx,
			run.ID,
			pa.URL,
			pa.Title,
			pa.OverallScore,
			string(pa.Status),
			string(resultsJSON),
			fingerprint,
			at,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to save audit for %s: %w", pa.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit audits: %w", err)
	}
	return len(run.Audits), nil
}

// ListURLs returns every audited url in lexical order.
func (s *Store) ListURLs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT url FROM audits ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("failed to list urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("failed to scan url: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// History returns the stored audits of pageURL, newest first.
func (s *Store) History(ctx context.Context, pageURL string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, run_id, url, title, overall_score, status, results_json, fingerprint, audited_at
	FROM audits
	WHERE url = ?
	ORDER BY audited_at DESC, id DESC
	`, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// Latest returns the newest stored audit of pageURL, or nil when the url
// was never audited.
func (s *Store) Latest(ctx context.Context, pageURL string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, run_id, url, title, overall_score, status, results_json, fingerprint, audited_at
	FROM audits
	WHERE url = ?
	ORDER BY audited_at DESC, id DESC
	LIMIT 1
	`, pageURL)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec         Record
		title       sql.NullString
		status      string
		resultsJSON string
		fingerprint sql.NullString
		auditedAt   string
	)

	err := sc.Scan(
		&rec.ID,
		&rec.RunID,
		&rec.URL,
		&title,
		&rec.OverallScore,
		&status,
		&resultsJSON,
		&fingerprint,
		&auditedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit: %w", err)
	}

	rec.Title = title.String
	rec.Status = model.Status(status)
	rec.Fingerprint = fingerprint.String
	rec.AuditedAt = parseTimestamp(auditedAt)

	if err := json.Unmarshal([]byte(resultsJSON), &rec.Results); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	return &rec, nil
}

// timestampFormats contains the timestamp formats accepted when reading rows.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp returns the zero time when no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
