package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/macro-dynamic/TracesCleaner/internal/model"
)

// dbFileName is the SQLite file name inside the database directory.
const dbFileName = "history.db"

// defaultListLimit caps list queries when the caller passes a non-positive
// limit.
const defaultListLimit = 20

// HistoryDB provides SQLite-based storage for scan reports and aggregated
// character statistics.
//
// Design decision: We use a single database file for all sources rather
// than one file per scanned input. This keeps cross-source queries (top
// characters, recent scans) trivial and simplifies backup/restore.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids lock
	// contention entirely for this CLI's write-mostly workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Scan reports store complete scan results as JSON plus the totals
	-- needed for listing without deserializing the report.
	CREATE TABLE IF NOT EXISTS scan_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		input_hash TEXT NOT NULL,
		scanned_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		total_hidden INTEGER NOT NULL DEFAULT 0,
		total_homoglyphs INTEGER NOT NULL DEFAULT 0,
		total_whitespace INTEGER NOT NULL DEFAULT 0,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_source ON scan_reports(source);
	CREATE INDEX IF NOT EXISTS idx_reports_hash ON scan_reports(input_hash);
	CREATE INDEX IF NOT EXISTS idx_reports_scanned_at ON scan_reports(scanned_at);

	-- Character statistics accumulate detection counts across all scans.
	CREATE TABLE IF NOT EXISTS character_stats (
		code_label TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		total_count INTEGER NOT NULL DEFAULT 0,
		last_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveScanReport saves a complete scan report as JSON and folds its
// detection entries into the character statistics table. inputHash is the
// hex fingerprint of the scanned text. It returns the new row's ID.
func (hdb *HistoryDB) SaveScanReport(ctx context.Context, report *model.ScanReport, inputHash string) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	var totalHidden, totalHomoglyphs, totalWhitespace int
	if report.Detection != nil {
		totalHidden = report.Detection.Total
	}
	if report.Homoglyphs != nil {
		totalHomoglyphs = report.Homoglyphs.Total
	}
	if report.Whitespace != nil {
		totalWhitespace = report.Whitespace.Total
	}

	query := `
	INSERT INTO scan_reports (source, input_hash, total_hidden, total_homoglyphs, total_whitespace, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := hdb.db.ExecContext(ctx, query,
		report.Source,
		inputHash,
		totalHidden,
		totalHomoglyphs,
		totalWhitespace,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save scan report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read scan report id: %w", err)
	}

	if report.Detection != nil {
		if err := hdb.recordCharacterStats(ctx, report.Detection); err != nil {
			return 0, err
		}
	}

	return id, nil
}

// recordCharacterStats upserts one row per distinct detected character.
func (hdb *HistoryDB) recordCharacterStats(ctx context.Context, detection *model.DetectionResult) error {
	query := `
	INSERT INTO character_stats (code_label, name, category, total_count)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(code_label) DO UPDATE SET
		total_count = total_count + excluded.total_count,
		name = excluded.name,
		category = excluded.category,
		last_seen = CURRENT_TIMESTAMP
	`

	for _, entry := range detection.Entries {
		if _, err := hdb.db.ExecContext(ctx, query,
			entry.CodeLabel,
			entry.Name,
			string(entry.Category),
			entry.Count,
		); err != nil {
			return fmt.Errorf("failed to record character stats for %s: %w", entry.CodeLabel, err)
		}
	}

	return nil
}

// ScanRecord contains summary information about a stored scan.
// This is used for displaying scan history without loading the full report.
type ScanRecord struct {
	// ID is the unique identifier of the scan report in the database.
	ID int64

	// Source names the scanned input (file path or "stdin").
	Source string

	// InputHash is the hex fingerprint of the scanned text.
	InputHash string

	// ScannedAt is when the scan was performed.
	ScannedAt time.Time

	// TotalHidden is the number of hidden characters found.
	TotalHidden int

	// TotalHomoglyphs is the number of look-alike characters found.
	TotalHomoglyphs int

	// TotalWhitespace is the number of whitespace anomalies found.
	TotalWhitespace int
}

// RecentScans returns the most recent scans, newest first. A non-positive
// limit selects a small default.
func (hdb *HistoryDB) RecentScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
	SELECT id, source, input_hash, scanned_at, total_hidden, total_homoglyphs, total_whitespace
	FROM scan_reports
	ORDER BY scanned_at DESC, id DESC
	LIMIT ?
	`

	return hdb.queryScanRecords(ctx, query, limit)
}

// ScansBySource returns the most recent scans for one source, newest first.
func (hdb *HistoryDB) ScansBySource(ctx context.Context, source string, limit int) ([]ScanRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
	SELECT id, source, input_hash, scanned_at, total_hidden, total_homoglyphs, total_whitespace
	FROM scan_reports
	WHERE source = ?
	ORDER BY scanned_at DESC, id DESC
	LIMIT ?
	`

	return hdb.queryScanRecords(ctx, query, source, limit)
}

// queryScanRecords runs a scan_reports list query and scans the rows.
func (hdb *HistoryDB) queryScanRecords(ctx context.Context, query string, args ...any) ([]ScanRecord, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan records: %w", err)
	}
	defer rows.Close()

	var results []ScanRecord
	for rows.Next() {
		var record ScanRecord
		var scannedAt string

		if err := rows.Scan(
			&record.ID,
			&record.Source,
			&record.InputHash,
			&scannedAt,
			&record.TotalHidden,
			&record.TotalHomoglyphs,
			&record.TotalWhitespace,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		record.ScannedAt = parseTimestamp(scannedAt)
		results = append(results, record)
	}

	return results, rows.Err()
}

// CharacterStat is one row of the accumulated per-character statistics.
type CharacterStat struct {
	// CodeLabel is the U+XXXX label of the character.
	CodeLabel string

	// Name is the character's registry name.
	Name string

	// Category is the character's registry category.
	Category string

	// TotalCount is the number of occurrences across all saved scans.
	TotalCount int64

	// LastSeen is when the character last appeared in a scan.
	LastSeen time.Time
}

// TopCharacters returns the most frequently detected characters across all
// saved scans, highest count first.
func (hdb *HistoryDB) TopCharacters(ctx context.Context, limit int) ([]CharacterStat, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
	SELECT code_label, name, category, total_count, last_seen
	FROM character_stats
	ORDER BY total_count DESC, code_label ASC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query character stats: %w", err)
	}
	defer rows.Close()

	var results []CharacterStat
	for rows.Next() {
		var stat CharacterStat
		var lastSeen string

		if err := rows.Scan(&stat.CodeLabel, &stat.Name, &stat.Category, &stat.TotalCount, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan character stat: %w", err)
		}

		stat.LastSeen = parseTimestamp(lastSeen)
		results = append(results, stat)
	}

	return results, rows.Err()
}

// GetScanReport retrieves a scan report by its database ID and rehydrates
// it from JSON. It returns nil without error when the ID does not exist.
func (hdb *HistoryDB) GetScanReport(ctx context.Context, id int64) (*model.ScanReport, error) {
	query := `
	SELECT report_json FROM scan_reports
	WHERE id = ?
	`

	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.ScanReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}

	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
