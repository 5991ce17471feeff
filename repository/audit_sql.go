package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	domainAudit "github.com/9rajputshivam/daytime-window-check/domains/audit"
)

const defaultRecentLimit = 50

// AuditRepository stores evaluation records in SQLite or Postgres over
// database/sql. The schema is created on Init.
type AuditRepository struct {
	db       *sql.DB
	postgres bool
}

// OpenAuditDB opens the audit database for the configured driver. For sqlite
// dsn is a file path; for postgres a DSN.
func OpenAuditDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "postgres":
		return sql.Open("postgres", dsn)
	case "sqlite", "":
		if err := ensureDBDir(dsn); err != nil {
			return nil, err
		}
		return sql.Open("sqlite3", fmt.Sprintf("file:%s?_journal_mode=WAL", dsn))
	default:
		return nil, fmt.Errorf("unsupported audit database driver: %s", driver)
	}
}

// ensureDBDir creates the directory holding a SQLite database file so a fresh
// deployment can open its default path.
func ensureDBDir(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create audit database directory %s: %w", dir, err)
	}
	return nil
}

func NewAuditRepository(db *sql.DB, driver string) *AuditRepository {
	return &AuditRepository{db: db, postgres: driver == "postgres"}
}

func (r *AuditRepository) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS evaluation_audit (
			id TEXT PRIMARY KEY,
			country TEXT NOT NULL,
			outcome TEXT NOT NULL,
			current_hour INTEGER,
			dedup_key TEXT,
			evaluated_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("failed to create audit schema: %w", err)
	}
	return nil
}

func (r *AuditRepository) Record(ctx context.Context, record domainAudit.EvaluationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	var hour sql.NullInt64
	if record.CurrentHour != nil {
		hour = sql.NullInt64{Int64: int64(*record.CurrentHour), Valid: true}
	}

	query := `INSERT INTO evaluation_audit (id, country, outcome, current_hour, dedup_key, evaluated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if r.postgres {
		query = `INSERT INTO evaluation_audit (id, country, outcome, current_hour, dedup_key, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	}

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.Country, string(record.Outcome), hour, record.DedupKey, record.EvaluatedAt.UTC())
	return err
}

func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]domainAudit.EvaluationRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	query := `SELECT id, country, outcome, current_hour, dedup_key, evaluated_at
		FROM evaluation_audit ORDER BY evaluated_at DESC LIMIT ?`
	if r.postgres {
		query = `SELECT id, country, outcome, current_hour, dedup_key, evaluated_at
		FROM evaluation_audit ORDER BY evaluated_at DESC LIMIT $1`
	}

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domainAudit.EvaluationRecord
	for rows.Next() {
		var (
			rec     domainAudit.EvaluationRecord
			outcome string
			hour    sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.Country, &outcome, &hour, &rec.DedupKey, &rec.EvaluatedAt); err != nil {
			return nil, err
		}
		rec.Outcome = domainAudit.Outcome(outcome)
		if hour.Valid {
			h := int(hour.Int64)
			rec.CurrentHour = &h
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
