package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/andrewwu13/employment-bot/internal/job"
)

// ErrNotFound is returned by Get for an unknown document id.
var ErrNotFound = errors.New("store: record not found")

// FieldUpdate pairs a document id with the partial fields to apply.
type FieldUpdate struct {
	ID     string
	Fields map[string]any
}

// Jobs is the document-collection contract the rest of the system depends on.
type Jobs interface {
	Get(ctx context.Context, id string) (job.Record, error)
	Query(ctx context.Context, field, value string, limit int) ([]job.Record, error)
	Add(ctx context.Context, fields map[string]any) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	// BatchUpdate applies every update in one transaction; either all of them
	// land or none do.
	BatchUpdate(ctx context.Context, updates []FieldUpdate) error

	ListPending(ctx context.Context, limit int) ([]job.Record, error)
	// ClaimBatch transitions all given pending records to posting in a single
	// transaction. A record that is no longer pending fails the whole claim.
	ClaimBatch(ctx context.Context, ids []string) error
	MarkPosted(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

const (
	prodTable = "job_postings"
	devTable  = "job_postings_dev"
)

// columns is the fixed schema; Query and Update reject anything else so field
// names can never reach SQL unchecked.
var columns = map[string]bool{
	"url": true, "title": true, "company": true, "location": true,
	"description": true, "qualifications": true, "skills": true,
	"posted_date": true, "status": true, "created_at": true,
	"posted_at": true, "email_subject": true, "email_date": true,
}

// JobStore is the SQLite implementation of Jobs. Dev selects an isolated
// table so local runs never pollute the production collection.
type JobStore struct {
	db    *DB
	table string
}

var _ Jobs = (*JobStore)(nil)

func NewJobStore(db *DB, dev bool) *JobStore {
	table := prodTable
	if dev {
		table = devTable
	}
	return &JobStore{db: db, table: table}
}

// Migrate brings the schema up to the current version. Both tables are
// created together; the dev flag only picks which one this store writes.
func (s *JobStore) Migrate() error {
	var version int
	if err := s.db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&version); err != nil {
		return fmt.Errorf("store migrate: %w", err)
	}
	if version >= 1 {
		return nil
	}

	for _, table := range []string{prodTable, devTable} {
		_, err := s.db.Pool.Exec(fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id TEXT PRIMARY KEY,
  url TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  qualifications TEXT NOT NULL DEFAULT '',
  skills TEXT NOT NULL DEFAULT '[]',
  posted_date TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT NOT NULL DEFAULT '',
  posted_at TEXT NOT NULL DEFAULT '',
  email_subject TEXT NOT NULL DEFAULT '',
  email_date TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_%s_status ON %s(status);
`, table, table, table))
		if err != nil {
			return fmt.Errorf("store migrate %s: %w", table, err)
		}
	}

	if _, err := s.db.Pool.Exec(`PRAGMA user_version = 1;`); err != nil {
		return fmt.Errorf("store migrate: %w", err)
	}
	return nil
}

func (s *JobStore) Get(ctx context.Context, id string) (job.Record, error) {
	row := s.db.Pool.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = ?;`, selectList, s.table), id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return job.Record{}, ErrNotFound
	}
	return rec, err
}

func (s *JobStore) Query(ctx context.Context, field, value string, limit int) ([]job.Record, error) {
	if !columns[field] {
		return nil, fmt.Errorf("store: unknown query field %q", field)
	}
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Pool.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? LIMIT ?;`, selectList, s.table, field),
		value, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []job.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *JobStore) Add(ctx context.Context, fields map[string]any) (string, error) {
	id := newID()

	names := []string{"id"}
	placeholders := []string{"?"}
	args := []any{id}
	for col := range columns {
		if v, ok := fields[col]; ok {
			names = append(names, col)
			placeholders = append(placeholders, "?")
			args = append(args, v)
		}
	}

	_, err := s.db.Pool.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s);`,
			s.table, strings.Join(names, ", "), strings.Join(placeholders, ", ")),
		args...)
	if err != nil {
		return "", fmt.Errorf("store add: %w", err)
	}
	return id, nil
}

func (s *JobStore) Update(ctx context.Context, id string, fields map[string]any) error {
	set, args, err := setClause(fields)
	if err != nil {
		return err
	}
	args = append(args, id)

	res, err := s.db.Pool.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?;`, s.table, set), args...)
	if err != nil {
		return fmt.Errorf("store update %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *JobStore) BatchUpdate(ctx context.Context, updates []FieldUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range updates {
		set, args, err := setClause(u.Fields)
		if err != nil {
			return err
		}
		args = append(args, u.ID)
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?;`, s.table, set), args...); err != nil {
			return fmt.Errorf("store batch update %s: %w", u.ID, err)
		}
	}
	return tx.Commit()
}

func (s *JobStore) ListPending(ctx context.Context, limit int) ([]job.Record, error) {
	return s.Query(ctx, "status", string(job.StatusPending), limit)
}

func (s *JobStore) ClaimBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.Pool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range ids {
		res, err := tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE %s SET status = ? WHERE id = ? AND status = ?;`, s.table),
			string(job.StatusPosting), id, string(job.StatusPending))
		if err != nil {
			return fmt.Errorf("store claim %s: %w", id, err)
		}
		// A concurrent run already claimed this record; the whole batch rolls
		// back so no half-claimed state is visible.
		if n, _ := res.RowsAffected(); n != 1 {
			return fmt.Errorf("store claim %s: record not pending", id)
		}
	}
	return tx.Commit()
}

func (s *JobStore) MarkPosted(ctx context.Context, id string) error {
	res, err := s.db.Pool.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET status = ?, posted_at = ? WHERE id = ? AND status = ?;`, s.table),
		string(job.StatusPosted), time.Now().UTC().Format(time.RFC3339),
		id, string(job.StatusPosting))
	if err != nil {
		return fmt.Errorf("store mark posted %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store mark posted %s: record not in posting state", id)
	}
	return nil
}

func (s *JobStore) MarkFailed(ctx context.Context, id string) error {
	res, err := s.db.Pool.ExecContext(ctx,
		fmt.Sprintf(`UPDATE %s SET status = ? WHERE id = ? AND status = ?;`, s.table),
		string(job.StatusPending), id, string(job.StatusPosting))
	if err != nil {
		return fmt.Errorf("store mark failed %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store mark failed %s: record not in posting state", id)
	}
	return nil
}

const selectList = `id, url, title, company, location, description, qualifications,
skills, posted_date, status, created_at, posted_at, email_subject, email_date`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(r rowScanner) (job.Record, error) {
	var id string
	f := make([]string, 13)
	dest := make([]any, 0, 14)
	dest = append(dest, &id)
	for i := range f {
		dest = append(dest, &f[i])
	}
	if err := r.Scan(dest...); err != nil {
		return job.Record{}, err
	}

	return job.FromFields(id, map[string]string{
		"url":            f[0],
		"title":          f[1],
		"company":        f[2],
		"location":       f[3],
		"description":    f[4],
		"qualifications": f[5],
		"skills":         f[6],
		"posted_date":    f[7],
		"status":         f[8],
		"created_at":     f[9],
		"posted_at":      f[10],
		"email_subject":  f[11],
		"email_date":     f[12],
	}), nil
}

func setClause(fields map[string]any) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, errors.New("store: no fields to update")
	}
	var parts []string
	var args []any
	for col := range columns {
		if v, ok := fields[col]; ok {
			parts = append(parts, col+" = ?")
			args = append(args, v)
		}
	}
	if len(parts) != len(fields) {
		return "", nil, errors.New("store: update contains unknown fields")
	}
	return strings.Join(parts, ", "), args, nil
}

func newID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
