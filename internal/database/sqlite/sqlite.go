// Package sqlite adapts a modernc.org/sqlite database to the database.DB
// interface so the repository SQL, written in Postgres placeholder style,
// runs unchanged on a single-file (or in-memory) store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"skill-matrix/internal/database"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" yields a private
// in-memory store, which is what the repository tests run on.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// A single connection keeps an in-memory store coherent and serializes
	// writers, which sqlite does anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("nil db")
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("nil db")
	}
	res, err := s.db.ExecContext(ctx, rewrite(query), rewriteArgs(args)...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("nil db")
	}
	r, err := s.db.QueryContext(ctx, rewrite(query), rewriteArgs(args)...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows: r}, nil
}

func (s *Store) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if s == nil || s.db == nil {
		return nilRow{}
	}
	return sqlRow{row: s.db.QueryRowContext(ctx, rewrite(query), rewriteArgs(args)...)}
}

// placeholderRe matches the $N markers of the shared repository SQL. The
// repositories keep their placeholders in ascending order, each used once,
// so a plain substitution to ? preserves argument binding.
var placeholderRe = regexp.MustCompile(`\$\d+`)

func rewrite(query string) string {
	return placeholderRe.ReplaceAllString(query, "?")
}

// rewriteArgs stores timestamps as RFC3339 text, the sqlite convention the
// scan shim parses back.
func rewriteArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case time.Time:
			out[i] = v.UTC().Format(time.RFC3339Nano)
		case *time.Time:
			if v == nil {
				out[i] = nil
			} else {
				out[i] = v.UTC().Format(time.RFC3339Nano)
			}
		default:
			out[i] = a
		}
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// scanShim swaps *time.Time destinations for string scratch slots, then
// parses after the driver scan. database/sql will not convert sqlite text
// into time.Time on its own.
type scanShim struct {
	dest    []any
	strs    []sql.NullString
	targets []int
}

func newScanShim(dest []any) *scanShim {
	sh := &scanShim{dest: make([]any, len(dest))}
	copy(sh.dest, dest)
	for i, d := range dest {
		switch d.(type) {
		case *time.Time, **time.Time:
			sh.strs = append(sh.strs, sql.NullString{})
			sh.dest[i] = &sh.strs[len(sh.strs)-1]
			sh.targets = append(sh.targets, i)
		}
	}
	return sh
}

func (sh *scanShim) finish(orig []any) error {
	k := 0
	for _, i := range sh.targets {
		ns := sh.strs[k]
		k++
		switch d := orig[i].(type) {
		case *time.Time:
			if !ns.Valid {
				*d = time.Time{}
				continue
			}
			t, err := parseTime(ns.String)
			if err != nil {
				return err
			}
			*d = t
		case **time.Time:
			if !ns.Valid {
				*d = nil
				continue
			}
			t, err := parseTime(ns.String)
			if err != nil {
				return err
			}
			*d = &t
		}
	}
	return nil
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Close() {
	_ = r.rows.Close()
}

func (r sqlRows) Next() bool {
	return r.rows.Next()
}

func (r sqlRows) Scan(dest ...any) error {
	sh := newScanShim(dest)
	if err := r.rows.Scan(sh.dest...); err != nil {
		return err
	}
	return sh.finish(dest)
}

func (r sqlRows) Err() error {
	return r.rows.Err()
}

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...any) error {
	sh := newScanShim(dest)
	if err := r.row.Scan(sh.dest...); err != nil {
		return err
	}
	return sh.finish(dest)
}

type nilRow struct{}

func (nilRow) Scan(_ ...any) error {
	return fmt.Errorf("nil db")
}

// IsUniqueViolation reports whether err is a sqlite unique-constraint
// failure, the counterpart of the pgx 23505 check in the repositories.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: UNIQUE")
}

// IsForeignKeyViolation is the sqlite counterpart of the pgx 23503 check.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
