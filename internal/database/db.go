package database

import "context"

// DB is the storage-neutral surface the repositories run on. Both the pgx
// pool and the sqlite adapter implement it; queries are written with $N
// placeholders and single-statement atomicity is the only consistency
// guarantee callers may assume.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
