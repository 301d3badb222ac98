package clickhouse

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Conn is the subset of the ClickHouse driver the repository uses.
	Conn interface {
		PrepareBatch(ctx context.Context, query string) (Batch, error)
		Query(ctx context.Context, query string, args ...any) (Rows, error)
		Close() error
	}

	// Batch accumulates rows for a single INSERT.
	Batch interface {
		Append(v ...any) error
		Send() error
	}

	// Rows iterates a query result set.
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Close() error
		Err() error
	}

	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
