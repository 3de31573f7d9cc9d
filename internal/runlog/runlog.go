// Package runlog keeps a small ledger of past scrape runs so operators can
// see when data last arrived and how much.
package runlog

import (
	"context"
	"database/sql"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

type Run struct {
	Time    time.Time
	Records int
}

// Note records that a scrape run finished with the given number of
// extracted observations.
func (s Store) Note(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(
		ctx,
		"INSERT INTO scrape_run (time, records) VALUES (?, ?)",
		run.Time.Unix(),
		run.Records,
	)
	return err
}

// Recent returns up to `limit` runs, newest first.
func (s Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT time, records FROM scrape_run ORDER BY time DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var unix int64
		var run Run
		if err := rows.Scan(&unix, &run.Records); err != nil {
			return nil, err
		}
		run.Time = time.Unix(unix, 0)
		out = append(out, run)
	}
	return out, rows.Err()
}
