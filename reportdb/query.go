// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportdb

import (
	"database/sql"
	"time"

	"golang.org/x/net/context"

	"github.com/mmbench/benchplot/reportfmt"
	"github.com/mmbench/benchplot/reportstat"
)

// Reports returns every stored report, oldest first.
func (db *DB) Reports(ctx context.Context) ([]*Report, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT ReportID, Name, Format, Unit, Created FROM Reports ORDER BY ReportID")
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer rows.Close()
	var out []*Report
	for rows.Next() {
		r := &Report{db: db}
		var created int64
		if err := rows.Scan(&r.ID, &r.Name, &r.Format, &r.Unit, &created); err != nil {
			return nil, Error.Wrap(err)
		}
		r.Created = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, Error.Wrap(rows.Err())
}

// LoadTable reads back the samples of the report with the given ID.
// Labels are ordered by their first stored sample.
func (db *DB) LoadTable(ctx context.Context, id int64) (*reportfmt.Table, error) {
	var unit string
	err := db.sql.QueryRowContext(ctx, "SELECT Unit FROM Reports WHERE ReportID = ?", id).Scan(&unit)
	if err == sql.ErrNoRows {
		return nil, Error.New("no report with ID %d", id)
	} else if err != nil {
		return nil, Error.Wrap(err)
	}

	rows, err := db.sql.QueryContext(ctx, "SELECT Size, Algorithm, Value FROM Samples WHERE ReportID = ? ORDER BY SampleID", id)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer rows.Close()
	t := reportfmt.NewTable(unit)
	for rows.Next() {
		var s reportfmt.Sample
		if err := rows.Scan(&s.Size, &s.Label, &s.Value); err != nil {
			return nil, Error.Wrap(err)
		}
		t.Add(s)
	}
	if err := rows.Err(); err != nil {
		return nil, Error.Wrap(err)
	}
	return t, nil
}

// LoadSummaries reads back the summaries of the report with the given
// ID, keyed by size and then algorithm label.
func (db *DB) LoadSummaries(ctx context.Context, id int64) (map[int]map[string]reportstat.Summary, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Size, Algorithm, N, Mean, Minimum, Maximum, Median, StdDev FROM Summaries WHERE ReportID = ?", id)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer rows.Close()
	out := make(map[int]map[string]reportstat.Summary)
	for rows.Next() {
		var (
			size  int
			label string
			s     reportstat.Summary
		)
		if err := rows.Scan(&size, &label, &s.N, &s.Mean, &s.Min, &s.Max, &s.Median, &s.StdDev); err != nil {
			return nil, Error.Wrap(err)
		}
		if out[size] == nil {
			out[size] = make(map[string]reportstat.Summary)
		}
		out[size][label] = s
	}
	return out, Error.Wrap(rows.Err())
}

// CountReports returns the number of stored reports.
func (db *DB) CountReports(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Reports").Scan(&n)
	return n, Error.Wrap(err)
}

// DeleteReport removes a report with its samples and summaries.
func (db *DB) DeleteReport(ctx context.Context, id int64) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			"DELETE FROM Summaries WHERE ReportID = ?",
			"DELETE FROM Samples WHERE ReportID = ?",
			"DELETE FROM Reports WHERE ReportID = ?",
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return Error.Wrap(err)
			}
		}
		return nil
	})
}
