// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportdb stores parsed benchmark reports and their
// aggregate statistics in a SQL database.
package reportdb

import (
	"bytes"
	"database/sql"
	"strings"
	"text/template"
	"time"

	"github.com/zeebo/errs"
	"golang.org/x/net/context"

	"github.com/mmbench/benchplot/reportfmt"
	"github.com/mmbench/benchplot/reportstat"
)

// Error is the error class for database failures.
var Error = errs.Class("reportdb")

// DB is a database of benchmark reports. It's safe for concurrent use
// by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertReport  *sql.Stmt
	insertSample  *sql.Stmt
	insertSummary *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, Error.Wrap(err)
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Reports (
	ReportID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Name VARCHAR(255),
	Format VARCHAR(255),
	Unit VARCHAR(32),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Samples (
	ReportID BIGINT UNSIGNED,
	SampleID BIGINT UNSIGNED,
	Size BIGINT,
	Algorithm VARCHAR(255),
	Value DOUBLE,
	PRIMARY KEY (ReportID, SampleID),
{{if not .sqlite3}}
	Index (Size, Algorithm(100)),
{{end}}
	FOREIGN KEY (ReportID) REFERENCES Reports(ReportID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Summaries (
	ReportID BIGINT UNSIGNED,
	Size BIGINT,
	Algorithm VARCHAR(255),
	N INT,
	Mean DOUBLE,
	Minimum DOUBLE,
	Maximum DOUBLE,
	Median DOUBLE,
	StdDev DOUBLE,
	PRIMARY KEY (ReportID, Size, Algorithm),
	FOREIGN KEY (ReportID) REFERENCES Reports(ReportID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS SamplesSizeAlgorithm ON Samples(Size, Algorithm);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return Error.Wrap(err)
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return Error.New("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertReport, err = db.sql.Prepare("INSERT INTO Reports(Name, Format, Unit, Created) VALUES (?, ?, ?, ?)")
	if err != nil {
		return Error.Wrap(err)
	}
	db.insertSample, err = db.sql.Prepare("INSERT INTO Samples(ReportID, SampleID, Size, Algorithm, Value) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return Error.Wrap(err)
	}
	db.insertSummary, err = db.sql.Prepare("INSERT INTO Summaries(ReportID, Size, Algorithm, N, Mean, Minimum, Maximum, Median, StdDev) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return Error.Wrap(err)
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// SetNow overrides the clock used to timestamp new reports. A zero
// time restores the real clock. It is intended for tests.
func SetNow(t time.Time) {
	if t.IsZero() {
		now = time.Now
		return
	}
	now = func() time.Time { return t }
}

// A Report is one stored report.
type Report struct {
	ID      int64
	Name    string
	Format  string
	Unit    string
	Created time.Time

	db *DB
	// sampleid is the index of the next sample to insert.
	sampleid int64
}

// NewReport records a new report called name, parsed with the schema
// called format, whose timings are in unit.
func (db *DB) NewReport(ctx context.Context, name, format, unit string) (*Report, error) {
	created := now().Truncate(time.Second)
	res, err := db.insertReport.ExecContext(ctx, name, format, unit, created.Unix())
	if err != nil {
		return nil, Error.Wrap(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return &Report{ID: id, Name: name, Format: format, Unit: unit, Created: created, db: db}, nil
}

// inTx runs f in a transaction, committing if f succeeds.
func (db *DB) inTx(ctx context.Context, f func(tx *sql.Tx) error) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else if cerr := tx.Commit(); cerr != nil {
			err = Error.Wrap(cerr)
		}
	}()
	return f(tx)
}

// InsertTable stores every sample of t, in size, algorithm and
// appearance order.
func (r *Report) InsertTable(ctx context.Context, t *reportfmt.Table) error {
	next := r.sampleid
	err := r.db.inTx(ctx, func(tx *sql.Tx) error {
		stmt := tx.StmtContext(ctx, r.db.insertSample)
		for _, size := range t.Sizes() {
			for _, label := range t.Labels() {
				for _, v := range t.Values(size, label) {
					if _, err := stmt.ExecContext(ctx, r.ID, next, size, label, v); err != nil {
						return Error.Wrap(err)
					}
					next++
				}
			}
		}
		return nil
	})
	if err == nil {
		r.sampleid = next
	}
	return err
}

// InsertStats stores the summaries of st.
func (r *Report) InsertStats(ctx context.Context, st *reportstat.Stats) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		stmt := tx.StmtContext(ctx, r.db.insertSummary)
		for _, size := range st.Sizes() {
			for _, label := range st.Labels() {
				s, ok := st.Get(size, label)
				if !ok {
					continue
				}
				if _, err := stmt.ExecContext(ctx, r.ID, size, label, s.N, s.Mean, s.Min, s.Max, s.Median, s.StdDev); err != nil {
					return Error.Wrap(err)
				}
			}
		}
		return nil
	})
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertReport, db.insertSample, db.insertSummary} {
		if err := stmt.Close(); err != nil {
			return Error.Wrap(err)
		}
	}
	return Error.Wrap(db.sql.Close())
}
