// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/zeebo/assert"

	. "github.com/mmbench/benchplot/reportdb"
	"github.com/mmbench/benchplot/reportdb/dbtest"
	"github.com/mmbench/benchplot/reportfmt"
	"github.com/mmbench/benchplot/reportstat"
)

func testTable() *reportfmt.Table {
	t := reportfmt.NewTable("μs", "Naive", "2-Way")
	for _, s := range []reportfmt.Sample{
		{Size: 1000, Label: "Naive", Value: 12},
		{Size: 1000, Label: "2-Way", Value: 6},
		{Size: 1000, Label: "Naive", Value: 18},
		{Size: 1000, Label: "2-Way", Value: 8},
		{Size: 2000, Label: "Naive", Value: 30},
	} {
		t.Add(s)
	}
	return t
}

func TestNewReport(t *testing.T) {
	ctx := context.Background()

	db := dbtest.NewDB(t)

	defer SetNow(time.Time{})
	SetNow(time.Unix(86400, 0))

	for i, name := range []string{"first", "second"} {
		r, err := db.NewReport(ctx, name, "1.1", "μs")
		assert.NoError(t, err)
		assert.Equal(t, r.ID, int64(i+1))
		assert.Equal(t, r.Name, name)
	}

	n, err := db.CountReports(ctx)
	assert.NoError(t, err)
	assert.Equal(t, n, 2)

	reports, err := db.Reports(ctx)
	assert.NoError(t, err)
	assert.Equal(t, len(reports), 2)
	assert.Equal(t, reports[1].Name, "second")
	assert.Equal(t, reports[1].Format, "1.1")
	assert.Equal(t, reports[1].Unit, "μs")
	assert.That(t, reports[1].Created.Equal(time.Unix(86400, 0)))
}

func TestInsertTable(t *testing.T) {
	ctx := context.Background()

	db := dbtest.NewDB(t)

	r, err := db.NewReport(ctx, "sum", "1.1", "μs")
	assert.NoError(t, err)
	assert.NoError(t, r.InsertTable(ctx, testTable()))

	var n int
	assert.NoError(t, DBSQL(db).QueryRow("SELECT COUNT(*) FROM Samples WHERE ReportID = ?", r.ID).Scan(&n))
	assert.Equal(t, n, 5)

	got, err := db.LoadTable(ctx, r.ID)
	assert.NoError(t, err)
	assert.Equal(t, got.Unit, "μs")
	assert.DeepEqual(t, got.Sizes(), []int{1000, 2000})
	assert.DeepEqual(t, got.Labels(), []string{"Naive", "2-Way"})
	assert.DeepEqual(t, got.Values(1000, "Naive"), []float64{12, 18})
	assert.DeepEqual(t, got.Values(1000, "2-Way"), []float64{6, 8})
	assert.DeepEqual(t, got.Values(2000, "Naive"), []float64{30})

	// A second batch continues the sample numbering.
	more := reportfmt.NewTable("μs")
	more.Add(reportfmt.Sample{Size: 2000, Label: "2-Way", Value: 14})
	assert.NoError(t, r.InsertTable(ctx, more))
	got, err = db.LoadTable(ctx, r.ID)
	assert.NoError(t, err)
	assert.DeepEqual(t, got.Values(2000, "2-Way"), []float64{14})
}

func TestLoadTableMissing(t *testing.T) {
	db := dbtest.NewDB(t)

	_, err := db.LoadTable(context.Background(), 42)
	assert.Error(t, err)
	assert.That(t, Error.Has(err))
}

func TestInsertStats(t *testing.T) {
	ctx := context.Background()

	db := dbtest.NewDB(t)

	r, err := db.NewReport(ctx, "sum", "1.1", "μs")
	assert.NoError(t, err)
	st := reportstat.Aggregate(testTable(), nil)
	assert.NoError(t, r.InsertStats(ctx, st))

	sums, err := db.LoadSummaries(ctx, r.ID)
	assert.NoError(t, err)
	assert.Equal(t, len(sums), 2)
	assert.Equal(t, len(sums[1000]), 2)
	assert.Equal(t, len(sums[2000]), 1)

	naive := sums[1000]["Naive"]
	assert.Equal(t, naive.N, 2)
	assert.Equal(t, naive.Mean, 15.0)
	assert.Equal(t, naive.Min, 12.0)
	assert.Equal(t, naive.Max, 18.0)
	assert.Equal(t, sums[2000]["Naive"].Mean, 30.0)
}

func TestDeleteReport(t *testing.T) {
	ctx := context.Background()

	db := dbtest.NewDB(t)

	keep, err := db.NewReport(ctx, "keep", "1.1", "μs")
	assert.NoError(t, err)
	drop, err := db.NewReport(ctx, "drop", "1.1", "μs")
	assert.NoError(t, err)
	for _, r := range []*Report{keep, drop} {
		tab := testTable()
		assert.NoError(t, r.InsertTable(ctx, tab))
		assert.NoError(t, r.InsertStats(ctx, reportstat.Aggregate(tab, nil)))
	}

	assert.NoError(t, db.DeleteReport(ctx, drop.ID))

	n, err := db.CountReports(ctx)
	assert.NoError(t, err)
	assert.Equal(t, n, 1)

	var samples int
	assert.NoError(t, DBSQL(db).QueryRow("SELECT COUNT(*) FROM Samples").Scan(&samples))
	assert.Equal(t, samples, 5)

	sums, err := db.LoadSummaries(ctx, drop.ID)
	assert.NoError(t, err)
	assert.Equal(t, len(sums), 0)
}
