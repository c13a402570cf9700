// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest provides scratch report databases for tests.
//
// By default a scratch database is a SQLite file in the test's
// temporary directory. With -mysql, each scratch database is a fresh
// database on that MySQL server, dropped when the test ends.
package dbtest

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/net/context"

	"github.com/mmbench/benchplot/reportdb"
	_ "github.com/mmbench/benchplot/reportdb/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "run database tests against the MySQL server at `dsn` (such as root:@tcp(localhost:3306)/) instead of SQLite")

// maxNameLen is the MySQL limit on database names.
const maxNameLen = 64

// Name returns a name for a scratch database of t: "benchplot_", the
// test name with every character outside [A-Za-z0-9_] replaced by '_',
// and a random suffix, shortened to fit in a MySQL database name.
func Name(t testing.TB) string {
	t.Helper()
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		t.Fatal(err)
	}
	suffix := "_" + hex.EncodeToString(buf)
	base := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '_':
			return r
		}
		return '_'
	}, t.Name())
	name := "benchplot_" + base
	if n := maxNameLen - len(suffix); len(name) > n {
		name = name[:n]
	}
	return name + suffix
}

// DSN returns the driver name and data source name of a new, empty
// scratch database for t. Any MySQL database is dropped when t ends.
func DSN(t testing.TB) (driverName, dataSourceName string) {
	t.Helper()
	name := Name(t)
	if *mysqlDSN == "" {
		return "sqlite3", filepath.Join(t.TempDir(), name+".db")
	}

	db, err := sql.Open("mysql", *mysqlDSN)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		db.Close()
		t.Fatal(err)
	}
	t.Logf("using database %q", name)
	t.Cleanup(func() {
		if _, err := db.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		db.Close()
	})
	return "mysql", *mysqlDSN + name
}

// NewDB opens a new, empty scratch database for t. It is closed when
// t ends.
func NewDB(t testing.TB) *reportdb.DB {
	t.Helper()
	driverName, dataSourceName := DSN(t)
	db, err := reportdb.OpenSQL(driverName, dataSourceName)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Error(err)
		}
	})

	n, err := db.CountReports(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("found %d row(s) in Reports, want 0", n)
	}
	return db
}
