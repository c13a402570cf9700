// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot summarizes and charts the reports printed by the matrix
// and summation benchmark harnesses.
//
// Usage:
//
//	benchplot [flags] report.txt...
//
// Each input is parsed with the report format named by -format, or
// with the YAML schema file named by -schema. An input of "-" reads
// standard input. Samples from all inputs are merged into one table.
//
// Lines that cannot be parsed are reported on standard error and
// excluded; so are algorithms without samples at some size. Neither
// stops benchplot.
//
// Benchplot prints the mean of every algorithm at every size, with
// the 95% confidence interval of the mean, followed by the speedup of
// each algorithm over the baseline algorithm (-baseline, by default
// the first one). A speedup that is not significant according to
// Welch's t-test is shown as "~". The -csv, -html and -json flags
// select other output formats.
//
// The -chart flag draws charts into the directory named by -o:
//
//	line   mean time against data size, one line per algorithm
//	band   like line, with a translucent band from min to max
//	facet  one subplot per size of each run's time
//
// The -db flag additionally stores the samples and summaries in a SQL
// database, given as driver:dsn, such as "sqlite3:results.db" or
// "mysql:user:pass@tcp(host)/bench".
//
// Example
//
//	$ benchplot -format 1.2 -chart line,band -log sum.txt
//
// prints the summary table of sum.txt and writes sum-line.png and
// sum-band.png to the current directory.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/zeebo/errs"
	"golang.org/x/net/context"

	"github.com/mmbench/benchplot/reportchart"
	"github.com/mmbench/benchplot/reportdb"
	_ "github.com/mmbench/benchplot/reportdb/sqlite3"
	"github.com/mmbench/benchplot/reportfmt"
	"github.com/mmbench/benchplot/reportstat"
)

func main() {
	log.SetPrefix("benchplot: ")
	log.SetFlags(0)
	if err := benchplot(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// usageError is returned for invalid command lines.
var usageError = errs.Class("usage")

func benchplot(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("benchplot", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: benchplot [flags] report.txt...\n")
		fmt.Fprintf(flags.Output(), "report formats: %s\n", strings.Join(reportfmt.BuiltinNames(), ", "))
		flags.PrintDefaults()
	}
	var (
		flagFormat   = flags.String("format", "sum-long", "parse inputs as report `format` (1.1, 1.2 or a built-in name)")
		flagSchema   = flags.String("schema", "", "parse inputs with the YAML schema in `file`, overriding -format")
		flagBlocks   = flags.Bool("blocks", false, "read samples in \"Global Stats\" delimited blocks")
		flagBaseline = flags.String("baseline", "", "compare algorithms against `algorithm` (default first)")
		flagChart    = flags.String("chart", "", "draw charts of `kinds`: comma-separated line, band, facet, or all")
		flagOut      = flags.String("o", ".", "write charts to `dir`")
		flagType     = flags.String("type", "png", "chart image `format`: png, svg or pdf")
		flagTitle    = flags.String("title", "", "chart `title`")
		flagLog      = flags.Bool("log", false, "draw line and band charts with log-log axes")
		flagValues   = flags.Bool("values", false, "label chart points with their values")
		flagName     = flags.String("name", "", "report `name` for chart files and the database (default input base name)")
		flagCSV      = flags.Bool("csv", false, "print results in CSV form")
		flagHTML     = flags.Bool("html", false, "print results as an HTML table")
		flagJSON     = flags.Bool("json", false, "print results as JSON")
		flagDB       = flags.String("db", "", "also store results in the database `driver:dsn`")
		flagQuiet    = flags.Bool("q", false, "suppress warnings")
		flagVerbose  = flags.Bool("v", false, "trace every parsed line")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		flags.Usage()
		return usageError.New("no input files")
	}
	outputs := 0
	for _, b := range []bool{*flagCSV, *flagHTML, *flagJSON} {
		if b {
			outputs++
		}
	}
	if outputs > 1 {
		return usageError.New("at most one of -csv, -html and -json may be given")
	}
	kinds, err := reportchart.ParseKinds(*flagChart)
	if err != nil {
		return usageError.Wrap(err)
	}

	warn := func(format string, args ...interface{}) {
		if !*flagQuiet {
			fmt.Fprintf(wErr, format, args...)
		}
	}
	var trace func(format string, args ...interface{})
	if *flagVerbose {
		trace = func(format string, args ...interface{}) {
			fmt.Fprintf(wErr, format, args...)
		}
	}

	schema, err := loadSchema(*flagFormat, *flagSchema, *flagBlocks)
	if err != nil {
		return err
	}
	t, counts, err := readFiles(flags.Args(), schema, warn, trace)
	if err != nil {
		return err
	}
	if trace != nil {
		trace("%d lines: %d accepted, %d rejected, %d skipped\n", counts.Lines, counts.Accepted, counts.Rejected, counts.Skipped)
	}

	baseline := *flagBaseline
	labels := t.Labels()
	if baseline == "" && len(labels) > 0 {
		baseline = labels[0]
	} else if baseline != "" && !contains(labels, baseline) {
		return usageError.New("unknown baseline algorithm %q (have %s)", baseline, strings.Join(labels, ", "))
	}

	st := reportstat.Aggregate(t, warn)
	sum := newSummary(t, st, baseline, warn)

	var buf bytes.Buffer
	switch {
	case *flagCSV:
		err = sum.formatCSV(&buf)
	case *flagHTML:
		buf.WriteString(htmlHeader)
		err = sum.formatHTML(&buf)
		buf.WriteString(htmlFooter)
	case *flagJSON:
		err = sum.formatJSON(&buf, counts)
	default:
		err = sum.formatText(&buf)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return err
	}

	name := *flagName
	if name == "" {
		name = reportName(flags.Args())
	}
	if len(kinds) > 0 {
		opts := reportchart.Options{
			Title:  *flagTitle,
			Log:    *flagLog,
			Values: *flagValues,
			Warn:   warn,
		}
		paths, err := reportchart.Render(*flagOut, name, kinds, t, st, *flagType, opts)
		if err != nil {
			return err
		}
		for _, path := range paths {
			if trace != nil {
				trace("wrote %s\n", path)
			}
		}
	}

	if *flagDB != "" {
		if err := store(context.Background(), *flagDB, name, schema.Name, t, st); err != nil {
			return err
		}
		if trace != nil {
			trace("stored %d samples in %s\n", t.Len(), *flagDB)
		}
	}
	return nil
}

// loadSchema returns the schema named by format, or read from the YAML
// file schemaFile if that is non-empty.
func loadSchema(format, schemaFile string, blocks bool) (*reportfmt.Schema, error) {
	var (
		schema *reportfmt.Schema
		err    error
	)
	if schemaFile != "" {
		schema, err = reportfmt.LoadSchemaFile(schemaFile)
	} else {
		schema, err = reportfmt.Builtin(format)
	}
	if err != nil {
		return nil, err
	}
	if blocks && !schema.Blocks {
		schema.Blocks = true
		if schema.BlockMarker == "" {
			schema.BlockMarker = "Global Stats"
		}
		if err := schema.Validate(); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

// readFiles parses every input with schema and merges their samples.
func readFiles(paths []string, schema *reportfmt.Schema, warn, trace func(format string, args ...interface{})) (*reportfmt.Table, reportfmt.Counts, error) {
	t := reportfmt.NewTable(schema.Unit, schema.DisplayLabels()...)
	var onRow func(*reportfmt.Row, []reportfmt.Sample)
	if trace != nil {
		onRow = func(row *reportfmt.Row, samples []reportfmt.Sample) {
			file, line := row.Pos()
			trace("%s:%d: size=%d %s\n", file, line, row.Size, formatSamples(samples))
		}
	}
	var total reportfmt.Counts
	for _, path := range paths {
		counts, err := reportfmt.ParseFileInto(t, path, schema, warn, onRow)
		total.Add(counts)
		if err != nil {
			return nil, total, err
		}
	}
	return t, total, nil
}

func formatSamples(samples []reportfmt.Sample) string {
	parts := make([]string, len(samples))
	for i, s := range samples {
		parts[i] = fmt.Sprintf("%s=%g", s.Label, s.Value)
	}
	return strings.Join(parts, " ")
}

// reportName derives a report name from the inputs: the base name of
// a single input file without its extension, or "benchplot".
func reportName(paths []string) string {
	if len(paths) != 1 || paths[0] == "-" {
		return "benchplot"
	}
	base := filepath.Base(paths[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// store records t and st as a new report in the database named by
// target, which has the form driver:dsn.
func store(ctx context.Context, target, name, format string, t *reportfmt.Table, st *reportstat.Stats) (err error) {
	i := strings.Index(target, ":")
	if i <= 0 {
		return usageError.New("-db must have the form driver:dsn, got %q", target)
	}
	db, err := reportdb.OpenSQL(target[:i], target[i+1:])
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); err == nil {
			err = cerr
		}
	}()
	r, err := db.NewReport(ctx, name, format, t.Unit)
	if err != nil {
		return err
	}
	if err := r.InsertTable(ctx, t); err != nil {
		return err
	}
	return r.InsertStats(ctx, st)
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if x == y {
			return true
		}
	}
	return false
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Algorithm Performance Comparison</title>
<style>
.benchplot { border-collapse: collapse; }
.benchplot th:nth-child(1) { text-align: left; }
.benchplot tbody td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.benchplot th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
.benchplot .nodelta { text-align: center !important; }
.benchplot .missing { color: #999; }
</style>
</head>
<body>
`
var htmlFooter = `</body>
</html>
`
