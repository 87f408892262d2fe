package oplog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ghduque/indexlab/internal/index"
	"github.com/ghduque/indexlab/internal/record"
)

// Operation codes accepted in the first CSV column.
const (
	OpInsert = "+"
	OpDelete = "-"
	OpSearch = "?"
)

// Result is the timed outcome of one executed operation.
type Result struct {
	Op      string
	Key     int32
	Status  string // ok, not_found, error
	Latency time.Duration
}

// Stats aggregates the latencies of every executed operation. Skipped counts
// malformed or unknown rows that never reached the engine.
type Stats struct {
	Ops     int
	Errors  int
	Skipped int
	Total   time.Duration
	Min     time.Duration
	Max     time.Duration
}

// Mean returns the average latency per executed operation.
func (s Stats) Mean() time.Duration {
	if s.Ops == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Ops)
}

func (s *Stats) observe(d time.Duration) {
	if s.Ops == 0 || d < s.Min {
		s.Min = d
	}
	if d > s.Max {
		s.Max = d
	}
	s.Total += d
	s.Ops++
}

// Runner feeds an operation log into an engine, timing each operation with
// the monotonic clock.
type Runner struct {
	Schema record.Schema
	Engine index.Engine
}

// Run reads a CSV operation log from in and executes every row. The first
// row is treated as a header and skipped when its first column is "OP"
// (case-insensitive). Malformed rows are logged and skipped; engine errors
// are recorded but never abort the run.
func (r *Runner) Run(in io.Reader) (Stats, []Result, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var stats Stats
	var results []Result

	rowNum := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("oplog: unreadable row, skipping", "row", rowNum, "err", err)
			stats.Skipped++
			rowNum++
			continue
		}
		rowNum++

		if rowNum == 1 && len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "OP") {
			continue
		}
		if len(row) == 0 {
			continue
		}

		res, ok := r.exec(row)
		if !ok {
			stats.Skipped++
			continue
		}
		stats.observe(res.Latency)
		if res.Status == "error" {
			stats.Errors++
		}
		results = append(results, res)
	}

	return stats, results, nil
}

// exec parses and runs one row. The bool is false when the row never reached
// the engine.
func (r *Runner) exec(row []string) (Result, bool) {
	op := strings.TrimSpace(row[0])

	switch op {
	case OpInsert:
		if len(row) < 1+r.Schema.NumFields {
			slog.Warn("oplog: insert row too short",
				"want", r.Schema.NumFields, "got", len(row)-1)
			return Result{}, false
		}
		rec := make(record.Record, r.Schema.NumFields)
		for i := 0; i < r.Schema.NumFields; i++ {
			v, err := parseField(row[1+i])
			if err != nil {
				slog.Warn("oplog: bad integer field, skipping row",
					"field", row[1+i], "err", err)
				return Result{}, false
			}
			rec[i] = v
		}

		start := time.Now()
		err := r.Engine.Insert(rec)
		lat := time.Since(start)

		status := "ok"
		if err != nil {
			status = "error"
			slog.Warn("oplog: insert rejected", "key", rec.Key(), "err", err)
		}
		return Result{Op: op, Key: rec.Key(), Status: status, Latency: lat}, true

	case OpDelete, OpSearch:
		if len(row) < 2 {
			slog.Warn("oplog: missing key column", "op", op)
			return Result{}, false
		}
		key, err := parseField(row[1])
		if err != nil {
			slog.Warn("oplog: bad key, skipping row", "field", row[1], "err", err)
			return Result{}, false
		}

		start := time.Now()
		var found bool
		if op == OpDelete {
			found = r.Engine.Remove(key)
		} else {
			_, found = r.Engine.Search(key)
		}
		lat := time.Since(start)

		status := "ok"
		if !found {
			status = "not_found"
		}
		return Result{Op: op, Key: key, Status: status, Latency: lat}, true

	default:
		slog.Warn("oplog: unknown op code, skipping", "op", op)
		return Result{}, false
	}
}

func parseField(s string) (int32, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// WriteResults renders per-operation results as CSV: op, key, status,
// latency in nanoseconds.
func WriteResults(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Op", "Key", "Status", "LatencyNs"}); err != nil {
		return err
	}
	for _, res := range results {
		err := cw.Write([]string{
			res.Op,
			strconv.FormatInt(int64(res.Key), 10),
			res.Status,
			strconv.FormatInt(res.Latency.Nanoseconds(), 10),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Summary renders the aggregate statistics as a short human-readable block.
func (s Stats) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "operations: %d (errors: %d, skipped rows: %d)\n", s.Ops, s.Errors, s.Skipped)
	fmt.Fprintf(&b, "total: %v  mean: %v  min: %v  max: %v", s.Total, s.Mean(), s.Min, s.Max)
	return b.String()
}
