// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package weather

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// ErrColumnNotFound is returned when a requested column is not in the header.
var ErrColumnNotFound = errors.New("column not found")

// Observation is one input row with its parsed timestamp.
type Observation struct {
	Time   time.Time
	Fields []string
}

// Table holds the rows of one observations file in file order.
type Table struct {
	Columns    []string
	TimeColumn int
	Rows       []Observation
}

// ColumnIndex finds a header column, ignoring case. Exact matches win over
// case-insensitive ones.
func (t *Table) ColumnIndex(name string) (int, error) {
	return columnIndex(t.Columns, name)
}

func columnIndex(columns []string, name string) (int, error) {
	want := strings.TrimSpace(name)
	for i, c := range columns {
		if c == want {
			return i, nil
		}
	}
	fold := cases.Fold()
	want = fold.String(want)
	for i, c := range columns {
		if fold.String(c) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (have %s)", ErrColumnNotFound, name, strings.Join(columns, ", "))
}

// ReadObservationsFile reads the CSV file at path.
func ReadObservationsFile(path, timeColumn string) (*Table, error) {
	// #nosec G304 -- input paths are provided by the operator via options file or CLI
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open observations: %w", err)
	}
	defer func() { _ = f.Close() }()

	t, err := ReadObservations(f, timeColumn)
	if err != nil {
		return nil, fmt.Errorf("read observations %s: %w", path, err)
	}
	return t, nil
}

// ReadObservations parses CSV observations. Lines starting with '#' are
// skipped, the first remaining record is the header and every row's
// timeColumn value must parse with ParseDate.
func ReadObservations(r io.Reader, timeColumn string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, fmt.Errorf("header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	timeIdx, err := columnIndex(header, timeColumn)
	if err != nil {
		return nil, fmt.Errorf("time column: %w", err)
	}

	t := &Table{Columns: header, TimeColumn: timeIdx}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		ts, err := ParseDate(record[timeIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t.Rows = append(t.Rows, Observation{Time: ts, Fields: record})
	}
	return t, nil
}
