// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package weather

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Point is one value of a series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Select returns the rows whose time lies in [start, end].
func Select(rows []Observation, start, end time.Time) []Observation {
	out := make([]Observation, 0, len(rows))
	for _, r := range rows {
		if r.Time.Before(start) || r.Time.After(end) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Series extracts column from rows. Rows where the value is empty, not a
// number, NaN or infinite are skipped.
func (t *Table) Series(rows []Observation, column string) ([]Point, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	points := make([]Point, 0, len(rows))
	for _, r := range rows {
		if idx >= len(r.Fields) {
			continue
		}
		raw := strings.TrimSpace(r.Fields[idx])
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		points = append(points, Point{Time: r.Time, Value: v})
	}
	return points, nil
}
