// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package weather

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePoints() []Point {
	return []Point{
		{Time: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC), Value: 9.8},
		{Time: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC), Value: 17.5},
	}
}

func sampleLabels() Labels {
	return Labels{Title: "Observations in Tapiola", XLabel: DefaultXLabel, YLabel: DefaultYLabel, Column: "T"}
}

func TestWriteSeries_CSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, WriteSeries(context.Background(), path, sampleLabels(), samplePoints()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# title: Observations in Tapiola\n")

	table, err := ReadObservationsFile(path, DefaultTimeColumn)
	require.NoError(t, err)
	points, err := table.Series(table.Rows, "T")
	require.NoError(t, err)
	assert.Equal(t, samplePoints(), points)
}

func TestWriteSeries_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.json")
	require.NoError(t, WriteSeries(context.Background(), path, sampleLabels(), samplePoints()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Title  string  `json:"title"`
		Column string  `json:"column"`
		Points []Point `json:"points"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Observations in Tapiola", doc.Title)
	assert.Equal(t, "T", doc.Column)
	assert.Equal(t, samplePoints(), doc.Points)
}

func TestWriteSeries_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weather.png")

	err := WriteSeries(context.Background(), path, sampleLabels(), samplePoints())
	assert.True(t, errors.Is(err, ErrUnsupportedOutput))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteSeries_ReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "series.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	require.NoError(t, WriteSeries(context.Background(), path, sampleLabels(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "Local time,T\n")
}
