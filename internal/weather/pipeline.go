// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package weather

import (
	"context"
	"fmt"

	xglog "github.com/ManuGH/scicomp/internal/log"
	"github.com/ManuGH/scicomp/internal/metrics"
)

// Result summarises one pipeline run.
type Result struct {
	Output   string
	RowsRead int
	Selected int
	Points   int
}

// Run reads opts.Input, selects the configured date range and writes the
// data column to opts.Output.
func Run(ctx context.Context, opts Options) (res Result, err error) {
	logger := xglog.WithComponentFromContext(ctx, "weather")
	defer func() {
		metrics.RecordWeatherRun(res.RowsRead, res.Selected, err == nil)
	}()

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := opts.Validate(); err != nil {
		return res, fmt.Errorf("invalid options: %w", err)
	}
	start, end, err := opts.Range()
	if err != nil {
		return res, err
	}

	table, err := ReadObservationsFile(opts.Input, opts.TimeColumn)
	if err != nil {
		return res, err
	}
	res.RowsRead = len(table.Rows)

	selected := Select(table.Rows, start, end)
	res.Selected = len(selected)

	points, err := table.Series(selected, opts.DataColumn)
	if err != nil {
		return res, err
	}
	res.Points = len(points)

	if err := ctx.Err(); err != nil {
		return res, err
	}

	labels := Labels{
		Title:  opts.Title,
		XLabel: opts.XLabel,
		YLabel: opts.YLabel,
		Column: opts.DataColumn,
	}
	if err := WriteSeries(ctx, opts.Output, labels, points); err != nil {
		return res, err
	}
	res.Output = opts.Output

	logger.Info().
		Str(xglog.FieldEvent, "weather.run_complete").
		Str(xglog.FieldPath, opts.Input).
		Str(xglog.FieldOutputPath, opts.Output).
		Str(xglog.FieldColumn, opts.DataColumn).
		Str(xglog.FieldStart, opts.Start).
		Str(xglog.FieldEnd, opts.End).
		Int(xglog.FieldRows, res.RowsRead).
		Int(xglog.FieldSelected, res.Selected).
		Msg("wrote observation series")
	return res, nil
}
