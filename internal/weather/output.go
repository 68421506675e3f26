// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package weather

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	xglog "github.com/ManuGH/scicomp/internal/log"
	"github.com/google/renameio/v2"
)

// ErrUnsupportedOutput is returned for output paths with an unknown extension.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// Labels describe a series for whoever renders it.
type Labels struct {
	Title  string `json:"title"`
	XLabel string `json:"xlabel"`
	YLabel string `json:"ylabel"`
	Column string `json:"column"`
}

type seriesDocument struct {
	Labels
	Points []Point `json:"points"`
}

// WriteSeries writes points to path, choosing the format from the extension
// (.csv or .json). The file is replaced atomically.
func WriteSeries(ctx context.Context, path string, labels Labels, points []Point) error {
	logger := xglog.FromContext(ctx)

	var encode func(io.Writer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		encode = func(w io.Writer) error { return writeCSV(w, labels, points) }
	case ".json":
		encode = func(w io.Writer) error { return writeJSON(w, labels, points) }
	default:
		return fmt.Errorf("%w: %q (use .csv or .json)", ErrUnsupportedOutput, filepath.Ext(path))
	}

	// renameio handles: temp file creation, fsync, atomic rename, cleanup on error
	pendingFile, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending output file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending output file")
		}
	}()

	if err := encode(pendingFile); err != nil {
		return fmt.Errorf("write series data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace output file: %w", err)
	}
	return nil
}

// writeCSV emits labels as '#' comments so ReadObservations can read the
// output back.
func writeCSV(w io.Writer, labels Labels, points []Point) error {
	for _, line := range []string{
		"title: " + labels.Title,
		"xlabel: " + labels.XLabel,
		"ylabel: " + labels.YLabel,
	} {
		if _, err := fmt.Fprintf(w, "# %s\n", line); err != nil {
			return err
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{DefaultTimeColumn, labels.Column}); err != nil {
		return err
	}
	for _, p := range points {
		record := []string{
			p.Time.Format(time.RFC3339),
			strconv.FormatFloat(p.Value, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, labels Labels, points []Point) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(seriesDocument{Labels: labels, Points: points})
}
