// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package weather selects a date range of observations from a CSV file and
// writes one data column of it as a time series.
//
// Input files carry a header row and may contain '#' comment lines. The
// time column uses day-first dates ("01/06/2021 13:00"), see ParseDate.
package weather
