// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package weather

import (
	"fmt"
	"time"

	"github.com/ManuGH/scicomp/internal/params"
	"github.com/ManuGH/scicomp/internal/validate"
)

// Default option values.
const (
	DefaultXLabel     = "Date of observation"
	DefaultYLabel     = "Temperature in Celsius"
	DefaultTitle      = "Weather Observations"
	DefaultStart      = "01/06/2021"
	DefaultEnd        = "01/10/2021"
	DefaultOutput     = "weather.csv"
	DefaultDataColumn = "T"
	DefaultTimeColumn = "Local time"
)

// OutputExtensions lists the output formats WriteSeries understands.
var OutputExtensions = []string{".csv", ".json"}

// Contract returns the options file contract of the weather tool.
func Contract() *params.Spec {
	return params.NewSpec().
		Require("input", params.KindString).
		Default("xlabel", DefaultXLabel).
		Default("ylabel", DefaultYLabel).
		Default("title", DefaultTitle).
		Default("start", DefaultStart).
		Default("end", DefaultEnd).
		Default("output", DefaultOutput).
		Default("data_column", DefaultDataColumn).
		Default("time_column", DefaultTimeColumn)
}

// Options parameterises one pipeline run.
type Options struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	Start      string `yaml:"start"`
	End        string `yaml:"end"`
	XLabel     string `yaml:"xlabel"`
	YLabel     string `yaml:"ylabel"`
	Title      string `yaml:"title"`
	DataColumn string `yaml:"data_column"`
	TimeColumn string `yaml:"time_column"`
}

// DefaultOptions returns options with every default applied and no input.
func DefaultOptions() Options {
	return Options{
		Output:     DefaultOutput,
		Start:      DefaultStart,
		End:        DefaultEnd,
		XLabel:     DefaultXLabel,
		YLabel:     DefaultYLabel,
		Title:      DefaultTitle,
		DataColumn: DefaultDataColumn,
		TimeColumn: DefaultTimeColumn,
	}
}

// OptionsFromBundle binds a bundle loaded with Contract.
func OptionsFromBundle(b *params.Bundle) (Options, error) {
	var opts Options
	if err := b.Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("bind weather options: %w", err)
	}
	return opts, nil
}

// LoadOptions loads and binds the options file at path.
func LoadOptions(path string) (Options, error) {
	b, err := params.Load(path, Contract())
	if err != nil {
		return Options{}, err
	}
	return OptionsFromBundle(b)
}

// Range parses the start and end dates.
func (o Options) Range() (time.Time, time.Time, error) {
	start, err := ParseDate(o.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start: %w", err)
	}
	end, err := ParseDate(o.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end: %w", err)
	}
	return start, end, nil
}

// Validate checks option values that the contract cannot express. The input
// file must exist.
func (o Options) Validate() error {
	v := validate.New()
	v.File("input", o.Input)
	v.NotEmpty("data_column", o.DataColumn)
	v.NotEmpty("time_column", o.TimeColumn)
	v.Extension("output", o.Output, OutputExtensions)
	v.ParentDirectory("output", o.Output)

	var start, end time.Time
	var startErr, endErr error
	v.Custom("start", o.Start, func(any) error {
		start, startErr = ParseDate(o.Start)
		return startErr
	})
	v.Custom("end", o.End, func(any) error {
		end, endErr = ParseDate(o.End)
		return endErr
	})
	if startErr == nil && endErr == nil && end.Before(start) {
		v.AddError("end", fmt.Sprintf("end %s is before start %s", o.End, o.Start), o.End)
	}
	return v.Err()
}
