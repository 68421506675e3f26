// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT

// validate is a CLI tool to validate weather options files.
//
// Usage:
//
//	validate -f options.yaml
//	validate --file options.yaml --dump [--format=yaml|json]
//
// Exit codes:
//   - 0: Options file is valid
//   - 1: Options file is invalid (parse, contract or value error)
//   - 2: Usage error (missing required flag)
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	xglog "github.com/ManuGH/scicomp/internal/log"
	"github.com/ManuGH/scicomp/internal/params"
	"github.com/ManuGH/scicomp/internal/validate"
	"github.com/ManuGH/scicomp/internal/weather"
	"gopkg.in/yaml.v3"
)

var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var file string
	var format string
	var dump bool
	var showVersion bool

	fs.StringVar(&file, "file", "", "path to YAML options file")
	fs.StringVar(&file, "f", "", "path to YAML options file (shorthand)")
	fs.BoolVar(&dump, "dump", false, "print the effective options (file + defaults)")
	fs.StringVar(&format, "format", "yaml", "dump format: yaml or json")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, Version)
		return 0
	}

	file = strings.TrimSpace(file)
	if file == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  validate -f options.yaml")
		fmt.Fprintln(stderr, "  validate --file options.yaml --dump [--format=yaml|json]")
		return 2
	}

	format = strings.ToLower(strings.TrimSpace(format))
	fv := validate.New()
	fv.OneOf("format", format, []string{"yaml", "yml", "json"})
	if err := fv.Err(); err != nil {
		fmt.Fprintf(stderr, "Unsupported format: %v\n", err)
		return 2
	}

	// Notices go to stderr only when asked for
	xglog.Reset()
	xglog.Configure(xglog.Config{Level: "warn", Output: stderr, Service: "validate"})

	bundle, err := params.Load(file, weather.Contract())
	if err != nil {
		fmt.Fprintf(stderr, "Options error in %s:\n", file)
		fmt.Fprintf(stderr, "  %v\n", err)
		return 1
	}

	opts, err := weather.OptionsFromBundle(bundle)
	if err == nil {
		err = opts.Validate()
	}
	if err != nil {
		fmt.Fprintf(stderr, "Validation error in %s:\n", file)
		fmt.Fprintf(stderr, "  %v\n", err)
		return 1
	}

	if !dump {
		fmt.Fprintf(stdout, "✓ %s is valid\n", file)
		return 0
	}

	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(opts); err != nil {
			fmt.Fprintf(stderr, "Failed to encode YAML: %v\n", err)
			return 1
		}
		_ = enc.Close()
		return 0
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bundle.Map()); err != nil {
			fmt.Fprintf(stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
	}
	return 0
}
