// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// weather selects a date range from a CSV file of observations and writes
// one column of it as a series.
//
// Usage:
//
//	weather options.yaml
//	weather -config options.yaml [-watch]
//	weather [-start 01/01/2019] [-end 16/10/2021] [-column T] input.csv output.csv
//
// Exit codes:
//   - 0: success
//   - 1: options or pipeline error
//   - 2: usage error
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	xglog "github.com/ManuGH/scicomp/internal/log"
	"github.com/ManuGH/scicomp/internal/metrics"
	"github.com/ManuGH/scicomp/internal/params"
	"github.com/ManuGH/scicomp/internal/validate"
	"github.com/ManuGH/scicomp/internal/weather"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

// flagModeOnly lists the flags that describe a run without an options file.
var flagModeOnly = map[string]bool{
	"start": true, "s": true, "end": true, "e": true,
	"column": true, "time-column": true, "title": true,
}

// Flag-mode date defaults.
const (
	defaultFlagStart = "01/01/2019"
	defaultFlagEnd   = "16/10/2021"
)

var errUsage = errors.New("usage")

type cliOptions struct {
	configPath      string
	watch           bool
	logLevel        string
	metricsTextfile string
	showVersion     bool
	flagOpts        weather.Options
	args            []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	fs := flag.NewFlagSet("weather", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cli := cliOptions{flagOpts: weather.DefaultOptions()}
	fs.StringVar(&cli.configPath, "config", "", "path to YAML options file")
	fs.BoolVar(&cli.watch, "watch", false, "re-run whenever the options file changes (requires an options file)")
	fs.StringVar(&cli.logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	fs.StringVar(&cli.metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after each run")
	fs.BoolVar(&cli.showVersion, "version", false, "print version and exit")

	fs.StringVar(&cli.flagOpts.Start, "start", defaultFlagStart, "start date in DD/MM/YYYY format")
	fs.StringVar(&cli.flagOpts.Start, "s", defaultFlagStart, "start date (shorthand)")
	fs.StringVar(&cli.flagOpts.End, "end", defaultFlagEnd, "end date in DD/MM/YYYY format")
	fs.StringVar(&cli.flagOpts.End, "e", defaultFlagEnd, "end date (shorthand)")
	fs.StringVar(&cli.flagOpts.DataColumn, "column", weather.DefaultDataColumn, "data column to extract")
	fs.StringVar(&cli.flagOpts.TimeColumn, "time-column", weather.DefaultTimeColumn, "column holding the observation time")
	fs.StringVar(&cli.flagOpts.Title, "title", weather.DefaultTitle, "series title")

	if err := fs.Parse(args); err != nil {
		return cli, errUsage
	}
	cli.args = fs.Args()
	if cli.showVersion {
		return cli, nil
	}

	if cli.configPath == "" && len(cli.args) == 1 {
		cli.configPath = cli.args[0]
		cli.args = nil
	}

	if _, err := validate.ParseLogLevel(cli.logLevel); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli, errUsage
	}

	var conflicting []string
	fs.Visit(func(f *flag.Flag) {
		if flagModeOnly[f.Name] {
			conflicting = append(conflicting, "-"+f.Name)
		}
	})

	switch {
	case cli.configPath != "" && len(conflicting) > 0:
		fmt.Fprintf(stderr, "Error: %s only apply without an options file; set them in %s instead\n",
			strings.Join(conflicting, ", "), cli.configPath)
		return cli, errUsage
	case cli.configPath != "" && len(cli.args) > 0:
		fmt.Fprintln(stderr, "Error: give either an options file or input and output paths, not both")
		return cli, errUsage
	case cli.configPath == "" && len(cli.args) != 2:
		fmt.Fprintln(stderr, "Error: expected an options file or input and output paths")
		return cli, errUsage
	case cli.watch && cli.configPath == "":
		fmt.Fprintln(stderr, "Error: -watch requires an options file")
		return cli, errUsage
	}

	if len(cli.args) == 2 {
		cli.flagOpts.Input = cli.args[0]
		cli.flagOpts.Output = cli.args[1]
	}
	return cli, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cli, err := parseFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  weather [-watch] options.yaml")
		fmt.Fprintln(stderr, "  weather [-start DD/MM/YYYY] [-end DD/MM/YYYY] [-column T] input.csv output.csv")
		return 2
	}

	if cli.showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	xglog.Reset()
	xglog.Configure(xglog.Config{Level: cli.logLevel, Output: stderr, Service: "weather"})

	if cli.configPath == "" {
		logger := xglog.WithComponent("cli")
		if err := runOnce(ctx, cli, cli.flagOpts, stdout); err != nil {
			logger.Error().Err(err).Str(xglog.FieldEvent, "weather.run_failed").Msg("run failed")
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	logger := xglog.Derive(func(c *zerolog.Context) {
		*c = c.Str(xglog.FieldComponent, "cli").Str(xglog.FieldPath, cli.configPath)
	})
	loader := params.NewLoader(cli.configPath, weather.Contract())
	if !cli.watch {
		opts, err := optionsFrom(loader.Load())
		if err == nil {
			err = runOnce(ctx, cli, opts, stdout)
		}
		if err != nil {
			logger.Error().Err(err).Str(xglog.FieldEvent, "weather.run_failed").Msg("run failed")
			fmt.Fprintf(stderr, "Error in %s: %v\n", cli.configPath, err)
			return 1
		}
		return 0
	}

	if err := watch(ctx, cli, loader, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "Error in %s: %v\n", cli.configPath, err)
		return 1
	}
	return 0
}

func optionsFrom(b *params.Bundle, err error) (weather.Options, error) {
	if err != nil {
		return weather.Options{}, err
	}
	return weather.OptionsFromBundle(b)
}

func runOnce(ctx context.Context, cli cliOptions, opts weather.Options, stdout io.Writer) error {
	ctx = xglog.ContextWithRunID(ctx, xglog.NewRunID())
	res, err := weather.Run(ctx, opts)
	if cli.metricsTextfile != "" {
		if merr := metrics.WriteTextfile(cli.metricsTextfile); merr != nil {
			err = errors.Join(err, merr)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d of %d observations to %s\n", res.Points, res.RowsRead, res.Output)
	return nil
}

// watch runs the pipeline for the initial options and again after every
// successful reload, until ctx is cancelled. Failed runs are logged and
// do not stop the watch.
func watch(ctx context.Context, cli cliOptions, loader *params.Loader, stdout io.Writer, logger zerolog.Logger) error {
	holder, err := params.NewHolder(loader)
	if err != nil {
		return err
	}

	updates := make(chan *params.Bundle, 1)
	holder.RegisterListener(updates)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return holder.Watch(gctx)
	})
	g.Go(func() error {
		bundle := holder.Get()
		for {
			opts, err := weather.OptionsFromBundle(bundle)
			if err == nil {
				err = runOnce(gctx, cli, opts, stdout)
			}
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().
					Err(err).
					Str(xglog.FieldEvent, "weather.run_failed").
					Msg("run failed, waiting for options change")
			}
			select {
			case <-gctx.Done():
				return nil
			case bundle = <-updates:
			}
		}
	})
	return g.Wait()
}
