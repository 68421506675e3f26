// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestValidateCLI runs the validate command against the testdata options files
func TestValidateCLI(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantExit   int
		wantStdout string // substring expected in stdout
		wantStderr string // substring expected in stderr
	}{
		{
			name:       "valid minimal options",
			args:       []string{"-f", "testdata/valid-minimal.yaml"},
			wantExit:   0,
			wantStdout: "is valid",
		},
		{
			name:       "invalid type mismatch",
			args:       []string{"-f", "testdata/invalid-type.yaml"},
			wantExit:   1,
			wantStderr: `parameter "start": expected value of type string but got int`,
		},
		{
			name:       "missing required input",
			args:       []string{"--file", "testdata/missing-input.yaml"},
			wantExit:   1,
			wantStderr: `could not find required parameter "input"`,
		},
		{
			name:       "input file does not exist",
			args:       []string{"-f", "testdata/missing-input-file.yaml"},
			wantExit:   1,
			wantStderr: "validation failed for input: file does not exist",
		},
		{
			name:       "unsupported output extension",
			args:       []string{"-f", "testdata/invalid-output.yaml"},
			wantExit:   1,
			wantStderr: "Validation error",
		},
		{
			name:       "no file flag provided",
			args:       nil,
			wantExit:   2,
			wantStderr: "--file is required",
		},
		{
			name:       "unknown flag",
			args:       []string{"-x"},
			wantExit:   2,
			wantStderr: "flag provided but not defined",
		},
		{
			name:       "non-existent file",
			args:       []string{"-f", "does-not-exist.yaml"},
			wantExit:   1,
			wantStderr: "Options error",
		},
		{
			name:       "unsupported dump format",
			args:       []string{"-f", "testdata/valid-minimal.yaml", "-dump", "-format", "toml"},
			wantExit:   2,
			wantStderr: `Unsupported format: validation failed for format: value must be one of [yaml yml json], got "toml"`,
		},
		{
			name:       "format checked before the file is read",
			args:       []string{"-f", "does-not-exist.yaml", "-format", "xml"},
			wantExit:   2,
			wantStderr: "Unsupported format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			exitCode := run(tt.args, &stdout, &stderr)

			if exitCode != tt.wantExit {
				t.Errorf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", exitCode, tt.wantExit, stdout.String(), stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout does not contain %q\nGot:\n%s", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr does not contain %q\nGot:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

// TestValidateCLI_Version tests the -version flag
func TestValidateCLI_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "dev" {
		t.Errorf("version output = %q, want dev", got)
	}
}

// TestValidateCLI_DumpYAML checks defaults are filled into the dump
func TestValidateCLI_DumpYAML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-f", "testdata/valid-minimal.yaml", "-dump"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	var got map[string]string
	if err := yaml.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("dump is not YAML: %v\n%s", err, stdout.String())
	}
	if got["input"] != "testdata/observations.csv" {
		t.Errorf("input = %q, want testdata/observations.csv", got["input"])
	}
	if got["output"] != "weather.csv" {
		t.Errorf("output = %q, want default weather.csv", got["output"])
	}
	if got["time_column"] != "Local time" {
		t.Errorf("time_column = %q, want default", got["time_column"])
	}
}

func TestValidateCLI_DumpJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-f", "testdata/valid-minimal.yaml", "-dump", "-format=json"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}

	var got map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("dump is not JSON: %v\n%s", err, stdout.String())
	}
	if len(got) != 9 {
		t.Errorf("expected 9 options, got %d: %v", len(got), got)
	}
	if got["start"] != "01/06/2021" {
		t.Errorf("start = %v, want default 01/06/2021", got["start"])
	}
}
