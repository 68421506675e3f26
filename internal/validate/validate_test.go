// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidator_NotEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"value", "data.csv", false},
		{"empty", "", true},
		{"whitespace", "  \t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.NotEmpty("input", tt.value)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_OneOf(t *testing.T) {
	v := New()
	v.OneOf("format", "csv", []string{"csv", "json"})
	if !v.IsValid() {
		t.Fatalf("unexpected error: %v", v.Err())
	}

	v.OneOf("format", "png", []string{"csv", "json"})
	if v.IsValid() {
		t.Fatal("expected error for png")
	}
	if !strings.Contains(v.Err().Error(), `got "png"`) {
		t.Errorf("unexpected message: %v", v.Err())
	}
}

func TestValidator_Extension(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"csv", "out/weather.csv", false},
		{"upper case", "WEATHER.JSON", false},
		{"png", "weather.png", true},
		{"no extension", "weather", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Extension("output", tt.path, []string{".csv", ".json"})

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(file, []byte("a,b\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"existing file", file, ""},
		{"empty path", "", "cannot be empty"},
		{"missing", filepath.Join(dir, "missing.csv"), "does not exist"},
		{"directory", dir, "not a regular file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.File("input", tt.path)

			if tt.wantErr == "" {
				if !v.IsValid() {
					t.Errorf("unexpected error: %v", v.Err())
				}
				return
			}
			if v.IsValid() {
				t.Fatal("expected error, got none")
			}
			if !strings.Contains(v.Err().Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", v.Err(), tt.wantErr)
			}
		})
	}
}

func TestValidator_ParentDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing dir", filepath.Join(dir, "out.csv"), false},
		{"relative in cwd", "out.csv", false},
		{"empty", "", true},
		{"missing dir", filepath.Join(dir, "missing", "out.csv"), true},
		{"parent is file", filepath.Join(blocker, "out.csv"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.ParentDirectory("output", tt.path)

			if tt.wantErr && v.IsValid() {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && !v.IsValid() {
				t.Errorf("unexpected error: %v", v.Err())
			}
		})
	}
}

func TestValidator_Custom(t *testing.T) {
	v := New()
	v.Custom("start", "32/13/2021", func(interface{}) error {
		return errors.New("not a date")
	})
	if v.IsValid() {
		t.Fatal("expected error")
	}
	if got := v.Errors()[0]; got.Field != "start" || got.Value != "32/13/2021" {
		t.Errorf("unexpected error entry: %+v", got)
	}
}

func TestValidator_ErrAggregates(t *testing.T) {
	v := New()
	if v.Err() != nil {
		t.Fatal("expected nil error for valid validator")
	}

	v.NotEmpty("input", "")
	v.OneOf("format", "png", []string{"csv"})

	err := v.Err()
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(verr.Errors()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected joined message, got %q", err.Error())
	}

	// later additions do not leak into an already returned error
	v.NotEmpty("title", "")
	if len(verr.Errors()) != 2 {
		t.Errorf("returned error changed after AddError")
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, s := range []string{"trace", "debug", "info", "warn", "error"} {
		if _, err := ParseLogLevel(s); err != nil {
			t.Errorf("ParseLogLevel(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("expected error for verbose")
	}
}
