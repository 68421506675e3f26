// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package params

import (
	"errors"
	"fmt"
)

var (
	// ErrParse classifies failures to read or parse the options file.
	// Use errors.Is(err, ErrParse) instead of string matching.
	ErrParse = errors.New("options file parse error")

	// ErrMissingRequired classifies a required parameter absent from the options file.
	ErrMissingRequired = errors.New("missing required parameter")

	// ErrTypeMismatch classifies a parameter whose value has the wrong kind.
	ErrTypeMismatch = errors.New("parameter type mismatch")

	// ErrInvalidSpec classifies a malformed contract (duplicate or overlapping names,
	// unsupported default values).
	ErrInvalidSpec = errors.New("invalid parameter spec")
)

// ParseError reports why the options file at Path could not be turned into a mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse options file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// MissingParameterError names a required parameter that was not found.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("could not find required parameter %q", e.Name)
}

func (e *MissingParameterError) Is(target error) bool { return target == ErrMissingRequired }

// TypeMismatchError carries the expected and the observed kind of a parameter.
type TypeMismatchError struct {
	Name     string
	Expected Kind
	Actual   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("parameter %q: expected value of type %s but got %s", e.Name, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// SpecError describes a contract problem for a single parameter name.
type SpecError struct {
	Name    string
	Message string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("parameter %q: %s", e.Name, e.Message)
}

func (e *SpecError) Is(target error) bool { return target == ErrInvalidSpec }
