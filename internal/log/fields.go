// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID = "run_id"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Parameter fields
	FieldParam    = "param"
	FieldValue    = "value"
	FieldExpected = "expected"
	FieldActual   = "actual"

	// Observation fields
	FieldColumn   = "column"
	FieldRows     = "rows"
	FieldSelected = "selected"
	FieldStart    = "start"
	FieldEnd      = "end"

	// Path fields
	FieldPath       = "path"
	FieldOutputPath = "output_path"
)
