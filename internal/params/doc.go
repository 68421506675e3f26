// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package params loads YAML options files and validates them against a
// contract of required parameters (name and expected kind) and optional
// parameters (name and default value).
//
// The expected kind of an optional parameter is the kind of its default
// value, see KindOf. Kind checks are exact: a quoted number is a string, an
// integer is never accepted where a float is expected and booleans are not
// integers. Required parameters are checked before defaults, each in
// declaration order, and the first failure aborts the load.
//
// Unquoted YAML timestamps (2021-06-01) are kept as strings.
package params
