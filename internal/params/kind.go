// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package params

import (
	"fmt"
	"reflect"
)

// Kind is the value category used for exact parameter type checks.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindString
	KindInt
	KindFloat
	KindBool
	KindList
	KindMap
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindString:  "string",
	KindInt:     "int",
	KindFloat:   "float",
	KindBool:    "bool",
	KindList:    "list",
	KindMap:     "map",
}

// String returns the lower-case kind name used in error messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Expectable reports whether k may be declared as the expected kind of a parameter.
func (k Kind) Expectable() bool {
	switch k {
	case KindString, KindInt, KindFloat, KindBool, KindList, KindMap:
		return true
	default:
		return false
	}
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s && k.Expectable() {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown parameter kind %q", s)
}

// KindOf classifies a value. Values decoded from YAML map onto the kinds
// directly; for caller-supplied defaults any Go integer type is KindInt, any
// float type is KindFloat, slices and arrays are KindList and maps are
// KindMap whatever their key type, since YAML mappings may use non-string
// keys. Only the outer shape of compound values is classified.
func KindOf(v any) Kind {
	if v == nil {
		return KindNull
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Map:
		return KindMap
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return KindNull
		}
		return KindOf(rv.Elem().Interface())
	default:
		return KindInvalid
	}
}
