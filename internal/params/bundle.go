// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package params

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Bundle is the validated, read-only set of parameters produced by Load.
// Names keep contract order: required parameters first, then defaults.
type Bundle struct {
	names  []string
	values map[string]any
}

func newBundle(capacity int) *Bundle {
	return &Bundle{
		names:  make([]string, 0, capacity),
		values: make(map[string]any, capacity),
	}
}

func (b *Bundle) set(name string, value any) {
	if _, ok := b.values[name]; !ok {
		b.names = append(b.names, name)
	}
	b.values[name] = value
}

// Len returns the number of parameters.
func (b *Bundle) Len() int {
	return len(b.names)
}

// Names returns parameter names in contract order.
func (b *Bundle) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Has reports whether name is bound.
func (b *Bundle) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Get returns a copy of the value bound to name.
func (b *Bundle) Get(name string) (any, bool) {
	v, ok := b.values[name]
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// Map returns a copy of all bound parameters.
func (b *Bundle) Map() map[string]any {
	out := make(map[string]any, len(b.values))
	for k, v := range b.values {
		out[k] = cloneValue(v)
	}
	return out
}

// String returns the string parameter name.
func (b *Bundle) String(name string) (string, error) {
	v, err := b.lookup(name, KindString)
	if err != nil {
		return "", err
	}
	return reflect.ValueOf(v).String(), nil
}

// Int returns the integer parameter name. Values above math.MaxInt64 fail
// with an error wrapping strconv.ErrRange.
func (b *Bundle) Int(name string) (int64, error) {
	v, err := b.lookup(name, KindInt)
	if err != nil {
		return 0, err
	}
	rv := reflect.ValueOf(v)
	if rv.CanInt() {
		return rv.Int(), nil
	}
	u := rv.Uint()
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("parameter %q: value %d overflows int64: %w", name, u, strconv.ErrRange)
	}
	return int64(u), nil
}

// Float returns the float parameter name.
func (b *Bundle) Float(name string) (float64, error) {
	v, err := b.lookup(name, KindFloat)
	if err != nil {
		return 0, err
	}
	return reflect.ValueOf(v).Float(), nil
}

// Bool returns the boolean parameter name.
func (b *Bundle) Bool(name string) (bool, error) {
	v, err := b.lookup(name, KindBool)
	if err != nil {
		return false, err
	}
	return reflect.ValueOf(v).Bool(), nil
}

func (b *Bundle) lookup(name string, want Kind) (any, error) {
	v, ok := b.values[name]
	if !ok {
		return nil, &MissingParameterError{Name: name}
	}
	if got := KindOf(v); got != want {
		return nil, &TypeMismatchError{Name: name, Expected: want, Actual: got}
	}
	return v, nil
}

// Decode binds the bundle into a struct declared with yaml tags. Every
// bundle parameter must map onto a field of target.
func (b *Bundle) Decode(target any) error {
	data, err := yaml.Marshal(b.values)
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("decode bundle: %w", err)
	}
	return nil
}

// cloneValue deep-copies slices and maps so callers cannot mutate a bundle
// or a caller-supplied default through a returned value.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	return cloneReflect(reflect.ValueOf(v)).Interface()
}

func cloneReflect(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneReflect(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneReflect(iter.Value()))
		}
		return out
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		inner := cloneReflect(rv.Elem())
		out := reflect.New(rv.Type()).Elem()
		out.Set(inner)
		return out
	default:
		return rv
	}
}
