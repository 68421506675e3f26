// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package params

import (
	"errors"
	"reflect"
	"strings"
)

// Requirement declares a parameter that must be present with the given kind.
type Requirement struct {
	Name string
	Kind Kind
}

// Default declares an optional parameter. The kind of Value is the expected
// kind of the parameter when it is present in the options file.
type Default struct {
	Name  string
	Value any
}

// Kind returns the expected kind derived from the default value.
func (d Default) Kind() Kind {
	return KindOf(d.Value)
}

// Spec is the contract an options file is validated against. Required
// parameters are checked first, then defaults, each in declaration order.
type Spec struct {
	Required []Requirement
	Defaults []Default
}

// NewSpec returns an empty contract.
func NewSpec() *Spec {
	return &Spec{}
}

// Require appends a required parameter.
func (s *Spec) Require(name string, kind Kind) *Spec {
	s.Required = append(s.Required, Requirement{Name: name, Kind: kind})
	return s
}

// Default appends an optional parameter with its fallback value.
func (s *Spec) Default(name string, value any) *Spec {
	s.Defaults = append(s.Defaults, Default{Name: name, Value: value})
	return s
}

// Names returns every declared name, required first.
func (s *Spec) Names() []string {
	names := make([]string, 0, len(s.Required)+len(s.Defaults))
	for _, r := range s.Required {
		names = append(names, r.Name)
	}
	for _, d := range s.Defaults {
		names = append(names, d.Name)
	}
	return names
}

// Validate checks the contract itself. A name may be declared only once, and
// never as both required and defaulted.
func (s *Spec) Validate() error {
	var errs []error
	seen := make(map[string]string, len(s.Required)+len(s.Defaults))

	check := func(name, role string) bool {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, &SpecError{Name: name, Message: "name must not be empty"})
			return false
		}
		if prev, ok := seen[name]; ok {
			if prev == role {
				errs = append(errs, &SpecError{Name: name, Message: "declared more than once as " + role})
			} else {
				errs = append(errs, &SpecError{Name: name, Message: "declared as both required and default"})
			}
			return false
		}
		seen[name] = role
		return true
	}

	for _, r := range s.Required {
		if !check(r.Name, "required") {
			continue
		}
		if !r.Kind.Expectable() {
			errs = append(errs, &SpecError{Name: r.Name, Message: "unsupported expected type " + r.Kind.String()})
		}
	}
	for _, d := range s.Defaults {
		if !check(d.Name, "default") {
			continue
		}
		if !d.Kind().Expectable() {
			errs = append(errs, &SpecError{Name: d.Name, Message: "unsupported default value type " + d.Kind().String()})
			continue
		}
		if d.Kind() == KindMap && !stringKeyed(d.Value) {
			errs = append(errs, &SpecError{Name: d.Name, Message: "map default must have string keys"})
		}
	}
	return errors.Join(errs...)
}

func stringKeyed(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}
