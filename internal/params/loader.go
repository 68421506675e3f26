// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package params

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	xglog "github.com/ManuGH/scicomp/internal/log"
	"github.com/ManuGH/scicomp/internal/metrics"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Loader validates one options file against one contract.
type Loader struct {
	path   string
	spec   *Spec
	logger zerolog.Logger
}

// NewLoader creates a loader for the options file at path.
func NewLoader(path string, spec *Spec) *Loader {
	if spec == nil {
		spec = NewSpec()
	}
	return &Loader{
		path:   filepath.Clean(path),
		spec:   spec,
		logger: xglog.WithComponent("params"),
	}
}

// WithLogger replaces the loader's logger.
func (l *Loader) WithLogger(logger zerolog.Logger) *Loader {
	l.logger = logger
	return l
}

// Path returns the options file path.
func (l *Loader) Path() string {
	return l.path
}

// Load parses the options file at path and validates it against spec.
func Load(path string, spec *Spec) (*Bundle, error) {
	return NewLoader(path, spec).Load()
}

// Load reads the options file and returns the validated bundle.
// Required parameters are checked first, then defaults. The first failure
// aborts the load; no partial bundle is returned.
func (l *Loader) Load() (*Bundle, error) {
	bundle, err := l.load()
	metrics.RecordParamsLoad(outcomeOf(err))
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

func (l *Loader) load() (*Bundle, error) {
	l.logger.Debug().
		Str(xglog.FieldEvent, "params.load_start").
		Str(xglog.FieldPath, l.path).
		Msg("loading options file")

	if err := l.spec.Validate(); err != nil {
		return nil, fmt.Errorf("validate spec: %w", err)
	}

	raw, err := readOptions(l.path)
	if err != nil {
		return nil, err
	}

	bundle := newBundle(len(l.spec.Required) + len(l.spec.Defaults))

	for _, req := range l.spec.Required {
		v, ok := raw[req.Name]
		if !ok {
			return nil, &MissingParameterError{Name: req.Name}
		}
		if got := KindOf(v); got != req.Kind {
			return nil, l.mismatch(req.Name, req.Kind, got)
		}
		l.logger.Info().
			Str(xglog.FieldEvent, "params.set").
			Str(xglog.FieldParam, req.Name).
			Interface(xglog.FieldValue, v).
			Msg("setting parameter")
		bundle.set(req.Name, v)
	}

	for _, def := range l.spec.Defaults {
		v, ok := raw[def.Name]
		if !ok {
			l.logger.Info().
				Str(xglog.FieldEvent, "params.default_applied").
				Str(xglog.FieldParam, def.Name).
				Interface(xglog.FieldValue, def.Value).
				Msg("parameter not found in options file, using default")
			metrics.RecordDefaultApplied()
			bundle.set(def.Name, cloneValue(def.Value))
			continue
		}
		if want, got := def.Kind(), KindOf(v); got != want {
			return nil, l.mismatch(def.Name, want, got)
		}
		l.logger.Info().
			Str(xglog.FieldEvent, "params.set").
			Str(xglog.FieldParam, def.Name).
			Interface(xglog.FieldValue, v).
			Msg("setting parameter")
		bundle.set(def.Name, v)
	}

	for name := range raw {
		if !bundle.Has(name) {
			l.logger.Debug().
				Str(xglog.FieldEvent, "params.ignored").
				Str(xglog.FieldParam, name).
				Msg("options file key not declared in contract")
		}
	}

	return bundle, nil
}

func (l *Loader) mismatch(name string, want, got Kind) error {
	l.logger.Debug().
		Str(xglog.FieldEvent, "params.type_mismatch").
		Str(xglog.FieldParam, name).
		Str(xglog.FieldExpected, want.String()).
		Str(xglog.FieldActual, got.String()).
		Msg("parameter has the wrong type")
	return &TypeMismatchError{Name: name, Expected: want, Actual: got}
}

// readOptions parses the file at path into a mapping. An empty file, or a
// document holding only null, yields an empty mapping.
func readOptions(path string) (map[string]any, error) {
	// #nosec G304 -- options file paths are provided by the operator via CLI
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	raw, err := decodeOptions(f)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return raw, nil
}

func decodeOptions(r io.Reader) (map[string]any, error) {
	dec := yaml.NewDecoder(r)

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	// Strict: Ensure no multiple documents or trailing content
	var trailing yaml.Node
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, errors.New("options file contains multiple documents")
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.AliasNode && root.Alias != nil {
		root = root.Alias
	}

	switch {
	case root.Kind == yaml.MappingNode:
	case root.Kind == yaml.ScalarNode && root.Tag == "!!null":
		return map[string]any{}, nil
	default:
		return nil, fmt.Errorf("top-level value must be a mapping, got %s", nodeKindName(root))
	}

	stringifyTimestamps(root)

	raw := map[string]any{}
	if err := root.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// stringifyTimestamps retags timestamp scalars as strings so date options
// reach callers exactly as written.
func stringifyTimestamps(n *yaml.Node) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!timestamp" {
		n.Tag = "!!str"
		return
	}
	for _, c := range n.Content {
		stringifyTimestamps(c)
	}
}

func nodeKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		return "scalar " + n.Tag
	case yaml.DocumentNode:
		return "empty document"
	default:
		return fmt.Sprintf("node kind %d", n.Kind)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidSpec):
		return metrics.OutcomeInvalidSpec
	case errors.Is(err, ErrParse):
		return metrics.OutcomeParseError
	case errors.Is(err, ErrMissingRequired):
		return metrics.OutcomeMissingRequired
	case errors.Is(err, ErrTypeMismatch):
		return metrics.OutcomeTypeMismatch
	default:
		return metrics.OutcomeFailure
	}
}
