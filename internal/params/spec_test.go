// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    *Spec
		wantErr string
	}{
		{
			name: "empty",
			spec: NewSpec(),
		},
		{
			name: "required and defaults",
			spec: NewSpec().Require("input", KindString).Default("output", "weather.png"),
		},
		{
			name:    "overlap",
			spec:    NewSpec().Require("input", KindString).Default("input", "data.csv"),
			wantErr: "declared as both required and default",
		},
		{
			name:    "duplicate required",
			spec:    NewSpec().Require("input", KindString).Require("input", KindString),
			wantErr: "declared more than once as required",
		},
		{
			name:    "duplicate default",
			spec:    NewSpec().Default("output", "a").Default("output", "b"),
			wantErr: "declared more than once as default",
		},
		{
			name:    "empty name",
			spec:    NewSpec().Require(" ", KindString),
			wantErr: "name must not be empty",
		},
		{
			name:    "null required kind",
			spec:    NewSpec().Require("input", KindNull),
			wantErr: "unsupported expected type null",
		},
		{
			name:    "nil default",
			spec:    NewSpec().Default("output", nil),
			wantErr: "unsupported default value type null",
		},
		{
			name:    "int-keyed map default",
			spec:    NewSpec().Default("limits", map[int]string{1: "low"}),
			wantErr: "map default must have string keys",
		},
		{
			name: "string-keyed map default",
			spec: NewSpec().Default("limits", map[string]any{}),
		},
		{
			name:    "struct default",
			spec:    NewSpec().Default("output", struct{ Path string }{"x"}),
			wantErr: "unsupported default value type invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSpec))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSpec_ValidateReportsEveryProblem(t *testing.T) {
	spec := NewSpec().
		Require("a", KindNull).
		Default("b", nil).
		Default("a", "x")

	err := spec.Validate()
	require.Error(t, err)

	var specErr *SpecError
	require.True(t, errors.As(err, &specErr))
	assert.Equal(t, "a", specErr.Name)
	assert.Contains(t, err.Error(), `parameter "b"`)
	assert.Contains(t, err.Error(), "declared as both required and default")
}

func TestSpec_Names(t *testing.T) {
	spec := NewSpec().
		Default("output", "weather.png").
		Require("input", KindString).
		Default("title", "Weather Observations")

	assert.Equal(t, []string{"input", "output", "title"}, spec.Names())
}

func TestDefault_Kind(t *testing.T) {
	assert.Equal(t, KindString, Default{Name: "x", Value: "a"}.Kind())
	assert.Equal(t, KindInt, Default{Name: "x", Value: 5}.Kind())
	assert.Equal(t, KindList, Default{Name: "x", Value: []int{1}}.Kind())
}
