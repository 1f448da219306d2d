// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{
			name: "operation only",
			err:  &ActionableError{Operation: "deploy descriptor"},
			want: "failed to deploy descriptor",
		},
		{
			name: "with resource",
			err:  &ActionableError{Operation: "load project", Resource: "pom.xml"},
			want: "failed to load project: pom.xml",
		},
		{
			name: "with cause",
			err: &ActionableError{
				Operation: "load configuration",
				Resource:  "config.cue",
				Cause:     errors.New("unexpected token"),
			},
			want: "failed to load configuration: config.cue: unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("read pom.xml: %w", fs.ErrNotExist)
	err := NewErrorContext().WithOperation("load project").WithResource("pom.xml").Wrap(cause).BuildError()

	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	err := NewErrorContext().
		WithOperation("load project").
		WithResource("pom.xml").
		WithSuggestion("Pass --project").
		WithSuggestion("Check the XML").
		Wrap(fmt.Errorf("parse: %w", errors.New("EOF"))).
		Build()

	plain := err.Format(false)
	assert.Contains(t, plain, "  • Pass --project")
	assert.Contains(t, plain, "  • Check the XML")
	assert.NotContains(t, plain, "Error chain")

	verbose := err.Format(true)
	assert.Contains(t, verbose, "1. parse: EOF")
	assert.Contains(t, verbose, "2. EOF")
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewErrorContext().WithResource("x").Build())
	require.NoError(t, NewErrorContext().BuildError())

	var ae *ActionableError
	err := NewErrorContext().WithOperation("deploy descriptor").BuildError()
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "deploy descriptor", ae.Operation)
}
