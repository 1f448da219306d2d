// SPDX-License-Identifier: MPL-2.0

package publish

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/goots/pom-deployer/pkg/types"
)

func TestGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		skip, exists, errorOnMissing bool
		want                         Outcome
	}{
		{true, true, true, OutcomeSkip},
		{true, false, true, OutcomeSkip},
		{true, false, false, OutcomeSkip},
		{false, true, true, OutcomeProceed},
		{false, true, false, OutcomeProceed},
		{false, false, true, OutcomeFail},
		{false, false, false, OutcomeMissing},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Gate(tt.skip, tt.exists, tt.errorOnMissing),
			"Gate(skip=%v, exists=%v, errorOnMissing=%v)", tt.skip, tt.exists, tt.errorOnMissing)
	}
}

func TestGate_SkipWins(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		exists := rapid.Bool().Draw(t, "exists")
		errorOnMissing := rapid.Bool().Draw(t, "errorOnMissing")
		if got := Gate(true, exists, errorOnMissing); got != OutcomeSkip {
			t.Fatalf("Gate(skip) = %s, want skip", got)
		}
	})
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "proceed", OutcomeProceed.String())
	assert.Equal(t, "skip", OutcomeSkip.String())
	assert.Equal(t, "missing", OutcomeMissing.String())
	assert.Equal(t, "fail", OutcomeFail.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := Request{PomName: "bom.xml", GroupID: "org.example", ArtifactID: "my-bom"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Request)
		fields int
	}{
		{"empty pomName", func(r *Request) { r.PomName = "  " }, 1},
		{"empty groupId", func(r *Request) { r.GroupID = "" }, 1},
		{"bad artifactId", func(r *Request) { r.ArtifactID = "my bom" }, 1},
		{"everything empty", func(r *Request) { *r = Request{} }, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := valid
			tt.modify(&req)

			err := req.Validate()
			require.ErrorIs(t, err, ErrInvalidRequest)
			var invalid *InvalidRequestError
			require.ErrorAs(t, err, &invalid)
			assert.Len(t, invalid.FieldErrors, tt.fields)
		})
	}
}

func TestInvalidRequestError_Message(t *testing.T) {
	t.Parallel()

	err := Request{PomName: "bom.xml"}.Validate()
	require.Error(t, err)
	assert.Equal(t, "invalid publish request: invalid groupId: must be non-empty; invalid artifactId: must be non-empty", err.Error())

	var invalid *InvalidRequestError
	require.True(t, errors.As(err, &invalid))
	assert.ErrorIs(t, invalid.FieldErrors[0], types.ErrInvalidCoordinate)
}

func TestMissingInputError(t *testing.T) {
	t.Parallel()

	err := &MissingInputError{PomName: "bom.xml"}
	assert.Equal(t, "unable to find pomName bom.xml to install/deploy", err.Error())
	assert.ErrorIs(t, err, ErrMissingInput)
}
