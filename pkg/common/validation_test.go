package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	t.Parallel()

	var v Violations
	assert.NoError(t, v.Err())

	v.Add(nil)
	assert.NoError(t, v.Err())

	v.Addf("node_count", "must be between %d and %d, got %d", 1, 10, 11)
	v.Add(Invalid("sharedVlans[0]", "must either create or connect"))

	err := v.Err()
	assert.Error(t, err)
	assert.True(t, IsValidationError(err))

	errs := ValidationErrors(err)
	assert.Equal(t, []ValidationError{
		{Field: "node_count", Reason: "must be between 1 and 10, got 11"},
		{Field: "sharedVlans[0]", Reason: "must either create or connect"},
	}, errs)
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(errors.New("boom")))
	assert.True(t, IsValidationError(Invalid("x", "bad")))
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", Invalid("x", "bad"))))

	var v Violations
	v.Addf("x", "bad")
	v.Add(errors.New("not a validation error"))
	assert.False(t, IsValidationError(v.Err()))
	assert.Len(t, ValidationErrors(v.Err()), 1)
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "invalid config: clientCount: must not be negative", Invalid("clientCount", "must not be negative").Error())
	assert.Equal(t, "invalid config: empty request", ValidationError{Reason: "empty request"}.Error())
}
