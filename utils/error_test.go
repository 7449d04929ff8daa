package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	v := NewValidationError("date", "bad format")
	assert.ErrorIs(t, v, ErrValidation)
	assert.NotErrorIs(t, v, ErrNotFound)
	assert.EqualError(t, v, "validation error: date: bad format")

	nf := fmt.Errorf("loading: %w", NewNotFoundError("client", "c1"))
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.NotErrorIs(t, nf, ErrValidation)

	var target *NotFoundError
	assert.True(t, errors.As(nf, &target))
	assert.Equal(t, "client", target.Kind)
}
