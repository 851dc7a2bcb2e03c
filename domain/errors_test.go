package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	wrapped := WrapError(ErrCodeInvalid, "invalid payload", errors.New("unexpected EOF"))

	assert.Equal(t, "invalid payload: unexpected EOF", wrapped.Error())
	assert.True(t, errors.Is(wrapped, ErrInvalidPayload))
	assert.Equal(t, ErrCodeInvalid, CodeOf(fmt.Errorf("decode: %w", wrapped)))

	assert.Equal(t, ErrCodeInternal, CodeOf(errors.New("plain")))
	assert.False(t, errors.Is(ErrUnauthorized, ErrInvalidPayload))
}

func TestError_Nil(t *testing.T) {
	var e *Error
	assert.Equal(t, "", e.Error())
	assert.Nil(t, e.Unwrap())
}
