package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("course %d not found", 7)))
	assert.True(t, IsValidation(NewValidation("too long")))
	assert.True(t, IsConflict(NewConflict("bad definition")))
	assert.False(t, IsNotFound(NewValidation("too long")))
}

func TestAsAppErrorUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewNotFound("quiz 3 not found"))

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, appErr.Kind)

	_, ok = AsAppError(fmt.Errorf("plain"))
	assert.False(t, ok)
}
