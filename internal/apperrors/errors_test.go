package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("Recipe not found")))
	assert.Equal(t, KindForbidden, KindOf(fmt.Errorf("wrapped: %w", Forbidden("nope"))))
	assert.Equal(t, KindServer, KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindServer))
}

func TestServerErrorKeepsCauseAndRaw(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Server("AI returned invalid JSON", cause).WithRaw("{not json")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "{not json", err.Raw)
	assert.Contains(t, err.Error(), "AI returned invalid JSON")
}
