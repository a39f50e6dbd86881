package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	wrapped := Wrap(ErrSuggestFetch, cause)

	t.Run("carries base code and status", func(t *testing.T) {
		assert.Equal(t, ErrSuggestFetch.Code, wrapped.Code)
		assert.Equal(t, ErrSuggestFetch.StatusCode, wrapped.StatusCode)
	})

	t.Run("message includes the cause", func(t *testing.T) {
		assert.Contains(t, wrapped.Message, ErrSuggestFetch.Message)
		assert.Contains(t, wrapped.Message, "connection refused")
	})

	t.Run("records the cause as detail", func(t *testing.T) {
		require.Contains(t, wrapped.Details, "cause")
		assert.Equal(t, "connection refused", wrapped.Details["cause"])
	})

	t.Run("never mutates the shared base value", func(t *testing.T) {
		assert.NotContains(t, ErrSuggestFetch.Message, "connection refused")
		assert.Empty(t, ErrSuggestFetch.Details)
	})
}
