package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf_RoundTripsEveryKind(t *testing.T) {
	for _, kind := range kinds {
		code, ok := CodeOf(fmt.Errorf("wrapped: %w", kind.err))
		require.True(t, ok)
		assert.Equal(t, kind.code, code)
		assert.ErrorIs(t, KindOf(code), kind.err)
	}
	_, ok := CodeOf(fmt.Errorf("plain failure"))
	assert.False(t, ok)
	assert.Nil(t, KindOf("NOT_A_CODE"))
}
