package id

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID_Monotonic(t *testing.T) {
	prev := NewULID()
	for i := 0; i < 100; i++ {
		next := NewULID()
		_, err := ulid.ParseStrict(next)
		require.NoError(t, err)
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestNewUUID(t *testing.T) {
	a, b := NewUUID(), NewUUID()
	assert.NotEqual(t, a, b)
	assert.True(t, IsUUID(a))
	assert.False(t, IsUUID("not-a-session"))
}
