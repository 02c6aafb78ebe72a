package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter_BurstThenReject(t *testing.T) {
	l := NewKeyedLimiter(1, 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, l.Allow("10.0.0.1"))
	assert.Greater(t, l.RetryAfter("10.0.0.1"), time.Duration(0))
}

func TestKeyedLimiter_KeysAreIndependent(t *testing.T) {
	l := NewKeyedLimiter(1, 1, time.Minute)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.Equal(t, 2, l.Len())
}

func TestKeyedLimiter_Refills(t *testing.T) {
	l := NewKeyedLimiter(50, 1, time.Minute)

	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))
	time.Sleep(60 * time.Millisecond)
	assert.True(t, l.Allow("k"))
}
