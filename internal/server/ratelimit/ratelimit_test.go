package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_BurstThenDeny(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, Burst: 3, PerMinute: 1})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		info := l.Allow("client-a")
		assert.True(t, info.Allowed, "request %d should pass", i)
	}

	info := l.Allow("client-a")
	assert.False(t, info.Allowed)
	assert.Positive(t, info.RetryAfter)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, Burst: 1, PerMinute: 1})
	defer l.Stop()

	assert.True(t, l.Allow("a").Allowed)
	assert.False(t, l.Allow("a").Allowed)
	assert.True(t, l.Allow("b").Allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(Config{Enabled: false, Burst: 1, PerMinute: 1})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		assert.True(t, l.Allow("a").Allowed)
	}
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	l.Stop()
	l.Stop()
}
