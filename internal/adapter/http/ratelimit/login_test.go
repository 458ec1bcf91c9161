package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheck_AllowsUpToMax(t *testing.T) {
	limiter := NewLoginRateLimiter(3, time.Minute, 5*time.Minute)

	for i := 0; i < 3; i++ {
		allowed, wait := limiter.Check("client1")
		assert.True(t, allowed, "attempt %d should pass", i+1)
		assert.Zero(t, wait)
	}
}

func TestCheck_BlocksPastMax(t *testing.T) {
	limiter := NewLoginRateLimiter(3, time.Minute, 5*time.Minute)

	for i := 0; i < 3; i++ {
		limiter.Check("client1")
	}
	allowed, wait := limiter.Check("client1")

	assert.False(t, allowed)
	assert.Equal(t, 5*time.Minute, wait)
}

func TestCheck_ClientsAreIndependent(t *testing.T) {
	limiter := NewLoginRateLimiter(1, time.Minute, 5*time.Minute)

	limiter.Check("client1")
	allowed, _ := limiter.Check("client1")
	assert.False(t, allowed)

	allowed, _ = limiter.Check("client2")
	assert.True(t, allowed)
}

func TestCheck_WindowExpiryResetsCount(t *testing.T) {
	limiter := NewLoginRateLimiter(2, 50*time.Millisecond, 5*time.Minute)

	limiter.Check("client1")
	limiter.Check("client1")

	time.Sleep(60 * time.Millisecond)

	allowed, _ := limiter.Check("client1")
	assert.True(t, allowed)
}

func TestReset_ClearsBlock(t *testing.T) {
	limiter := NewLoginRateLimiter(1, time.Minute, 5*time.Minute)

	limiter.Check("client1")
	allowed, _ := limiter.Check("client1")
	assert.False(t, allowed)

	limiter.Reset("client1")

	allowed, _ = limiter.Check("client1")
	assert.True(t, allowed)
}

func TestCheck_ReportsRemainingBlock(t *testing.T) {
	limiter := NewLoginRateLimiter(1, time.Minute, 10*time.Minute)

	limiter.Check("client1")
	limiter.Check("client1")

	time.Sleep(20 * time.Millisecond)

	allowed, remaining := limiter.Check("client1")
	assert.False(t, allowed)
	assert.Greater(t, remaining, 9*time.Minute)
	assert.LessOrEqual(t, remaining, 10*time.Minute)
}
