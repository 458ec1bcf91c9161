// Package ratelimit throttles credential-guessing against the login
// endpoint.
package ratelimit

import (
	"sync"
	"time"
)

type attemptRecord struct {
	count        int
	lastAttempt  time.Time
	blockedUntil time.Time
}

// LoginRateLimiter allows a bounded number of attempts per client
// within a sliding window, then blocks the client for a fixed duration.
type LoginRateLimiter struct {
	mu            sync.Mutex
	attempts      map[string]*attemptRecord
	maxAttempts   int
	window        time.Duration
	blockDuration time.Duration
}

func NewLoginRateLimiter(maxAttempts int, window, blockDuration time.Duration) *LoginRateLimiter {
	limiter := &LoginRateLimiter{
		attempts:      make(map[string]*attemptRecord),
		maxAttempts:   maxAttempts,
		window:        window,
		blockDuration: blockDuration,
	}

	go limiter.cleanup()

	return limiter
}

// Check records an attempt for clientID and reports whether it may
// proceed. When blocked, the second return is how long until the block
// lifts.
func (l *LoginRateLimiter) Check(clientID string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	record, exists := l.attempts[clientID]
	if !exists {
		record = &attemptRecord{lastAttempt: now}
		l.attempts[clientID] = record
	}

	if now.Before(record.blockedUntil) {
		return false, record.blockedUntil.Sub(now)
	}

	if now.Sub(record.lastAttempt) > l.window {
		record.count = 0
	}

	record.count++
	record.lastAttempt = now

	if record.count > l.maxAttempts {
		record.blockedUntil = now.Add(l.blockDuration)
		return false, l.blockDuration
	}

	return true, 0
}

// Reset clears the record for clientID after a successful login.
func (l *LoginRateLimiter) Reset(clientID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, clientID)
}

func (l *LoginRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for clientID, record := range l.attempts {
			if now.Sub(record.lastAttempt) > l.window*2 && now.After(record.blockedUntil) {
				delete(l.attempts, clientID)
			}
		}
		l.mu.Unlock()
	}
}
