package light

import (
	"sync"
	"time"
)

// RateLimiter manages rate limiting for published commands per location
type RateLimiter struct {
	mu              sync.Mutex
	minInterval     time.Duration
	lastPublishTime map[string]time.Time
	now             func() time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(minIntervalMs int) *RateLimiter {
	return &RateLimiter{
		minInterval:     time.Duration(minIntervalMs) * time.Millisecond,
		lastPublishTime: make(map[string]time.Time),
		now:             time.Now,
	}
}

// Allow checks if enough time has passed since the last publish and records
// the attempt when it is allowed
func (rl *RateLimiter) Allow(location string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	lastTime, exists := rl.lastPublishTime[location]
	if exists && now.Sub(lastTime) < rl.minInterval {
		return false
	}

	rl.lastPublishTime[location] = now
	return true
}

// Record marks a publish that bypassed the limiter
func (rl *RateLimiter) Record(location string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lastPublishTime[location] = rl.now()
}

// LastPublishTime returns the last publish time for a location
func (rl *RateLimiter) LastPublishTime(location string) (time.Time, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lastTime, exists := rl.lastPublishTime[location]
	return lastTime, exists
}
