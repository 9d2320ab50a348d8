package ratelimit

import "time"

// Limiter decides whether a caller identified by key may proceed
type Limiter interface {
	Allow(key string) bool
}

// Clock lets tests drive idle-bucket eviction.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits every caller. It is used when RATE_LIMIT_ENABLED is off.
type NopLimiter struct{}

func (NopLimiter) Allow(string) bool { return true }

func NewNopLimiter() Limiter { return NopLimiter{} }
