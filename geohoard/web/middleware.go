package web

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/geohoard/geohoard/logger"
)

// ErrorHandler maps unhandled fiber errors into the JSON error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return sendError(c, code, "INTERNAL_ERROR", message)
}

// RequestLogging logs every request through the structured logger.
func RequestLogging() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.LogRequest(c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}

// rateLimiter is a simple in-memory sliding-window limiter keyed by IP.
type rateLimiter struct {
	requests  map[string][]time.Time
	mutex     sync.Mutex
	window    time.Duration
	limit     int
	lastSweep time.Time
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		requests:  make(map[string][]time.Time),
		window:    window,
		limit:     limit,
		lastSweep: time.Now(),
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)
	rl.sweepLocked(now, cutoff)

	var valid []time.Time
	for _, req := range rl.requests[key] {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

// sweepLocked evicts keys whose every timestamp has aged out, at most once
// per window, so idle clients do not accumulate map entries forever.
func (rl *rateLimiter) sweepLocked(now, cutoff time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now

	for key, reqs := range rl.requests {
		live := false
		for _, req := range reqs {
			if req.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(rl.requests, key)
		}
	}
}

// RateLimit throttles mutation endpoints per client IP.
func RateLimit(limit int, window time.Duration) fiber.Handler {
	limiter := newRateLimiter(limit, window)

	return func(c *fiber.Ctx) error {
		if !limiter.allow(c.IP()) {
			return sendError(c, fiber.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests. Please try again later.")
		}
		return c.Next()
	}
}
