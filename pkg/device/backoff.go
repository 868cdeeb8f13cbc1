package device

import (
	"math/rand"
	"time"
)

// Retry defaults applied to sessions without WithRetry.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 100 * time.Millisecond
	DefaultMaxDelay    = time.Second
	DefaultJitter      = 0.25
)

// RetryConfig bounds how backends retry failed transfers.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the delay before the second attempt; it doubles for
	// every further attempt up to MaxDelay. Zero disables waiting.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// Jitter adds up to this fraction of the delay at random.
	Jitter float64
}

// DefaultRetryConfig returns 3 attempts starting at 100 ms.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		Jitter:      DefaultJitter,
	}
}

func (c RetryConfig) normalized() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.BaseDelay < 0 {
		c.BaseDelay = 0
	}
	if c.MaxDelay < c.BaseDelay {
		c.MaxDelay = c.BaseDelay
	}
	if c.Jitter < 0 {
		c.Jitter = 0
	}
	return c
}

// backoff calculates exponential retry delays with jitter.
type backoff struct {
	current time.Duration
	max     time.Duration
	jitter  float64
	rng     *rand.Rand
}

func newBackoff(cfg RetryConfig) *backoff {
	return &backoff{
		current: cfg.BaseDelay,
		max:     cfg.MaxDelay,
		jitter:  cfg.Jitter,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// next returns the next delay and advances the backoff.
func (b *backoff) next() time.Duration {
	delay := b.current
	if b.jitter > 0 && delay > 0 {
		delay += time.Duration(float64(delay) * b.jitter * b.rng.Float64())
	}

	next := b.current * 2
	if next > b.max {
		next = b.max
	}
	b.current = next
	return delay
}
