package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/DorinSirca/ismyjobcooked-api/internal/ai"
)

// KeyedLimiter keeps one token bucket per key (client IP, provider name).
type KeyedLimiter struct {
	mu    sync.Mutex
	m     map[string]*entry
	limit rate.Limit
	burst int
	now   func() time.Time
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewKeyedLimiter allows burst requests per key, refilled evenly so that at
// most requests are admitted per window in steady state.
func NewKeyedLimiter(requests int, window time.Duration) *KeyedLimiter {
	if requests < 1 {
		requests = 1
	}
	return &KeyedLimiter{
		m:     make(map[string]*entry),
		limit: rate.Every(window / time.Duration(requests)),
		burst: requests,
		now:   time.Now,
	}
}

func (kl *KeyedLimiter) limiterFor(key string) *rate.Limiter {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	e, ok := kl.m[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(kl.limit, kl.burst)}
		kl.m[key] = e
	}
	e.lastSeen = kl.now()
	return e.lim
}

// Allow reports whether one request for key may proceed now.
func (kl *KeyedLimiter) Allow(key string) bool {
	return kl.limiterFor(key).AllowN(kl.now(), 1)
}

// Wait blocks until a request for key may proceed or ctx is done.
func (kl *KeyedLimiter) Wait(ctx context.Context, key string) error {
	if err := kl.limiterFor(key).Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait for %s: %w", key, err)
	}
	return nil
}

// Prune forgets keys idle for longer than idle and returns how many were dropped.
func (kl *KeyedLimiter) Prune(idle time.Duration) int {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	cutoff := kl.now().Add(-idle)
	n := 0
	for k, e := range kl.m {
		if e.lastSeen.Before(cutoff) {
			delete(kl.m, k)
			n++
		}
	}
	return n
}

// Len is the number of tracked keys.
func (kl *KeyedLimiter) Len() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.m)
}

// RateLimitedProvider is a decorator that throttles calls to an LLM provider.
// All providers sharing a limiter and key share the same budget.
type RateLimitedProvider struct {
	inner   ai.LLMProvider
	limiter *KeyedLimiter
	key     string
}

// NewRateLimitedProvider wraps an LLMProvider with outbound rate limiting.
func NewRateLimitedProvider(inner ai.LLMProvider, limiter *KeyedLimiter, key string) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: limiter,
		key:     key,
	}
}

// Complete waits for the limiter, then delegates to the wrapped provider.
// A wait cut short by the context counts as the service being unavailable.
func (p *RateLimitedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx, p.key); err != nil {
		return "", fmt.Errorf("%w: %w", ai.ErrUnavailable, err)
	}
	return p.inner.Complete(ctx, prompt)
}
