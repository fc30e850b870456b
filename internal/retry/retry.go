package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/ai"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

// RetryProvider is a decorator that retries transient LLM failures with
// exponential backoff and jitter before giving up.
type RetryProvider struct {
	inner          ai.LLMProvider
	maxRetries     int
	baseDelay      time.Duration
	attemptTimeout time.Duration
	logger         *slog.Logger
}

// NewRetryProvider wraps an LLMProvider with retry logic.
// maxRetries is the number of additional attempts after the first failure.
// baseDelay is the delay before the first retry, doubled on each subsequent retry.
// attemptTimeout bounds each call; zero leaves the caller's deadline alone.
func NewRetryProvider(inner ai.LLMProvider, maxRetries int, baseDelay, attemptTimeout time.Duration, logger *slog.Logger) *RetryProvider {
	return &RetryProvider{
		inner:          inner,
		maxRetries:     maxRetries,
		baseDelay:      baseDelay,
		attemptTimeout: attemptTimeout,
		logger:         logger,
	}
}

// Complete calls the wrapped provider, retrying on transient errors.
func (p *RetryProvider) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := p.attempt(ctx, prompt)
	if err == nil {
		return out, nil
	}

	if ctx.Err() != nil || !isRetryable(err) {
		return "", err
	}

	lastErr := err
	for attempt := 1; attempt <= p.maxRetries; attempt++ {
		delay := p.backoffDelay(attempt, lastErr)

		p.logger.Warn("retrying llm call after transient error",
			"attempt", attempt,
			"max_retries", p.maxRetries,
			"delay", delay,
			"error", lastErr,
		)

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: retry cancelled: %w", ai.ErrUnavailable, ctx.Err())
		case <-time.After(delay):
		}

		out, err = p.attempt(ctx, prompt)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil || !isRetryable(err) {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (p *RetryProvider) attempt(ctx context.Context, prompt string) (string, error) {
	if p.attemptTimeout <= 0 {
		return p.inner.Complete(ctx, prompt)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, p.attemptTimeout)
	defer cancel()
	return p.inner.Complete(attemptCtx, prompt)
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// If the error includes a Retry-After duration (HTTP 429), that takes precedence.
func (p *RetryProvider) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	delay := p.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	jitter := float64(delay) * 0.3
	return time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)
}

// isRetryable reports whether err is a transient failure worth retrying.
// The caller has already ruled out cancellation of the parent context, so a
// DeadlineExceeded here comes from the per-attempt timeout.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	// A malformed answer will be malformed again.
	if errors.Is(err, ai.ErrMalformed) {
		return false
	}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}

	// Transport failures (network, DNS, attempt timeout).
	return true
}
