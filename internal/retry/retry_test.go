package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/ai"
	"github.com/DorinSirca/ismyjobcooked-api/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockProvider calls a function on each invocation, tracking call count.
type mockProvider struct {
	calls int
	fn    func(ctx context.Context, attempt int) (string, error)
}

func (m *mockProvider) Complete(ctx context.Context, _ string) (string, error) {
	m.calls++
	return m.fn(ctx, m.calls)
}

func unavailable(status int) error {
	return fmt.Errorf("%w: %w", ai.ErrUnavailable, &model.HTTPError{StatusCode: status})
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := &mockProvider{fn: func(_ context.Context, _ int) (string, error) {
		return "{}", nil
	}}

	rp := NewRetryProvider(mock, 2, 10*time.Millisecond, 0, discardLogger())
	got, err := rp.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "{}" {
		t.Fatalf("got %q", got)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_RetriesOn5xx_SucceedsOnSecondAttempt(t *testing.T) {
	mock := &mockProvider{fn: func(_ context.Context, attempt int) (string, error) {
		if attempt == 1 {
			return "", unavailable(503)
		}
		return "ok", nil
	}}

	rp := NewRetryProvider(mock, 2, 10*time.Millisecond, 0, discardLogger())
	got, err := rp.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || mock.calls != 2 {
		t.Fatalf("got %q after %d calls", got, mock.calls)
	}
}

func TestRetry_DoesNotRetryOn4xx(t *testing.T) {
	mock := &mockProvider{fn: func(_ context.Context, _ int) (string, error) {
		return "", unavailable(401)
	}}

	rp := NewRetryProvider(mock, 2, 10*time.Millisecond, 0, discardLogger())
	_, err := rp.Complete(context.Background(), "p")
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != 401 {
		t.Fatalf("expected HTTPError 401, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", mock.calls)
	}
}

func TestRetry_DoesNotRetryMalformed(t *testing.T) {
	mock := &mockProvider{fn: func(_ context.Context, _ int) (string, error) {
		return "", fmt.Errorf("%w: no choices", ai.ErrMalformed)
	}}

	rp := NewRetryProvider(mock, 3, 10*time.Millisecond, 0, discardLogger())
	if _, err := rp.Complete(context.Background(), "p"); !errors.Is(err, ai.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call, got %d", mock.calls)
	}
}

func TestRetry_ExhaustsRetries(t *testing.T) {
	mock := &mockProvider{fn: func(_ context.Context, _ int) (string, error) {
		return "", unavailable(500)
	}}

	rp := NewRetryProvider(mock, 2, 10*time.Millisecond, 0, discardLogger())
	_, err := rp.Complete(context.Background(), "p")
	if !errors.Is(err, ai.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if mock.calls != 3 {
		t.Fatalf("expected 3 calls (1 + 2 retries), got %d", mock.calls)
	}
}

func TestRetry_RespectsRetryAfter(t *testing.T) {
	mock := &mockProvider{fn: func(_ context.Context, attempt int) (string, error) {
		if attempt == 1 {
			return "", fmt.Errorf("%w: %w", ai.ErrUnavailable,
				&model.HTTPError{StatusCode: 429, RetryAfter: 50 * time.Millisecond})
		}
		return "ok", nil
	}}

	rp := NewRetryProvider(mock, 2, time.Millisecond, 0, discardLogger())
	start := time.Now()
	if _, err := rp.Complete(context.Background(), "p"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected to wait at least Retry-After, waited %v", elapsed)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := &mockProvider{fn: func(_ context.Context, _ int) (string, error) {
		return "", unavailable(503)
	}}

	ctx, cancel := context.WithCancel(context.Background())
	rp := NewRetryProvider(mock, 5, time.Second, 0, discardLogger())

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := rp.Complete(ctx, "p")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.calls != 1 {
		t.Fatalf("expected 1 call before cancellation, got %d", mock.calls)
	}
}

func TestRetry_AttemptTimeoutIsRetried(t *testing.T) {
	mock := &mockProvider{fn: func(ctx context.Context, attempt int) (string, error) {
		if attempt == 1 {
			<-ctx.Done()
			return "", fmt.Errorf("%w: %w", ai.ErrUnavailable, ctx.Err())
		}
		return "ok", nil
	}}

	rp := NewRetryProvider(mock, 1, time.Millisecond, 20*time.Millisecond, discardLogger())
	got, err := rp.Complete(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || mock.calls != 2 {
		t.Fatalf("got %q after %d calls", got, mock.calls)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"malformed", ai.ErrMalformed, false},
		{"429", unavailable(429), true},
		{"502", unavailable(502), true},
		{"400", unavailable(400), false},
		{"transport", fmt.Errorf("%w: dial tcp: refused", ai.ErrUnavailable), true},
		{"attempt timeout", context.DeadlineExceeded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryable(tt.err); got != tt.want {
				t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
