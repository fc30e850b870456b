package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/DorinSirca/ismyjobcooked-api/internal/ai"
	"github.com/DorinSirca/ismyjobcooked-api/internal/events"
)

// ValidationError is a client input problem. Details is only rendered outside
// production.
type ValidationError struct {
	Message string
	Details any
}

func (e *ValidationError) Error() string { return e.Message }

// UnauthorizedError maps to 401.
type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "Unauthorized access"
	}
	return e.Message
}

// ForbiddenError maps to 403.
type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string {
	if e.Message == "" {
		return "Access forbidden"
	}
	return e.Message
}

// NotFoundError maps to 404. Title replaces the default "Not Found" label and
// Extra is merged into the response body.
type NotFoundError struct {
	Title   string
	Message string
	Extra   map[string]any
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return "Resource not found"
	}
	return e.Message
}

// RateLimitError maps to 429.
type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "Too many requests"
	}
	return e.Message
}

func badRequest(msg string) error { return &ValidationError{Message: msg} }

// classification is the status and label an error is reported with.
type classification struct {
	status  int
	label   string
	details any
	extra   map[string]any
}

func classify(err error) classification {
	var (
		verr     *ValidationError
		nferr    *NotFoundError
		unauth   *UnauthorizedError
		forbid   *ForbiddenError
		rlerr    *RateLimitError
		dnsErr   *net.DNSError
		netErr   net.Error
		synErr   *json.SyntaxError
		typeErr  *json.UnmarshalTypeError
		maxBytes *http.MaxBytesError
	)
	switch {
	case errors.As(err, &verr):
		details := verr.Details
		if details == nil {
			details = verr.Message
		}
		return classification{status: http.StatusBadRequest, label: "Validation Error", details: details}
	case errors.As(err, &unauth):
		return classification{status: http.StatusUnauthorized, label: "Unauthorized"}
	case errors.As(err, &forbid):
		return classification{status: http.StatusForbidden, label: "Forbidden"}
	case errors.As(err, &nferr):
		label := nferr.Title
		if label == "" {
			label = "Not Found"
		}
		return classification{status: http.StatusNotFound, label: label, extra: nferr.Extra}
	case errors.As(err, &rlerr):
		return classification{status: http.StatusTooManyRequests, label: "Too Many Requests"}
	case errors.As(err, &maxBytes):
		return classification{status: http.StatusRequestEntityTooLarge, label: "Payload Too Large"}
	case errors.As(err, &dnsErr), errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, ai.ErrUnavailable):
		return classification{status: http.StatusServiceUnavailable, label: "Service Unavailable"}
	case errors.Is(err, context.DeadlineExceeded):
		return classification{status: http.StatusRequestTimeout, label: "Request Timeout"}
	case errors.As(err, &netErr) && netErr.Timeout():
		return classification{status: http.StatusRequestTimeout, label: "Request Timeout"}
	case errors.As(err, &synErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		return classification{status: http.StatusBadRequest, label: "Bad Request"}
	default:
		return classification{status: http.StatusInternalServerError, label: "Internal Server Error"}
	}
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorWriter renders errors as the JSON error envelope.
type ErrorWriter struct {
	Production bool
	Logger     *slog.Logger
}

// Write classifies err and writes the envelope.
func (ew ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	c := classify(err)
	level := slog.LevelWarn
	if c.status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	ew.Logger.Log(r.Context(), level, "request failed",
		"status", c.status,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", events.RequestIDFrom(r.Context()),
		"ip", clientIP(r),
		"user_agent", r.UserAgent(),
		"error", err,
	)
	ew.write(w, r, c, err.Error(), "")
}

// Panic writes a 500 for a recovered panic value.
func (ew ErrorWriter) Panic(w http.ResponseWriter, r *http.Request, rec any) {
	stack := string(debug.Stack())
	ew.Logger.Error("panic",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", events.RequestIDFrom(r.Context()),
		"panic", rec,
		"stack", stack,
	)
	c := classification{status: http.StatusInternalServerError, label: "Internal Server Error"}
	ew.write(w, r, c, "An unexpected error occurred", stack)
}

func (ew ErrorWriter) write(w http.ResponseWriter, r *http.Request, c classification, message, stack string) {
	if message == "" {
		message = "An unexpected error occurred"
	}
	body := map[string]any{
		"error":     c.label,
		"message":   message,
		"timestamp": time.Now().UTC(),
		"path":      r.URL.Path,
		"method":    r.Method,
	}
	if id := events.RequestIDFrom(r.Context()); id != "" {
		body["requestId"] = id
	}
	for k, v := range c.extra {
		body[k] = v
	}
	if !ew.Production {
		if c.details != nil {
			body["details"] = c.details
		}
		if stack != "" {
			body["stack"] = stack
		}
	}
	WriteJSON(w, c.status, body)
}
