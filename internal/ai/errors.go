package ai

import "errors"

var (
	// ErrUnavailable means the completion service could not be reached or
	// refused the request: transport failure, non-200 status, timeout or an
	// error payload.
	ErrUnavailable = errors.New("llm unavailable")

	// ErrMalformed means the service answered but the answer is unusable:
	// no choices, no JSON object, or JSON that violates the schema.
	ErrMalformed = errors.New("llm response malformed")

	// ErrDisabled is returned by NopAssessor.
	ErrDisabled = errors.New("llm assessment disabled")
)
