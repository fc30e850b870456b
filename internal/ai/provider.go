package ai

import "context"

// LLMProvider sends a prompt to an LLM and returns the raw text response.
// Implementations wrap every failure in ErrUnavailable or ErrMalformed.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const systemMessage = "You are an expert in job market analysis and AI automation trends. Provide accurate, data-driven assessments."
