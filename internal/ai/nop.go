package ai

import "context"

// NopAssessor is used when ai.enabled is false. It never calls out and always
// reports ErrDisabled, so callers go straight to their heuristics.
type NopAssessor struct{}

// NewNopAssessor returns a NopAssessor.
func NewNopAssessor() *NopAssessor {
	return &NopAssessor{}
}

// Assess returns ErrDisabled.
func (NopAssessor) Assess(_ context.Context, _, _ string) (*Assessment, error) {
	return nil, ErrDisabled
}
