package address

import (
	"context"
)

// MockValidator is a test implementation of Validator.
// It records every request it receives.
type MockValidator struct {
	ValidateFunc func(ctx context.Context, req ValidationRequest) (*Response, error)
	Requests     []ValidationRequest
}

// NewMockValidator creates a new mock address validator for testing.
func NewMockValidator() *MockValidator {
	return &MockValidator{}
}

// Validate delegates to the configured function or returns an empty response.
func (m *MockValidator) Validate(ctx context.Context, req ValidationRequest) (*Response, error) {
	m.Requests = append(m.Requests, req)
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, req)
	}
	return &Response{}, nil
}
