package classifier

import (
	"context"
	"sync"
)

// MockClient is a mock classification client for testing
type MockClient struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithResponse sets the raw text the mock returns
func WithResponse(response string) MockOption {
	return func(m *MockClient) {
		m.response = response
	}
}

// WithError sets an error to return from Classify
func WithError(err error) MockOption {
	return func(m *MockClient) {
		m.err = err
	}
}

// NewMockClient creates a new mock classification client. By default it
// answers with a reasonable verdict.
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		response: `{"verdict":"reasonable","reason":"Looks sensible."}`,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Classify returns the configured response or error and records the call
func (m *MockClient) Classify(_ context.Context, _ []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

// Calls returns how many times Classify was invoked
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
