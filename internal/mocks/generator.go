package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/PANAMA-HIVE/Backend-Deploy/internal/generation"
)

// MockJSONGenerator implements generation.JSONGenerator for testing
type MockJSONGenerator struct {
	// GenerateJSONFn allows test cases to mock the GenerateJSON behavior
	GenerateJSONFn func(ctx context.Context, req generation.Request) (json.RawMessage, error)

	// Default response values
	Response json.RawMessage
	Err      error

	mu       sync.Mutex
	requests []generation.Request
}

var _ generation.JSONGenerator = (*MockJSONGenerator)(nil)

// GenerateJSON implements the generation.JSONGenerator interface
func (m *MockJSONGenerator) GenerateJSON(ctx context.Context, req generation.Request) (json.RawMessage, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.GenerateJSONFn != nil {
		return m.GenerateJSONFn(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// CallCount returns how many times GenerateJSON was called.
func (m *MockJSONGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent request, or the zero Request if none was made.
func (m *MockJSONGenerator) LastRequest() generation.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return generation.Request{}
	}
	return m.requests[len(m.requests)-1]
}

// GeneratorOption is a function type that configures a MockJSONGenerator
type GeneratorOption func(*MockJSONGenerator)

// WithJSONResponse sets the JSON returned by GenerateJSON.
func WithJSONResponse(raw json.RawMessage) GeneratorOption {
	return func(m *MockJSONGenerator) {
		m.Response = raw
	}
}

// WithJSONError sets the error returned by GenerateJSON.
func WithJSONError(err error) GeneratorOption {
	return func(m *MockJSONGenerator) {
		m.Err = err
	}
}

// WithGenerateJSONFn sets a custom GenerateJSON implementation.
func WithGenerateJSONFn(fn func(ctx context.Context, req generation.Request) (json.RawMessage, error)) GeneratorOption {
	return func(m *MockJSONGenerator) {
		m.GenerateJSONFn = fn
	}
}

// NewMockJSONGenerator creates a MockJSONGenerator configured by opts.
func NewMockJSONGenerator(opts ...GeneratorOption) *MockJSONGenerator {
	m := &MockJSONGenerator{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
