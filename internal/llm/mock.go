package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

var errMockDrained = errors.New("mock: no responses left")

// MockResponse is one scripted answer. A non-nil Err is returned instead
// of Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted responses in order and keeps every
// request it saw in Calls. Content is returned without schema checks so
// tests can feed malformed output to callers. Once drained it fails with KindUnavailable,
// which the sentence generator treats like a vendor outage.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return nil, &Error{Kind: KindUnavailable, Err: errMockDrained}
	}
	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// Push appends to the script.
func (m *MockProvider) Push(resp ...MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, resp...)
	m.mu.Unlock()
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
