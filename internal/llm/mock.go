package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockResponse is one canned reply. A non-nil Err is returned as is.
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason StopReason
	Err        error
}

// MockProvider replays canned responses in order and records requests.
// Content goes through the same schema check as the real providers.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	calls []Request
}

// NewMockProvider returns a MockProvider that will reply with responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	if len(m.queue) == 0 {
		m.mu.Unlock()
		return nil, &Error{Kind: KindUnavailable, Provider: ProviderMock, Err: errors.New("no canned response left")}
	}
	next := m.queue[0]
	m.queue = m.queue[1:]
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}
	stop := next.StopReason
	if stop == "" {
		stop = StopEnd
	}
	return complete(ProviderMock, req, next.Content, Response{
		Usage:      next.Usage,
		Model:      ProviderMock,
		StopReason: stop,
	})
}

func (m *MockProvider) Name() string    { return ProviderMock }
func (m *MockProvider) ModelID() string { return ProviderMock }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, r)
}

// Calls returns a copy of every request seen so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

// CallCount returns how many times Generate ran.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
