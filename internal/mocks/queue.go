package mocks

import "sync"

// PublishedMessage records a single Publish call.
type PublishedMessage struct {
	Subject string
	Data    []byte
}

// MockMessageQueue records published messages for assertions.
type MockMessageQueue struct {
	mu        sync.Mutex
	published []PublishedMessage

	PublishFunc func(subject string, data []byte) error
}

func (m *MockMessageQueue) Publish(subject string, data []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(subject, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, PublishedMessage{Subject: subject, Data: data})
	return nil
}

func (m *MockMessageQueue) Subscribe(subject string, handler func(data []byte) error) error {
	return nil
}

func (m *MockMessageQueue) Close() error { return nil }

func (m *MockMessageQueue) GetPublishedMessages() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedMessage, len(m.published))
	copy(out, m.published)
	return out
}
