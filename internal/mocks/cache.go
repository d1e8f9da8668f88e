package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gridvolt/stationd/internal/domain"
)

// MockCache is an in-memory mock of ports.Cache. It honors Set/Get/Delete
// but ignores expirations unless ExpireNow is set.
type MockCache struct {
	mu        sync.RWMutex
	entries   map[string]string
	ExpireNow bool

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.ExpireNow {
		return "", domain.NewNotFound("key not found")
	}
	v, ok := m.entries[key]
	if !ok {
		return "", domain.NewNotFound("key not found")
	}
	return v, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, expiration)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = fmt.Sprint(value)
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MockCache) Ping() error { return nil }

func (m *MockCache) Close() error { return nil }
