package collector

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MockFetcher serves an in-memory store for development and testing.
type MockFetcher struct {
	Files map[string][]byte
	// Fail makes the named file fail with the given error.
	Fail map[string]error
	// Flaky makes the named file fail that many times before succeeding.
	Flaky map[string]int
	Delay time.Duration

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) List(ctx context.Context) ([]string, error) {
	if err := m.record(ctx, ""); err != nil {
		return nil, err
	}
	files := make([]string, 0, len(m.Files))
	for name := range m.Files {
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func (m *MockFetcher) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := m.record(ctx, name); err != nil {
		return nil, err
	}
	if err, ok := m.Fail[name]; ok {
		return nil, err
	}
	m.mu.Lock()
	n := m.calls[name]
	m.mu.Unlock()
	if n <= m.Flaky[name] {
		return nil, fmt.Errorf("%s: %w: flaky attempt %d", name, ErrTransport, n)
	}
	data, ok := m.Files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return data, nil
}

// Calls returns how many times name was requested; "" counts listings.
func (m *MockFetcher) Calls(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *MockFetcher) record(ctx context.Context, name string) error {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
	m.mu.Unlock()

	if m.Delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.Delay):
		return nil
	}
}
