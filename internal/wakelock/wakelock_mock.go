package wakelock

import "sync"

// MockLock implements the Lock interface for testing.
type MockLock struct {
	mu sync.Mutex

	EnableFunc  func() error
	DisableFunc func() error

	EnableCalls  int
	DisableCalls int
	enabled      bool
}

var _ Lock = (*MockLock)(nil)

// NewMockLock creates a new MockLock.
func NewMockLock() *MockLock {
	return &MockLock{}
}

// Enable records the call.
func (m *MockLock) Enable() error {
	m.mu.Lock()
	m.EnableCalls++
	m.mu.Unlock()

	if m.EnableFunc != nil {
		if err := m.EnableFunc(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.enabled = true
	m.mu.Unlock()
	return nil
}

// Disable records the call.
func (m *MockLock) Disable() error {
	m.mu.Lock()
	m.DisableCalls++
	m.enabled = false
	m.mu.Unlock()

	if m.DisableFunc != nil {
		return m.DisableFunc()
	}
	return nil
}

// Enabled reports whether the last call was a successful Enable.
func (m *MockLock) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Calls returns the number of Enable and Disable calls.
func (m *MockLock) Calls() (enable, disable int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.EnableCalls, m.DisableCalls
}
