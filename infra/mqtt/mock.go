package mqtt

import (
	"context"
	"fmt"
	"sync"

	"github.com/rabwill/fieldops/core/model"
)

// MockNotifier records published dispatch records for tests.
type MockNotifier struct {
	mu      sync.Mutex
	Records []model.DispatchRecord
	FailIDs map[string]bool
	closed  bool
}

// NewMockNotifier creates a new MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{FailIDs: make(map[string]bool)}
}

// PublishDispatch records the message or returns an error if configured to
// fail for the technician.
func (m *MockNotifier) PublishDispatch(_ context.Context, rec model.DispatchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[rec.TechnicianID] {
		return fmt.Errorf("publish failed")
	}
	m.Records = append(m.Records, rec)
	return nil
}

// Close marks the notifier as closed.
func (m *MockNotifier) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// Closed reports whether Close was called.
func (m *MockNotifier) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
