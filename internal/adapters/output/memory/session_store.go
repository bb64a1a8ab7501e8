package memory

import (
	"context"
	"sync"
	"time"

	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/output"
)

// Compile-time check to ensure MemoryStateStore implements StateStore interface
var _ output.StateStore = (*MemoryStateStore)(nil)

// MemoryStateStore struct - Output adapter for in-memory conversation state.
// Uses sync.Map for concurrent access; entries expire after the configured
// timeout of inactivity. State is lost on restart.
type MemoryStateStore struct {
	sessions sync.Map
	timeout  time.Duration
}

// NewMemoryStateStore creates an in-memory state store.
// A non-positive timeout keeps states until they are cleared.
func NewMemoryStateStore(timeout time.Duration) *MemoryStateStore {
	return &MemoryStateStore{timeout: timeout}
}

// GetTimeout returns the configured inactivity timeout
func (m *MemoryStateStore) GetTimeout() time.Duration {
	return m.timeout
}

// Get returns the user's state. Missing, malformed, or expired entries are
// Browsing; expired ones are deleted (lazy cleanup).
func (m *MemoryStateStore) Get(ctx context.Context, userID string) (domain.ConversationState, error) {
	value, exists := m.sessions.Load(userID)
	if !exists {
		return domain.ConversationStateBrowsing, nil
	}

	session, ok := value.(*domain.ConversationSession)
	if !ok || session.IsExpired() {
		m.sessions.CompareAndDelete(userID, value)
		return domain.ConversationStateBrowsing, nil
	}

	return session.CurrentState(), nil
}

// Set stores the user's state. Each write starts a fresh session so readers
// never observe a half-updated entry.
func (m *MemoryStateStore) Set(ctx context.Context, userID string, state domain.ConversationState) error {
	m.sessions.Store(userID, domain.NewConversationSession(userID, state, m.timeout))
	return nil
}

// Clear removes the user's state. Idempotent.
func (m *MemoryStateStore) Clear(ctx context.Context, userID string) error {
	m.sessions.Delete(userID)
	return nil
}

// Ping always succeeds for the in-memory store
func (m *MemoryStateStore) Ping(ctx context.Context) error {
	return nil
}
