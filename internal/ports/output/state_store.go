package output

import (
	"context"

	"storefront-bot/internal/domain"
)

// StateStore interface - Output port
// Defines what the application needs for keeping the per-user conversation
// state between independent inbound events. Implementations must be safe for
// concurrent access.
type StateStore interface {
	// Get returns the user's state. A missing or expired record is Browsing,
	// not an error. Returns an error only on storage access failure.
	Get(ctx context.Context, userID string) (domain.ConversationState, error)

	// Set stores the user's state, overwriting any previous value
	Set(ctx context.Context, userID string, state domain.ConversationState) error

	// Clear removes the user's state. Idempotent.
	Clear(ctx context.Context, userID string) error

	// Ping checks that the storage backend is reachable
	Ping(ctx context.Context) error
}
