package input

import (
	"context"

	"storefront-bot/internal/domain"
)

// StorefrontService interface - Input port (use case)
// Drives the per-user conversation. Handle never fails: backend errors are
// turned into an error render.
type StorefrontService interface {
	// Handle runs one inbound event through the conversation state machine
	Handle(ctx context.Context, event domain.Event) []domain.Render

	// CartStatus returns the user's current cart snapshot
	CartStatus(ctx context.Context, userID string) (*domain.CartResponse, error)

	// ConversationStatus returns the user's stored conversation state
	ConversationStatus(ctx context.Context, userID string) (*domain.ConversationStatusResponse, error)

	// ResetConversation discards any in-progress checkout for the user
	ResetConversation(ctx context.Context, userID string) error

	// HealthCheck reports whether the conversation state store is reachable
	HealthCheck(ctx context.Context) error
}
