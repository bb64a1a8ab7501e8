package output

import (
	"context"

	"storefront-bot/internal/domain"
)

// LineClient interface - Output port
// Defines what the application needs from LINE messaging platform
type LineClient interface {
	// ReplyMessage sends render instructions to a LINE user via reply token
	ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)

	// PushMessage sends render instructions to a LINE user directly
	PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)
}

// ProfileLookup interface - Output port
// Resolves a chat user's display name, used as the customer name at checkout.
type ProfileLookup interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}
