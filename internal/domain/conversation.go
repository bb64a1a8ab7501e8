package domain

import "regexp"

// ConversationState is the durable per-user marker
type ConversationState string

const (
	// ConversationStateBrowsing - initial state, also what an absent record means
	ConversationStateBrowsing ConversationState = "browsing"
	// ConversationStateAwaitingEmail - checkout started, waiting for an email
	ConversationStateAwaitingEmail ConversationState = "awaiting_email"
)

// IsValid reports whether s is a known state
func (s ConversationState) IsValid() bool {
	return s == ConversationStateBrowsing || s == ConversationStateAwaitingEmail
}

// ActionKind identifies what a button press asks for
type ActionKind string

const (
	ActionShowCatalog ActionKind = "goto_main_menu"
	ActionShowProduct ActionKind = "show_product_details"
	ActionAddToCart   ActionKind = "add_to_cart"
	ActionViewCart    ActionKind = "goto_cart"
	ActionRemoveItem  ActionKind = "remove_item_from_cart"
	ActionPay         ActionKind = "pay"
)

// RequiresID reports whether the action carries a payload id
func (k ActionKind) RequiresID() bool {
	switch k {
	case ActionShowProduct, ActionAddToCart, ActionRemoveItem:
		return true
	default:
		return false
	}
}

// IsValid reports whether k is a known action
func (k ActionKind) IsValid() bool {
	switch k {
	case ActionShowCatalog, ActionShowProduct, ActionAddToCart, ActionViewCart, ActionRemoveItem, ActionPay:
		return true
	default:
		return false
	}
}

// Action is a decoded button payload
type Action struct {
	Kind ActionKind
	ID   string
}

// EventKind is the kind of inbound user event
type EventKind string

const (
	EventStart  EventKind = "start"
	EventAction EventKind = "action"
	EventText   EventKind = "text"
	EventReset  EventKind = "reset"
)

// Event is an inbound user action after transport decoding
type Event struct {
	Kind   EventKind
	UserID string
	Action Action
	Text   string
}

// emailPattern is a syntactic check only, not deliverability validation
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// IsEmail reports whether text looks like an email address
func IsEmail(text string) bool {
	return emailPattern.MatchString(text)
}
