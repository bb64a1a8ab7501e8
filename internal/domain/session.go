package domain

import "time"

// ConversationSession holds the durable conversation state for a LINE user
type ConversationSession struct {
	UserID         string            // LINE user identifier
	State          ConversationState // Current conversation state
	LastAccessTime time.Time         // For session expiration checking
	timeout        time.Duration     // Configurable session timeout
}

// NewConversationSession creates a new conversation session for a user
// with a configurable timeout. A non-positive timeout never expires.
func NewConversationSession(userID string, state ConversationState, timeout time.Duration) *ConversationSession {
	return &ConversationSession{
		UserID:         userID,
		State:          state,
		LastAccessTime: time.Now(),
		timeout:        timeout,
	}
}

// IsExpired checks if the session has exceeded the configured timeout
func (s *ConversationSession) IsExpired() bool {
	if s.timeout <= 0 {
		return false
	}
	return time.Since(s.LastAccessTime) > s.timeout
}

// CurrentState returns the state, or Browsing when the session is missing or expired
func (s *ConversationSession) CurrentState() ConversationState {
	if s == nil || s.IsExpired() || !s.State.IsValid() {
		return ConversationStateBrowsing
	}
	return s.State
}
