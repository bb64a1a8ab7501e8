package domain

import (
	"testing"
	"time"
)

const defaultTimeout = 30 * time.Minute

// TestNewConversationSession tests session creation and initialization
func TestNewConversationSession(t *testing.T) {
	userID := "U1234567890abcdef"
	session := NewConversationSession(userID, ConversationStateAwaitingEmail, defaultTimeout)

	if session.UserID != userID {
		t.Errorf("expected UserID %s, got %s", userID, session.UserID)
	}

	if session.State != ConversationStateAwaitingEmail {
		t.Errorf("expected state %s, got %s", ConversationStateAwaitingEmail, session.State)
	}

	if session.LastAccessTime.IsZero() {
		t.Error("expected LastAccessTime to be set, got zero value")
	}
}

// TestConversationSessionIsExpired tests session expiration check logic
func TestConversationSessionIsExpired(t *testing.T) {
	session := NewConversationSession("U1234567890abcdef", ConversationStateAwaitingEmail, defaultTimeout)

	if session.IsExpired() {
		t.Error("expected new session to not be expired")
	}

	session.LastAccessTime = time.Now().Add(-31 * time.Minute)
	if !session.IsExpired() {
		t.Error("expected session with LastAccessTime 31 minutes ago to be expired")
	}

	session.LastAccessTime = time.Now().Add(-29 * time.Minute)
	if session.IsExpired() {
		t.Error("expected session with LastAccessTime 29 minutes ago to not be expired")
	}
}

// TestConversationSessionWithoutTimeoutNeverExpires tests the zero timeout case
func TestConversationSessionWithoutTimeoutNeverExpires(t *testing.T) {
	session := NewConversationSession("U1234567890abcdef", ConversationStateAwaitingEmail, 0)
	session.LastAccessTime = time.Now().Add(-24 * time.Hour)

	if session.IsExpired() {
		t.Error("expected session without timeout to never expire")
	}
}

// TestCurrentStateFallsBackToBrowsing tests nil, expired and unknown states
func TestCurrentStateFallsBackToBrowsing(t *testing.T) {
	var missing *ConversationSession
	if missing.CurrentState() != ConversationStateBrowsing {
		t.Errorf("expected nil session to be browsing, got %s", missing.CurrentState())
	}

	expired := NewConversationSession("U1", ConversationStateAwaitingEmail, time.Minute)
	expired.LastAccessTime = time.Now().Add(-2 * time.Minute)
	if expired.CurrentState() != ConversationStateBrowsing {
		t.Errorf("expected expired session to be browsing, got %s", expired.CurrentState())
	}

	unknown := NewConversationSession("U1", ConversationState("paying"), time.Minute)
	if unknown.CurrentState() != ConversationStateBrowsing {
		t.Errorf("expected unknown state to be browsing, got %s", unknown.CurrentState())
	}

	waiting := NewConversationSession("U1", ConversationStateAwaitingEmail, time.Minute)
	if waiting.CurrentState() != ConversationStateAwaitingEmail {
		t.Errorf("expected awaiting_email, got %s", waiting.CurrentState())
	}
}
