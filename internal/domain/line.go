package domain

import "time"

// LineEventType is the kind of webhook event the bot reacts to
type LineEventType string

// LineMessageType is the kind of a message event's payload
type LineMessageType string

// LineSourceType is where an event came from
type LineSourceType string

const (
	LineEventTypeMessage  LineEventType = "message"
	LineEventTypePostback LineEventType = "postback"
	LineEventTypeFollow   LineEventType = "follow"
	LineEventTypeUnfollow LineEventType = "unfollow"

	LineMessageTypeText    LineMessageType = "text"
	LineMessageTypeImage   LineMessageType = "image"
	LineMessageTypeSticker LineMessageType = "sticker"

	// LineSourceTypeUser is a one-to-one chat. Group and room events carry
	// the sender too, but the bot keeps carts per user only.
	LineSourceTypeUser  LineSourceType = "user"
	LineSourceTypeGroup LineSourceType = "group"
	LineSourceTypeRoom  LineSourceType = "room"
)

// LineWebhookEvent is one event of a verified webhook delivery.
// Postback holds the decoded button payload and is nil when it could not
// be decoded.
type LineWebhookEvent struct {
	ID         string
	Type       LineEventType
	Timestamp  time.Time
	Source     LineSource
	ReplyToken string
	Message    *LineMessage
	Postback   *Action
}

// LineSource identifies the chat user behind an event
type LineSource struct {
	Type   LineSourceType
	UserID string
}

// LineMessage is the part of a message event the bot reads
type LineMessage struct {
	ID   string
	Type LineMessageType
	Text string
}
