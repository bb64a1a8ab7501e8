// Package postback encodes button actions into LINE postback data and back.
// The wire form is "<action>" or "<action>:<id>".
package postback

import (
	"errors"
	"fmt"
	"strings"

	"storefront-bot/internal/domain"
)

const (
	separator = ":"

	// MaxDataLength is the LINE limit for postback data
	MaxDataLength = 300
)

var (
	// ErrUnknownAction is returned for an action name the bot never emits
	ErrUnknownAction = errors.New("postback: unknown action")
	// ErrMissingID is returned when an action needs an id and has none
	ErrMissingID = errors.New("postback: missing id")
)

// Encode turns an action into postback data
func Encode(action domain.Action) (string, error) {
	if !action.Kind.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, action.Kind)
	}
	if !action.Kind.RequiresID() {
		return string(action.Kind), nil
	}
	if action.ID == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingID, action.Kind)
	}

	data := string(action.Kind) + separator + action.ID
	if len(data) > MaxDataLength {
		return "", fmt.Errorf("postback: data for %s exceeds %d bytes", action.Kind, MaxDataLength)
	}
	return data, nil
}

// Decode parses postback data produced by Encode. Ids may contain the separator.
func Decode(data string) (domain.Action, error) {
	name, id, _ := strings.Cut(strings.TrimSpace(data), separator)

	kind := domain.ActionKind(name)
	if !kind.IsValid() {
		return domain.Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	if !kind.RequiresID() {
		return domain.Action{Kind: kind}, nil
	}
	if id == "" {
		return domain.Action{}, fmt.Errorf("%w: %s", ErrMissingID, kind)
	}
	return domain.Action{Kind: kind, ID: id}, nil
}
