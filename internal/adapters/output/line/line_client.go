package line

import (
	"context"
	"errors"
	"fmt"

	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/output"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

var (
	// Compile-time checks
	_ output.LineClient    = (*LineClientAdapter)(nil)
	_ output.ProfileLookup = (*LineClientAdapter)(nil)
)

// messagingAPI is the part of the LINE SDK client the adapter uses
type messagingAPI interface {
	ReplyMessage(replyMessageRequest *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
	PushMessage(pushMessageRequest *messaging_api.PushMessageRequest, xLineRetryKey string) (*messaging_api.PushMessageResponse, error)
	GetProfile(userId string) (*messaging_api.UserProfileResponse, error)
}

// LineClientAdapter struct - Output adapter for LINE messaging platform
type LineClientAdapter struct {
	client messagingAPI
}

// NewLineClientAdapter func - Creates new LINE client adapter
func NewLineClientAdapter(channelToken string) (*LineClientAdapter, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: %w", err)
	}

	return &LineClientAdapter{
		client: client,
	}, nil
}

// ReplyMessage - Sends renders to a LINE user via reply token
func (a *LineClientAdapter) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	messages, err := BuildMessages(request.Renders)
	if err != nil {
		return nil, err
	}

	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: request.ReplyToken,
		Messages:   messages,
	}
	if _, err := a.client.ReplyMessage(req); err != nil {
		return nil, fmt.Errorf("failed to send reply message: %w", err)
	}

	logrus.Debugf("Sent %d reply messages with token: %s", len(messages), request.ReplyToken)

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Reply message sent successfully",
	}, nil
}

// PushMessage - Sends renders to a LINE user directly
func (a *LineClientAdapter) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	messages, err := BuildMessages(request.Renders)
	if err != nil {
		return nil, err
	}

	req := &messaging_api.PushMessageRequest{
		To:       request.To,
		Messages: messages,
	}
	if _, err := a.client.PushMessage(req, ""); err != nil {
		return nil, fmt.Errorf("failed to send push message: %w", err)
	}

	logrus.Infof("Successfully sent push message to: %s", request.To)

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Push message sent successfully",
	}, nil
}

// DisplayName - Gets the user's LINE display name
func (a *LineClientAdapter) DisplayName(ctx context.Context, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	profile, err := a.client.GetProfile(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user profile: %w", err)
	}
	if profile == nil {
		return "", errors.New("empty user profile")
	}
	return profile.DisplayName, nil
}
