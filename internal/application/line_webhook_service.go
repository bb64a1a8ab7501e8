package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/input"
	"storefront-bot/internal/ports/output"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Chat commands
const (
	commandStart      = "/start"
	commandReset      = "/reset"
	commandClearState = "/clear_state"
)

// LineWebhookService struct - Application service implementing LINE webhook use cases.
// It turns LINE events into storefront events and replies with the renders.
type LineWebhookService struct {
	lineClient output.LineClient
	storefront input.StorefrontService
	locks      *userLocks
}

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(lineClient output.LineClient, storefront input.StorefrontService) *LineWebhookService {
	return &LineWebhookService{
		lineClient: lineClient,
		storefront: storefront,
		locks:      newUserLocks(),
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE.
// Every event is processed; failures are joined into the returned error.
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	var errs []error
	for _, event := range request.Events {
		log := logrus.WithFields(logrus.Fields{
			"request_id": uuid.NewString(),
			"event_type": event.Type,
			"user_id":    event.Source.UserID,
		})
		log.Info("Received LINE event")

		if err := s.handleEvent(ctx, log, event); err != nil {
			log.WithError(err).Error("Failed to handle LINE event")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *LineWebhookService) handleEvent(ctx context.Context, log *logrus.Entry, event domain.LineWebhookEvent) error {
	userID := event.Source.UserID
	if userID == "" {
		log.Info("Ignoring event without user source")
		return nil
	}

	if event.Type == domain.LineEventTypeUnfollow {
		return s.storefront.ResetConversation(ctx, userID)
	}

	storeEvent, ok := toStorefrontEvent(event)
	if !ok {
		log.Debug("Ignoring event")
		return nil
	}

	unlock := s.locks.Lock(userID)
	renders := s.storefront.Handle(ctx, storeEvent)
	unlock()

	if len(renders) == 0 || event.ReplyToken == "" {
		return nil
	}

	_, err := s.lineClient.ReplyMessage(domain.LineReplyMessageRequest{
		ReplyToken: event.ReplyToken,
		Renders:    renders,
	})
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

// AnnounceStartup func - Use case: tell the bot admin the bot is up
func (s *LineWebhookService) AnnounceStartup(adminUserID string) error {
	if adminUserID == "" {
		return nil
	}
	_, err := s.lineClient.PushMessage(domain.LinePushMessageRequest{
		To:      adminUserID,
		Renders: []domain.Render{domain.TextRender("Storefront bot started")},
	})
	if err != nil {
		return fmt.Errorf("failed to notify admin: %w", err)
	}
	return nil
}

// toStorefrontEvent maps a LINE event. ok is false for events the bot ignores.
func toStorefrontEvent(event domain.LineWebhookEvent) (domain.Event, bool) {
	userID := event.Source.UserID

	switch event.Type {
	case domain.LineEventTypeFollow:
		return domain.Event{Kind: domain.EventStart, UserID: userID}, true

	case domain.LineEventTypePostback:
		// An undecodable postback reaches the storefront as an unknown action
		var action domain.Action
		if event.Postback != nil {
			action = *event.Postback
		}
		return domain.Event{Kind: domain.EventAction, UserID: userID, Action: action}, true

	case domain.LineEventTypeMessage:
		if event.Message == nil || event.Message.Type != domain.LineMessageTypeText {
			return domain.Event{}, false
		}
		text := strings.TrimSpace(event.Message.Text)
		switch strings.ToLower(text) {
		case commandStart:
			return domain.Event{Kind: domain.EventStart, UserID: userID}, true
		case commandReset, commandClearState:
			return domain.Event{Kind: domain.EventReset, UserID: userID}, true
		}
		return domain.Event{Kind: domain.EventText, UserID: userID, Text: text}, true
	}

	return domain.Event{}, false
}
