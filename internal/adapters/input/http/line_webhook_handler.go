package http

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"storefront-bot/internal/adapters/postback"
	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/input"

	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sirupsen/logrus"
)

var errInvalidDelivery = errors.New("invalid signature or request")

// LineWebhookHandler struct - Primary/Driving adapter for LINE webhook
type LineWebhookHandler struct {
	service       input.LineWebhookService
	channelSecret string
}

// NewLineWebhookHandler func - Creates new LINE webhook handler
func NewLineWebhookHandler(service input.LineWebhookService, channelSecret string) *LineWebhookHandler {
	return &LineWebhookHandler{
		service:       service,
		channelSecret: channelSecret,
	}
}

// HandleWebhook func - Verifies a LINE delivery and hands its events to the bot
// @Summary LINE Webhook
// @Description Handles webhook events from LINE Messaging API
// @Tags LINE
// @Accept application/json
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 400 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /webhook/line [post]
func (h *LineWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	// The SDK verifies the signature on a net/http request
	httpReq, err := http.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(c.Body()))
	if err != nil {
		logrus.Errorf("Failed to create http request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	c.Request().Header.VisitAll(func(key, value []byte) {
		httpReq.Header.Set(string(key), string(value))
	})

	cb, err := webhook.ParseRequest(h.channelSecret, httpReq)
	if err != nil {
		logrus.Warnf("Rejected webhook delivery: %v", err)
		return badRequest(c, errInvalidDelivery)
	}

	events := make([]domain.LineWebhookEvent, 0, len(cb.Events))
	for _, event := range cb.Events {
		if converted := h.convertToDomainEvent(event); converted != nil {
			events = append(events, *converted)
		}
	}

	if err := h.service.HandleWebhook(c.UserContext(), domain.LineWebhookRequest{Events: events}); err != nil {
		logrus.Errorf("Failed to handle webhook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}

	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// convertToDomainEvent - Converts LINE SDK event to domain event
func (h *LineWebhookHandler) convertToDomainEvent(event webhook.EventInterface) *domain.LineWebhookEvent {
	switch e := event.(type) {
	case webhook.MessageEvent:
		return h.convertMessageEvent(e)
	case webhook.PostbackEvent:
		return h.convertPostbackEvent(e)
	case webhook.FollowEvent:
		return &domain.LineWebhookEvent{
			ID:         e.WebhookEventId,
			Type:       domain.LineEventTypeFollow,
			Timestamp:  time.UnixMilli(e.Timestamp),
			ReplyToken: e.ReplyToken,
			Source:     h.convertSource(e.Source),
		}
	case webhook.UnfollowEvent:
		return &domain.LineWebhookEvent{
			ID:        e.WebhookEventId,
			Type:      domain.LineEventTypeUnfollow,
			Timestamp: time.UnixMilli(e.Timestamp),
			Source:    h.convertSource(e.Source),
		}
	default:
		logrus.Debugf("Unsupported event type: %T", event)
		return nil
	}
}

// convertMessageEvent - Converts message event. Only text reaches the bot.
func (h *LineWebhookHandler) convertMessageEvent(event webhook.MessageEvent) *domain.LineWebhookEvent {
	domainEvent := &domain.LineWebhookEvent{
		ID:         event.WebhookEventId,
		Type:       domain.LineEventTypeMessage,
		Timestamp:  time.UnixMilli(event.Timestamp),
		ReplyToken: event.ReplyToken,
		Source:     h.convertSource(event.Source),
	}

	switch msg := event.Message.(type) {
	case webhook.TextMessageContent:
		domainEvent.Message = &domain.LineMessage{
			ID:   msg.Id,
			Type: domain.LineMessageTypeText,
			Text: msg.Text,
		}
	case webhook.StickerMessageContent:
		domainEvent.Message = &domain.LineMessage{ID: msg.Id, Type: domain.LineMessageTypeSticker}
	case webhook.ImageMessageContent:
		domainEvent.Message = &domain.LineMessage{ID: msg.Id, Type: domain.LineMessageTypeImage}
	default:
		logrus.Debugf("Unsupported message type: %T", msg)
		return nil
	}

	return domainEvent
}

// convertPostbackEvent - Decodes the button payload. An undecodable payload
// is passed on without an action so the user still gets an answer.
func (h *LineWebhookHandler) convertPostbackEvent(event webhook.PostbackEvent) *domain.LineWebhookEvent {
	domainEvent := &domain.LineWebhookEvent{
		ID:         event.WebhookEventId,
		Type:       domain.LineEventTypePostback,
		Timestamp:  time.UnixMilli(event.Timestamp),
		ReplyToken: event.ReplyToken,
		Source:     h.convertSource(event.Source),
	}

	if event.Postback == nil {
		return domainEvent
	}
	action, err := postback.Decode(event.Postback.Data)
	if err != nil {
		logrus.Warnf("Failed to decode postback %q: %v", event.Postback.Data, err)
		return domainEvent
	}
	domainEvent.Postback = &action
	return domainEvent
}

// convertSource - Keeps the sending user, whatever chat the event came from
func (h *LineWebhookHandler) convertSource(source webhook.SourceInterface) domain.LineSource {
	switch s := source.(type) {
	case webhook.UserSource:
		return domain.LineSource{Type: domain.LineSourceTypeUser, UserID: s.UserId}
	case webhook.GroupSource:
		return domain.LineSource{Type: domain.LineSourceTypeGroup, UserID: s.UserId}
	case webhook.RoomSource:
		return domain.LineSource{Type: domain.LineSourceTypeRoom, UserID: s.UserId}
	}
	return domain.LineSource{}
}
