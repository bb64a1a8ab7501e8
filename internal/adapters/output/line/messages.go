package line

import (
	"errors"
	"unicode/utf8"

	"storefront-bot/internal/adapters/postback"
	"storefront-bot/internal/domain"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

// Messaging API limits
const (
	maxMessagesPerRequest = 5
	maxTextLength         = 5000
	maxAltTextLength      = 400
	maxLabelLength        = 20
)

// errNoMessages is returned when nothing in the renders could be sent
var errNoMessages = errors.New("no valid messages to send")

// BuildMessages converts renders into Messaging API messages. Renders beyond
// the per-request limit are dropped, keeping the last one so an error render
// is never lost.
func BuildMessages(renders []domain.Render) ([]messaging_api.MessageInterface, error) {
	if len(renders) > maxMessagesPerRequest {
		logrus.Warnf("Dropping %d renders over the LINE message limit", len(renders)-maxMessagesPerRequest)
		last := renders[len(renders)-1]
		renders = append(renders[:maxMessagesPerRequest-1:maxMessagesPerRequest-1], last)
	}

	messages := make([]messaging_api.MessageInterface, 0, len(renders))
	for _, render := range renders {
		messages = append(messages, toLineMessage(render))
	}

	if len(messages) == 0 {
		return nil, errNoMessages
	}
	return messages, nil
}

func toLineMessage(render domain.Render) messaging_api.MessageInterface {
	switch render.Kind {
	case domain.RenderPhoto:
		bubble := bubbleWithButtons(render)
		if render.ImageURL != "" {
			bubble.Hero = &messaging_api.FlexImage{
				Url:         render.ImageURL,
				Size:        "full",
				AspectRatio: "20:13",
				AspectMode:  messaging_api.FlexImageASPECT_MODE_COVER,
			}
		}
		return &messaging_api.FlexMessage{AltText: truncate(render.Text, maxAltTextLength), Contents: bubble}

	case domain.RenderMenu:
		return &messaging_api.FlexMessage{AltText: truncate(render.Text, maxAltTextLength), Contents: bubbleWithButtons(render)}

	default:
		return &messaging_api.TextMessage{Text: truncate(render.Text, maxTextLength)}
	}
}

// bubbleWithButtons puts the render text in the body and one horizontal box per button row in the footer
func bubbleWithButtons(render domain.Render) *messaging_api.FlexBubble {
	bubble := &messaging_api.FlexBubble{
		Body: &messaging_api.FlexBox{
			Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexText{Text: truncate(render.Text, maxTextLength), Wrap: true},
			},
		},
	}

	rows := make([]messaging_api.FlexComponentInterface, 0, len(render.Rows))
	for _, row := range render.Rows {
		buttons := make([]messaging_api.FlexComponentInterface, 0, len(row))
		for _, b := range row {
			data, err := postback.Encode(b.Action)
			if err != nil {
				logrus.Errorf("Skipping button %q: %v", b.Label, err)
				continue
			}
			buttons = append(buttons, &messaging_api.FlexButton{
				Style:  messaging_api.FlexButtonSTYLE_LINK,
				Height: messaging_api.FlexButtonHEIGHT_SM,
				Action: &messaging_api.PostbackAction{
					Label:       truncate(b.Label, maxLabelLength),
					Data:        data,
					DisplayText: b.Label,
				},
			})
		}
		if len(buttons) == 0 {
			continue
		}
		rows = append(rows, &messaging_api.FlexBox{
			Layout:   messaging_api.FlexBoxLAYOUT_HORIZONTAL,
			Contents: buttons,
		})
	}

	if len(rows) > 0 {
		bubble.Footer = &messaging_api.FlexBox{
			Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
			Contents: rows,
		}
	}
	return bubble
}

// truncate cuts s to at most max runes
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
