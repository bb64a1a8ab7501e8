package postback

import (
	"strings"
	"testing"

	"storefront-bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		action domain.Action
		data   string
	}{
		{"catalog", domain.Action{Kind: domain.ActionShowCatalog}, "goto_main_menu"},
		{"cart", domain.Action{Kind: domain.ActionViewCart}, "goto_cart"},
		{"pay", domain.Action{Kind: domain.ActionPay}, "pay"},
		{"product", domain.Action{Kind: domain.ActionShowProduct, ID: "42"}, "show_product_details:42"},
		{"add", domain.Action{Kind: domain.ActionAddToCart, ID: "42"}, "add_to_cart:42"},
		{"remove", domain.Action{Kind: domain.ActionRemoveItem, ID: "item-1"}, "remove_item_from_cart:item-1"},
		{"id with separator", domain.Action{Kind: domain.ActionShowProduct, ID: "a:b"}, "show_product_details:a:b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.data, data)

			decoded, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.action, decoded)
		})
	}
}

func TestEncodeDropsIDForPlainActions(t *testing.T) {
	data, err := Encode(domain.Action{Kind: domain.ActionPay, ID: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "pay", data)
}

func TestEncodeRejects(t *testing.T) {
	_, err := Encode(domain.Action{Kind: "checkout"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = Encode(domain.Action{Kind: domain.ActionAddToCart})
	assert.ErrorIs(t, err, ErrMissingID)

	_, err = Encode(domain.Action{Kind: domain.ActionAddToCart, ID: strings.Repeat("x", MaxDataLength)})
	assert.Error(t, err)
}

func TestDecodeRejects(t *testing.T) {
	for _, data := range []string{"", "checkout", "unknown:42"} {
		_, err := Decode(data)
		assert.ErrorIs(t, err, ErrUnknownAction, data)
	}

	for _, data := range []string{"add_to_cart", "remove_item_from_cart:", "show_product_details"} {
		_, err := Decode(data)
		assert.ErrorIs(t, err, ErrMissingID, data)
	}
}
