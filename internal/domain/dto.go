package domain

// DTOs (Data Transfer Objects) - Domain layer request/response structures

type (
	// LineWebhookRequest struct - Domain LINE webhook request DTO
	LineWebhookRequest struct {
		Events []LineWebhookEvent
	}

	// LineReplyMessageRequest struct - Domain LINE reply message request DTO
	LineReplyMessageRequest struct {
		ReplyToken string
		Renders    []Render
	}

	// LinePushMessageRequest struct - Domain LINE push message request DTO
	LinePushMessageRequest struct {
		To      string
		Renders []Render
	}

	// LineMessageResponse struct - Domain LINE API response DTO
	LineMessageResponse struct {
		Status  string
		Message string
	}

	// ConversationStatusResponse struct - Domain admin view of a user's conversation
	ConversationStatusResponse struct {
		UserID string            `json:"user_id"`
		State  ConversationState `json:"state"`
	}

	// CartResponse struct - Domain admin view of a user's cart
	CartResponse struct {
		UserID       string         `json:"user_id"`
		Items        []CartItemView `json:"items"`
		TotalDisplay string         `json:"total_display"`
	}

	// CartItemView struct - Domain cart line for JSON output
	CartItemView struct {
		ID        string `json:"id"`
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
	}
)

// NewCartResponse converts a cart snapshot into its admin view
func NewCartResponse(userID string, cart *Cart) *CartResponse {
	resp := &CartResponse{UserID: userID, Items: make([]CartItemView, 0)}
	if cart == nil {
		return resp
	}
	resp.TotalDisplay = cart.TotalDisplay
	for _, item := range cart.Items {
		resp.Items = append(resp.Items, CartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
		})
	}
	return resp
}
