package http

import (
	"net/http"

	"storefront-bot/internal/domain"
)

var (
	// Success response
	Success = Status{Code: http.StatusOK, Message: []string{"Success"}}
	// BadRequest response
	BadRequest = Status{Code: http.StatusBadRequest, Message: []string{"Sorry, Not responding because of incorrect syntax"}}
	// InternalServerError response
	InternalServerError = Status{Code: http.StatusInternalServerError, Message: []string{"Internal Server Error"}}
	// BadGateway response
	BadGateway = Status{Code: http.StatusBadGateway, Message: []string{"Sorry, the commerce backend is not available"}}
	// ServiceUnavailable response
	ServiceUnavailable = Status{Code: http.StatusServiceUnavailable, Message: []string{"Sorry, the state store is not available"}}
)

// ResponseBody struct - Generic HTTP response wrapper
type ResponseBody struct {
	Status Status      `json:"status,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// Status struct
type Status struct {
	Code    int      `json:"code,omitempty"`
	Message []string `json:"message,omitempty"`
}

type (
	// CartItemResponse struct - HTTP response DTO for a cart line
	CartItemResponse struct {
		ID        string `json:"id"`
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Quantity  int    `json:"quantity"`
	}

	// CartResponse struct - HTTP response DTO for a cart
	CartResponse struct {
		UserID       string             `json:"user_id"`
		Items        []CartItemResponse `json:"items"`
		TotalDisplay string             `json:"total_display"`
	}

	// ConversationResponse struct - HTTP response DTO for a conversation state
	ConversationResponse struct {
		UserID string `json:"user_id"`
		State  string `json:"state"`
	}
)

// NewCartResponse converts the domain cart view to its HTTP DTO
func NewCartResponse(cart *domain.CartResponse) CartResponse {
	resp := CartResponse{UserID: cart.UserID, Items: make([]CartItemResponse, 0, len(cart.Items)), TotalDisplay: cart.TotalDisplay}
	for _, item := range cart.Items {
		resp.Items = append(resp.Items, CartItemResponse(item))
	}
	return resp
}
