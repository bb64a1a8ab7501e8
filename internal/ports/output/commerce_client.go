package output

import (
	"context"

	"storefront-bot/internal/domain"
)

// CommerceClient interface - Output port
// Defines what the application needs from the commerce backend. Every call
// is authenticated by the adapter; failures are *domain.AuthError or
// *domain.BackendError.
type CommerceClient interface {
	// ListProducts returns the current catalog
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProduct returns a single product by id
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)

	// ProductImageURL resolves the public link of the product's main image
	ProductImageURL(ctx context.Context, product *domain.Product) (string, error)

	// AddCartItem adds quantity of a product to the user's cart.
	// The backend creates the cart lazily on first mutation.
	AddCartItem(ctx context.Context, userID, productID string, quantity int) error

	// ListCartItems returns the items in the user's cart
	ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error)

	// CartTotal returns the formatted cart total including tax
	CartTotal(ctx context.Context, userID string) (string, error)

	// RemoveCartItem removes a cart line (not a product) from the user's cart
	RemoveCartItem(ctx context.Context, userID, itemID string) error

	// UpsertCustomer creates the customer. An already existing customer is not an error.
	UpsertCustomer(ctx context.Context, customer domain.Customer) error
}
