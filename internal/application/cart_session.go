package application

import (
	"context"
	"errors"
	"fmt"

	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// defaultQuantity is what every add-to-cart button posts, whatever its label
const defaultQuantity = 1

// ErrCartReadBack is wrapped when a cart mutation succeeded but the
// following snapshot could not be read.
var ErrCartReadBack = errors.New("cart changed but could not be read back")

// CartSession struct - Per-user view of the remote cart. The backend is the
// only source of truth; nothing is cached between calls.
type CartSession struct {
	commerce output.CommerceClient
}

// NewCartSession func - Creates new cart session
func NewCartSession(commerce output.CommerceClient) *CartSession {
	return &CartSession{commerce: commerce}
}

// AddItem adds one unit of the product and returns the cart as the backend sees it
func (c *CartSession) AddItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	if err := c.commerce.AddCartItem(ctx, userID, productID, defaultQuantity); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "product_id": productID}).Info("Product added to cart")

	return c.readBack(ctx, userID)
}

// RemoveItem removes a cart line and returns the cart as the backend sees it
func (c *CartSession) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	if err := c.commerce.RemoveCartItem(ctx, userID, itemID); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": userID, "item_id": itemID}).Info("Item removed from cart")

	return c.readBack(ctx, userID)
}

// Snapshot reads items and total concurrently. The two reads are not atomic.
func (c *CartSession) Snapshot(ctx context.Context, userID string) (*domain.Cart, error) {
	var (
		items []domain.CartItem
		total string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = c.commerce.ListCartItems(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = c.commerce.CartTotal(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Cart{Items: items, TotalDisplay: total}, nil
}

func (c *CartSession) readBack(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := c.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCartReadBack, err)
	}
	return cart, nil
}
