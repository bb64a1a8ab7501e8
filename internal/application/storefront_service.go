package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

const defaultMaxButtonsInRow = 5

// User-facing texts
const (
	textCatalogTitle    = "Product list"
	textCatalogEmpty    = "The catalog is empty right now."
	textCartEmpty       = "Your cart is empty."
	textAddedToCart     = "Product added to cart (%d in cart)."
	textRemovedFromCart = "Item removed from cart."
	textRemovedTotal    = "Item removed from cart. Total: %s"
	textAskEmail        = "To pay, please send your email."
	textInvalidEmail    = "That does not look like an email address. Please send something like name@example.com."
	textEmailReminder   = "We are waiting for your email to finish the checkout. Send /reset to cancel."
	textCheckoutDone    = "Thank you! We will contact you at %s."
	textStartHint       = "Send /start to see the catalog."
	textReset           = "Your session has been reset."

	textErrCatalog     = "Sorry, the catalog could not be loaded. Please try again later."
	textErrProduct     = "Sorry, this product could not be shown. Please try again later."
	textErrAddToCart   = "Sorry, the product could not be added to your cart. Please try again later."
	textErrCart        = "Sorry, your cart could not be loaded. Please try again later."
	textErrRemove      = "Sorry, the item could not be removed from your cart. Please try again later."
	textErrAddReadBack = "The product was added, but your cart could not be shown. Open the cart to check it."
	textErrRmReadBack  = "The item was removed, but your cart could not be shown. Open the cart to check it."
	textErrCheckout    = "Sorry, we could not register your email. Please try again later."
	textErrPay         = "Sorry, the checkout could not be started. Please try again."
	textErrUnavailable = "The shop is not responding right now. Please try again in a moment."
	textErrUnknown     = "Sorry, this button is no longer supported."
)

// Button labels
const (
	labelCart     = "Cart"
	labelShowCart = "Show cart"
	labelCatalog  = "Back to catalog"
	labelMenu     = "Menu"
	labelPay      = "Pay"
	labelRemove   = "Remove %s"
)

// weightLabels are the add-to-cart buttons of a product card. All add one unit.
var weightLabels = []string{"1 kg", "5 kg", "10 kg"}

// StorefrontService struct - Application service running the per-user
// conversation. The stored state is either Browsing or AwaitingEmail.
type StorefrontService struct {
	commerce        output.CommerceClient
	cart            *CartSession
	states          output.StateStore
	profiles        output.ProfileLookup
	maxButtonsInRow int
}

// NewStorefrontService func - Creates new storefront service. profiles may be nil.
func NewStorefrontService(
	commerce output.CommerceClient,
	states output.StateStore,
	profiles output.ProfileLookup,
	maxButtonsInRow int,
) *StorefrontService {
	if maxButtonsInRow <= 0 {
		maxButtonsInRow = defaultMaxButtonsInRow
	}
	return &StorefrontService{
		commerce:        commerce,
		cart:            NewCartSession(commerce),
		states:          states,
		profiles:        profiles,
		maxButtonsInRow: maxButtonsInRow,
	}
}

// Handle func - Use case: run one inbound event through the conversation
func (s *StorefrontService) Handle(ctx context.Context, event domain.Event) []domain.Render {
	log := logrus.WithFields(logrus.Fields{
		"user_id": event.UserID,
		"event":   event.Kind,
		"action":  event.Action.Kind,
	})

	if event.Kind == domain.EventReset {
		if err := s.states.Clear(ctx, event.UserID); err != nil {
			log.WithError(err).Error("Failed to clear conversation state")
		}
		return []domain.Render{domain.TextRender(textReset)}
	}

	state, err := s.states.Get(ctx, event.UserID)
	if err != nil {
		log.WithError(err).Warn("Failed to read conversation state, assuming browsing")
		state = domain.ConversationStateBrowsing
	}
	log.WithField("state", state).Debug("Handling event")

	if state == domain.ConversationStateAwaitingEmail {
		return s.handleAwaitingEmail(ctx, log, event)
	}
	return s.handleBrowsing(ctx, log, event)
}

func (s *StorefrontService) handleBrowsing(ctx context.Context, log *logrus.Entry, event domain.Event) []domain.Render {
	switch event.Kind {
	case domain.EventStart:
		return s.showCatalog(ctx, log)

	case domain.EventText:
		return []domain.Render{domain.TextRender(textStartHint)}

	case domain.EventAction:
		action := event.Action
		switch action.Kind {
		case domain.ActionShowCatalog:
			return s.showCatalog(ctx, log)
		case domain.ActionShowProduct:
			return s.showProduct(ctx, log, action.ID)
		case domain.ActionAddToCart:
			return s.addToCart(ctx, log, event.UserID, action.ID)
		case domain.ActionViewCart:
			return s.showCart(ctx, log, event.UserID)
		case domain.ActionRemoveItem:
			return s.removeItem(ctx, log, event.UserID, action.ID)
		case domain.ActionPay:
			return s.startCheckout(ctx, log, event.UserID)
		}
	}

	log.Warn("Unsupported event while browsing")
	return []domain.Render{domain.ErrorRender(textErrUnknown)}
}

func (s *StorefrontService) handleAwaitingEmail(ctx context.Context, log *logrus.Entry, event domain.Event) []domain.Render {
	if event.Kind != domain.EventText {
		return []domain.Render{domain.TextRender(textEmailReminder)}
	}

	email := strings.TrimSpace(event.Text)
	if !domain.IsEmail(email) {
		return []domain.Render{domain.TextRender(textInvalidEmail)}
	}
	return s.checkout(ctx, log, event.UserID, email)
}

func (s *StorefrontService) showCatalog(ctx context.Context, log *logrus.Entry) []domain.Render {
	render, err := s.catalogRender(ctx)
	if err != nil {
		return s.failure(log, err, textErrCatalog)
	}
	return []domain.Render{render}
}

func (s *StorefrontService) catalogRender(ctx context.Context) (domain.Render, error) {
	products, err := s.commerce.ListProducts(ctx)
	if err != nil {
		return domain.Render{}, err
	}

	buttons := make([]domain.Button, 0, len(products))
	for _, p := range products {
		buttons = append(buttons, domain.Button{
			Label:  p.Name,
			Action: domain.Action{Kind: domain.ActionShowProduct, ID: p.ID},
		})
	}

	rows := domain.ChunkButtons(buttons, s.maxButtonsInRow)
	rows = append(rows, []domain.Button{{Label: labelCart, Action: domain.Action{Kind: domain.ActionViewCart}}})

	text := textCatalogTitle
	if len(products) == 0 {
		text = textCatalogEmpty
	}
	return domain.MenuRender(text, rows), nil
}

func (s *StorefrontService) showProduct(ctx context.Context, log *logrus.Entry, productID string) []domain.Render {
	product, err := s.commerce.GetProduct(ctx, productID)
	if err != nil {
		return s.failure(log, err, textErrProduct)
	}

	caption := productCaption(product)
	rows := productRows(product.ID)

	if product.MainImageID == "" {
		log.WithField("product_id", product.ID).Warn("Product has no main image")
		return []domain.Render{domain.MenuRender(caption, rows)}
	}

	imageURL, err := s.commerce.ProductImageURL(ctx, product)
	if err != nil {
		return s.failure(log, err, textErrProduct)
	}
	return []domain.Render{domain.PhotoRender(caption, imageURL, rows)}
}

func (s *StorefrontService) addToCart(ctx context.Context, log *logrus.Entry, userID, productID string) []domain.Render {
	cart, err := s.cart.AddItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, ErrCartReadBack) {
			return s.failure(log, err, textErrAddReadBack)
		}
		return s.failure(log, err, textErrAddToCart)
	}

	renders := []domain.Render{domain.TextRender(fmt.Sprintf(textAddedToCart, len(cart.Items)))}

	catalog, err := s.catalogRender(ctx)
	if err != nil {
		return append(renders, s.failure(log, err, textErrCatalog)...)
	}
	return append(renders, catalog)
}

func (s *StorefrontService) showCart(ctx context.Context, log *logrus.Entry, userID string) []domain.Render {
	cart, err := s.cart.Snapshot(ctx, userID)
	if err != nil {
		return s.failure(log, err, textErrCart)
	}
	return []domain.Render{cartRender(cart, s.maxButtonsInRow)}
}

func (s *StorefrontService) removeItem(ctx context.Context, log *logrus.Entry, userID, itemID string) []domain.Render {
	cart, err := s.cart.RemoveItem(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, ErrCartReadBack) {
			return s.failure(log, err, textErrRmReadBack)
		}
		return s.failure(log, err, textErrRemove)
	}

	if cart.IsEmpty() {
		return []domain.Render{domain.TextRender(textRemovedFromCart)}
	}
	return []domain.Render{domain.TextRender(fmt.Sprintf(textRemovedTotal, cart.TotalDisplay))}
}

func (s *StorefrontService) startCheckout(ctx context.Context, log *logrus.Entry, userID string) []domain.Render {
	if err := s.states.Set(ctx, userID, domain.ConversationStateAwaitingEmail); err != nil {
		return s.failure(log, err, textErrPay)
	}
	log.Info("Checkout started, waiting for email")
	return []domain.Render{domain.TextRender(textAskEmail)}
}

// checkout registers the customer. The state returns to Browsing whatever the outcome.
func (s *StorefrontService) checkout(ctx context.Context, log *logrus.Entry, userID, email string) []domain.Render {
	defer func() {
		if err := s.states.Clear(ctx, userID); err != nil {
			log.WithError(err).Error("Failed to clear conversation state after checkout")
		}
	}()

	customer := domain.Customer{ID: userID, Name: s.customerName(ctx, log, userID, email), Email: email}
	if err := s.commerce.UpsertCustomer(ctx, customer); err != nil {
		return s.failure(log, err, textErrCheckout+"\n"+textStartHint)
	}

	log.Info("Customer registered")
	return []domain.Render{domain.TextRender(fmt.Sprintf(textCheckoutDone, email) + "\n" + textStartHint)}
}

func (s *StorefrontService) customerName(ctx context.Context, log *logrus.Entry, userID, email string) string {
	if s.profiles == nil {
		return email
	}
	name, err := s.profiles.DisplayName(ctx, userID)
	if err != nil {
		log.WithError(err).Warn("Failed to look up display name, using email")
		return email
	}
	if strings.TrimSpace(name) == "" {
		return email
	}
	return name
}

// failure logs err and returns the single error render of a failed transition
func (s *StorefrontService) failure(log *logrus.Entry, err error, text string) []domain.Render {
	entry := log.WithError(err)

	var authErr *domain.AuthError
	var backendErr *domain.BackendError
	switch {
	case errors.As(err, &authErr):
		entry.Error("Commerce backend authorization failed")
		text = textErrUnavailable
	case errors.As(err, &backendErr):
		entry = entry.WithFields(logrus.Fields{"kind": backendErr.Kind, "status": backendErr.StatusCode})
		entry.Error("Commerce backend call failed")
		if backendErr.Kind == domain.BackendErrorTimeout || backendErr.Kind == domain.BackendErrorUnreachable {
			if !errors.Is(err, ErrCartReadBack) {
				text = textErrUnavailable
			}
		}
	default:
		entry.Error("Transition failed")
	}

	return []domain.Render{domain.ErrorRender(text)}
}

// CartStatus func - Use case: current cart snapshot for the admin API
func (s *StorefrontService) CartStatus(ctx context.Context, userID string) (*domain.CartResponse, error) {
	cart, err := s.cart.Snapshot(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to read cart")
		return nil, err
	}
	return domain.NewCartResponse(userID, cart), nil
}

// ConversationStatus func - Use case: stored conversation state for the admin API
func (s *StorefrontService) ConversationStatus(ctx context.Context, userID string) (*domain.ConversationStatusResponse, error) {
	state, err := s.states.Get(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to read conversation state")
		return nil, err
	}
	return &domain.ConversationStatusResponse{UserID: userID, State: state}, nil
}

// ResetConversation func - Use case: discard any in-progress checkout
func (s *StorefrontService) ResetConversation(ctx context.Context, userID string) error {
	if err := s.states.Clear(ctx, userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to clear conversation state")
		return err
	}
	logrus.WithField("user_id", userID).Info("Conversation reset")
	return nil
}

// HealthCheck func - Use case: report whether the state store is reachable
func (s *StorefrontService) HealthCheck(ctx context.Context) error {
	return s.states.Ping(ctx)
}

func productCaption(p *domain.Product) string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.PriceDisplay != "" {
		b.WriteString("\nPrice: ")
		b.WriteString(p.PriceDisplay)
	}
	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(p.Description)
	}
	return b.String()
}

func productRows(productID string) [][]domain.Button {
	add := make([]domain.Button, 0, len(weightLabels))
	for _, label := range weightLabels {
		add = append(add, domain.Button{
			Label:  label,
			Action: domain.Action{Kind: domain.ActionAddToCart, ID: productID},
		})
	}
	return [][]domain.Button{
		add,
		{
			{Label: labelShowCart, Action: domain.Action{Kind: domain.ActionViewCart}},
			{Label: labelCatalog, Action: domain.Action{Kind: domain.ActionShowCatalog}},
		},
	}
}

func cartRender(cart *domain.Cart, maxButtonsInRow int) domain.Render {
	footer := []domain.Button{{Label: labelMenu, Action: domain.Action{Kind: domain.ActionShowCatalog}}}
	if cart.IsEmpty() {
		return domain.MenuRender(textCartEmpty, [][]domain.Button{footer})
	}

	lines := make([]string, 0, len(cart.Items))
	remove := make([]domain.Button, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, fmt.Sprintf("%s\nQuantity: %d", item.Name, item.Quantity))
		remove = append(remove, domain.Button{
			Label:  fmt.Sprintf(labelRemove, item.Name),
			Action: domain.Action{Kind: domain.ActionRemoveItem, ID: item.ID},
		})
	}
	text := strings.Join(lines, "\n") + "\n\nTotal: " + cart.TotalDisplay

	footer = append(footer, domain.Button{Label: labelPay, Action: domain.Action{Kind: domain.ActionPay}})
	rows := append(domain.ChunkButtons(remove, maxButtonsInRow), footer)
	return domain.MenuRender(text, rows)
}
