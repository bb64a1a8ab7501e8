package moltin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-bot/configs"
	"storefront-bot/internal/domain"
	"storefront-bot/internal/ports/output"
	"storefront-bot/pkg/validator"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.moltin.com"
	defaultTimeout = 15 * time.Second
	maxBodySize    = 1 << 20
)

// Compile-time check to ensure CommerceClientAdapter implements CommerceClient interface
var _ output.CommerceClient = (*CommerceClientAdapter)(nil)

// CommerceClientAdapter struct - Output adapter for the commerce backend REST API
type CommerceClientAdapter struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	validator  validator.Validator
}

// NewCommerceClientAdapter func - Creates the commerce adapter and the token cache it authenticates with
func NewCommerceClientAdapter(config configs.Moltin) (*CommerceClientAdapter, *TokenCache, error) {
	if config.ClientID == "" {
		return nil, nil, fmt.Errorf("%w: moltin client id is required", domain.ErrInvalidRequest)
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	skew := DefaultTokenSkew
	if config.TokenSkew > 0 {
		skew = time.Duration(config.TokenSkew) * time.Second
	}

	tokens := NewTokenCache(httpClient, baseURL, config.ClientID, skew)
	adapter := newCommerceClientAdapter(httpClient, baseURL, tokens)

	logrus.Infof("Commerce client adapter initialized with base URL: %s, timeout: %v", baseURL, timeout)

	return adapter, tokens, nil
}

func newCommerceClientAdapter(httpClient *http.Client, baseURL string, tokens TokenSource) *CommerceClientAdapter {
	return &CommerceClientAdapter{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		validator:  validator.New(),
	}
}

// ListProducts - GET /v2/products
func (a *CommerceClientAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var resp productListResponse
	err := a.do(ctx, apiCall{op: "list products", method: http.MethodGet, path: "/v2/products", out: &resp})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(resp.Data))
	for _, p := range resp.Data {
		products = append(products, toDomainProduct(p))
	}

	logrus.Debugf("Product list received: %d products", len(products))
	return products, nil
}

// GetProduct - GET /v2/products/{id}
func (a *CommerceClientAdapter) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	var resp productResponse
	err := a.do(ctx, apiCall{
		op:     "get product",
		method: http.MethodGet,
		path:   "/v2/products/" + url.PathEscape(productID),
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}

	product := toDomainProduct(*resp.Data)
	logrus.Debugf("Product details received: id=%s", product.ID)
	return &product, nil
}

// ProductImageURL - GET /v2/files/{imageId}
func (a *CommerceClientAdapter) ProductImageURL(ctx context.Context, product *domain.Product) (string, error) {
	if product == nil || product.MainImageID == "" {
		return "", domain.NewMalformedResponseError("get product image", errors.New("product has no main image"))
	}

	var resp fileResponse
	err := a.do(ctx, apiCall{
		op:     "get product image",
		method: http.MethodGet,
		path:   "/v2/files/" + url.PathEscape(product.MainImageID),
		out:    &resp,
	})
	if err != nil {
		return "", err
	}

	logrus.Debugf("Product image link received: product=%s", product.ID)
	return resp.Data.Link.Href, nil
}

// AddCartItem - POST /v2/carts/{userId}/items
func (a *CommerceClientAdapter) AddCartItem(ctx context.Context, userID, productID string, quantity int) error {
	body := cartItemRequest{Data: cartItemRequestData{ID: productID, Type: "cart_item", Quantity: quantity}}
	return a.do(ctx, apiCall{
		op:     "add cart item",
		method: http.MethodPost,
		path:   cartPath(userID) + "/items",
		body:   body,
	})
}

// ListCartItems - GET /v2/carts/{userId}/items
func (a *CommerceClientAdapter) ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	var resp cartItemListResponse
	err := a.do(ctx, apiCall{op: "list cart items", method: http.MethodGet, path: cartPath(userID) + "/items", out: &resp})
	if err != nil {
		return nil, err
	}

	items := make([]domain.CartItem, 0, len(resp.Data))
	for _, item := range resp.Data {
		items = append(items, domain.CartItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
		})
	}
	return items, nil
}

// CartTotal - GET /v2/carts/{userId}
func (a *CommerceClientAdapter) CartTotal(ctx context.Context, userID string) (string, error) {
	var resp cartResponse
	err := a.do(ctx, apiCall{op: "get cart", method: http.MethodGet, path: cartPath(userID), out: &resp})
	if err != nil {
		return "", err
	}
	return resp.Data.Meta.DisplayPrice.WithTax.Formatted, nil
}

// RemoveCartItem - DELETE /v2/carts/{userId}/items/{itemId}
func (a *CommerceClientAdapter) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	return a.do(ctx, apiCall{
		op:     "remove cart item",
		method: http.MethodDelete,
		path:   cartPath(userID) + "/items/" + url.PathEscape(itemID),
	})
}

// UpsertCustomer - POST /v2/customers/{userId}. 409 means the customer already exists.
func (a *CommerceClientAdapter) UpsertCustomer(ctx context.Context, customer domain.Customer) error {
	body := customerRequest{Data: customerRequestData{Type: "customer", Name: customer.Name, Email: customer.Email}}
	return a.do(ctx, apiCall{
		op:     "upsert customer",
		method: http.MethodPost,
		path:   "/v2/customers/" + url.PathEscape(customer.ID),
		body:   body,
		accept: []int{http.StatusConflict},
	})
}

// apiCall describes one backend request. out is decoded from a 2xx body when
// set; statuses in accept count as success without decoding.
type apiCall struct {
	op     string
	method string
	path   string
	body   interface{}
	out    interface{}
	accept []int
}

// do executes the call with the cached credential. A 401 forces one token
// refresh and one retry; a second 401 is an AuthError.
func (a *CommerceClientAdapter) do(ctx context.Context, call apiCall) error {
	var payload []byte
	if call.body != nil {
		var err error
		payload, err = json.Marshal(call.body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", call.op, err)
		}
	}

	header, err := a.tokens.AuthHeader(ctx)
	if err != nil {
		return err
	}

	resp, err := a.send(ctx, call, payload, header)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		logrus.Warnf("%s: backend returned 401, refreshing token and retrying once", call.op)

		if err := a.tokens.ForceRefresh(ctx, header); err != nil {
			return err
		}
		if header, err = a.tokens.AuthHeader(ctx); err != nil {
			return err
		}

		resp, err = a.send(ctx, call, payload, header)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)
			return &domain.AuthError{Reason: call.op + ": still unauthorized after token refresh"}
		}
	}
	defer resp.Body.Close()

	return a.handleResponse(call, resp)
}

func (a *CommerceClientAdapter) send(ctx context.Context, call apiCall, payload []byte, header string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, a.baseURL+call.path, body)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", call.op, err)
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(call.op, err)
	}
	return resp, nil
}

func (a *CommerceClientAdapter) handleResponse(call apiCall, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return classifyTransportError(call.op, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if call.out == nil {
			return nil
		}
		if err := json.Unmarshal(body, call.out); err != nil {
			return domain.NewMalformedResponseError(call.op, err)
		}
		if err := a.validator.ValidateStruct(call.out); err != nil {
			return domain.NewMalformedResponseError(call.op, err)
		}
		return nil
	}

	for _, status := range call.accept {
		if resp.StatusCode == status {
			logrus.Debugf("%s: status %d accepted", call.op, resp.StatusCode)
			return nil
		}
	}

	return domain.NewHTTPStatusError(call.op, resp.StatusCode, errorDetail(body))
}

// classifyTransportError maps client-side failures to Timeout or Unreachable
func classifyTransportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &domain.BackendError{Kind: domain.BackendErrorTimeout, Op: op, Err: err}
	}
	return &domain.BackendError{Kind: domain.BackendErrorUnreachable, Op: op, Err: err}
}

// errorDetail extracts the backend's error titles, best effort
func errorDetail(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && len(errResp.Errors) > 0 {
		parts := make([]string, 0, len(errResp.Errors))
		for _, e := range errResp.Errors {
			part := e.Title
			if e.Detail != "" {
				part += ": " + e.Detail
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, "; ")
	}
	return truncate(strings.TrimSpace(string(body)), 200)
}

func toDomainProduct(p productData) domain.Product {
	product := domain.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		PriceDisplay: p.Meta.DisplayPrice.WithTax.Formatted,
	}
	if p.Relationships.MainImage != nil && p.Relationships.MainImage.Data != nil {
		product.MainImageID = p.Relationships.MainImage.Data.ID
	}
	return product
}

func cartPath(userID string) string {
	return "/v2/carts/" + url.PathEscape(userID)
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	resp.Body.Close()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
