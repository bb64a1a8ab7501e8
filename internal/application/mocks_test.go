package application

import (
	"context"
	"sync"

	"storefront-bot/internal/domain"
)

// Mock implementations for testing

// MockCommerceClient implements output.CommerceClient for testing.
// Unset funcs return empty successful results.
type MockCommerceClient struct {
	ListProductsFunc    func(ctx context.Context) ([]domain.Product, error)
	GetProductFunc      func(ctx context.Context, productID string) (*domain.Product, error)
	ProductImageURLFunc func(ctx context.Context, product *domain.Product) (string, error)
	AddCartItemFunc     func(ctx context.Context, userID, productID string, quantity int) error
	ListCartItemsFunc   func(ctx context.Context, userID string) ([]domain.CartItem, error)
	CartTotalFunc       func(ctx context.Context, userID string) (string, error)
	RemoveCartItemFunc  func(ctx context.Context, userID, itemID string) error
	UpsertCustomerFunc  func(ctx context.Context, customer domain.Customer) error

	mu sync.Mutex

	// Captured values for assertions
	AddCartItemCalls    []addCartItemCall
	RemoveCartItemCalls []string
	UpsertCustomerCalls []domain.Customer
}

type addCartItemCall struct {
	UserID    string
	ProductID string
	Quantity  int
}

func (m *MockCommerceClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx)
	}
	return nil, nil
}

func (m *MockCommerceClient) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, productID)
	}
	return &domain.Product{ID: productID}, nil
}

func (m *MockCommerceClient) ProductImageURL(ctx context.Context, product *domain.Product) (string, error) {
	if m.ProductImageURLFunc != nil {
		return m.ProductImageURLFunc(ctx, product)
	}
	return "", nil
}

func (m *MockCommerceClient) AddCartItem(ctx context.Context, userID, productID string, quantity int) error {
	m.mu.Lock()
	m.AddCartItemCalls = append(m.AddCartItemCalls, addCartItemCall{userID, productID, quantity})
	m.mu.Unlock()
	if m.AddCartItemFunc != nil {
		return m.AddCartItemFunc(ctx, userID, productID, quantity)
	}
	return nil
}

func (m *MockCommerceClient) ListCartItems(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if m.ListCartItemsFunc != nil {
		return m.ListCartItemsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCommerceClient) CartTotal(ctx context.Context, userID string) (string, error) {
	if m.CartTotalFunc != nil {
		return m.CartTotalFunc(ctx, userID)
	}
	return "", nil
}

func (m *MockCommerceClient) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	m.mu.Lock()
	m.RemoveCartItemCalls = append(m.RemoveCartItemCalls, itemID)
	m.mu.Unlock()
	if m.RemoveCartItemFunc != nil {
		return m.RemoveCartItemFunc(ctx, userID, itemID)
	}
	return nil
}

func (m *MockCommerceClient) UpsertCustomer(ctx context.Context, customer domain.Customer) error {
	m.mu.Lock()
	m.UpsertCustomerCalls = append(m.UpsertCustomerCalls, customer)
	m.mu.Unlock()
	if m.UpsertCustomerFunc != nil {
		return m.UpsertCustomerFunc(ctx, customer)
	}
	return nil
}

// MockStateStore implements output.StateStore for testing on top of a map
type MockStateStore struct {
	GetErr   error
	SetErr   error
	ClearErr error
	PingErr  error

	mu     sync.Mutex
	states map[string]domain.ConversationState

	// Track calls
	SetCalls   []domain.ConversationState
	ClearCalls []string
}

func (m *MockStateStore) Get(ctx context.Context, userID string) (domain.ConversationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	if state, ok := m.states[userID]; ok {
		return state, nil
	}
	return domain.ConversationStateBrowsing, nil
}

func (m *MockStateStore) Set(ctx context.Context, userID string, state domain.ConversationState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls = append(m.SetCalls, state)
	if m.SetErr != nil {
		return m.SetErr
	}
	if m.states == nil {
		m.states = make(map[string]domain.ConversationState)
	}
	m.states[userID] = state
	return nil
}

func (m *MockStateStore) Clear(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls = append(m.ClearCalls, userID)
	if m.ClearErr != nil {
		return m.ClearErr
	}
	delete(m.states, userID)
	return nil
}

func (m *MockStateStore) Ping(ctx context.Context) error {
	return m.PingErr
}

// current returns the stored state without going through Get's error path
func (m *MockStateStore) current(userID string) domain.ConversationState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.states[userID]; ok {
		return state
	}
	return domain.ConversationStateBrowsing
}

// MockProfileLookup implements output.ProfileLookup for testing
type MockProfileLookup struct {
	DisplayNameFunc func(ctx context.Context, userID string) (string, error)
}

func (m *MockProfileLookup) DisplayName(ctx context.Context, userID string) (string, error) {
	if m.DisplayNameFunc != nil {
		return m.DisplayNameFunc(ctx, userID)
	}
	return "", nil
}

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc func(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
	PushMessageFunc  func(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)

	mu sync.Mutex

	// Captured values for assertions
	LastReplyRequest *domain.LineReplyMessageRequest
	ReplyRequests    []domain.LineReplyMessageRequest
	PushRequests     []domain.LinePushMessageRequest
}

func (m *MockLineClient) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	m.mu.Lock()
	m.LastReplyRequest = &request
	m.ReplyRequests = append(m.ReplyRequests, request)
	m.mu.Unlock()
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

func (m *MockLineClient) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	m.mu.Lock()
	m.PushRequests = append(m.PushRequests, request)
	m.mu.Unlock()
	if m.PushMessageFunc != nil {
		return m.PushMessageFunc(request)
	}
	return &domain.LineMessageResponse{Status: "ok"}, nil
}

// countErrorRenders returns how many renders are marked as errors
func countErrorRenders(renders []domain.Render) int {
	n := 0
	for _, r := range renders {
		if r.Error {
			n++
		}
	}
	return n
}

// buttonActions flattens the rows of a render into their actions
func buttonActions(render domain.Render) []domain.Action {
	var actions []domain.Action
	for _, row := range render.Rows {
		for _, b := range row {
			actions = append(actions, b.Action)
		}
	}
	return actions
}
