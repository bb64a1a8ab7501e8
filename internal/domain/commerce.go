package domain

import "time"

// Credential is the shared bearer token used for every backend call.
// AccessToken is non-empty iff ExpiresAt is set.
type Credential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// IsZero reports whether no credential has been obtained yet
func (c Credential) IsZero() bool {
	return c.AccessToken == ""
}

// NeedsRefresh reports whether the credential must be refreshed at now,
// i.e. it is missing or now is at or after ExpiresAt minus skew.
func (c Credential) NeedsRefresh(now time.Time, skew time.Duration) bool {
	if c.IsZero() {
		return true
	}
	return !now.Before(c.ExpiresAt.Add(-skew))
}

// Product is a catalog snapshot fetched per request
type Product struct {
	ID           string
	Name         string
	Description  string
	PriceDisplay string
	MainImageID  string
}

// CartItem is one line of a remote cart. ID identifies the line inside the
// cart and differs from ProductID.
type CartItem struct {
	ID        string
	ProductID string
	Name      string
	Quantity  int
}

// Cart is derived from two backend reads, never stored locally
type Cart struct {
	Items        []CartItem
	TotalDisplay string
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// Customer is created once per user during checkout. ID is the chat user id.
type Customer struct {
	ID    string
	Name  string
	Email string
}
