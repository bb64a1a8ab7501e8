package moltin

// Wire DTOs for the commerce backend. validate tags mark the fields the
// adapter cannot do without; a 2xx body failing them is a malformed response.

type tokenResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
	Expires     int64  `json:"expires"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type formattedPrice struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type displayPrice struct {
	WithTax formattedPrice `json:"with_tax"`
}

type productMeta struct {
	DisplayPrice displayPrice `json:"display_price"`
}

type relationshipData struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type relationship struct {
	Data *relationshipData `json:"data"`
}

type productRelationships struct {
	MainImage *relationship `json:"main_image"`
}

type productData struct {
	ID            string               `json:"id" validate:"required"`
	Name          string               `json:"name" validate:"required"`
	Description   string               `json:"description"`
	Meta          productMeta          `json:"meta"`
	Relationships productRelationships `json:"relationships"`
}

type productListResponse struct {
	Data []productData `json:"data" validate:"required,dive"`
}

type productResponse struct {
	Data *productData `json:"data" validate:"required"`
}

type fileLink struct {
	Href string `json:"href" validate:"required,url"`
}

type fileData struct {
	Link fileLink `json:"link"`
}

type fileResponse struct {
	Data *fileData `json:"data" validate:"required"`
}

type cartItemData struct {
	ID        string `json:"id" validate:"required"`
	ProductID string `json:"product_id"`
	Name      string `json:"name" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type cartItemListResponse struct {
	Data []cartItemData `json:"data" validate:"required,dive"`
}

type cartTotalPrice struct {
	Formatted string `json:"formatted" validate:"required"`
}

type cartDisplayPrice struct {
	WithTax cartTotalPrice `json:"with_tax"`
}

type cartMeta struct {
	DisplayPrice cartDisplayPrice `json:"display_price"`
}

type cartData struct {
	Meta cartMeta `json:"meta"`
}

type cartResponse struct {
	Data *cartData `json:"data" validate:"required"`
}

type cartItemRequestData struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

type cartItemRequest struct {
	Data cartItemRequestData `json:"data"`
}

type customerRequestData struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerRequest struct {
	Data customerRequestData `json:"data"`
}

type apiError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}
