package http

type (
	// UserParams struct - path parameters of the admin endpoints
	UserParams struct {
		UserID string `params:"user_id" validate:"required,max=64,printascii"`
	}
)
