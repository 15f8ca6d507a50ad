package httpserver

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email"    validate:"required,max=120"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AddToCartRequest struct {
	UserID    string `json:"user_id"    validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity"   validate:"omitempty,min=1"`
}

type UpdateCartRequest struct {
	CartItemID string `json:"cart_item_id" validate:"required"`
	Quantity   int    `json:"quantity"     validate:"min=1"`
}
