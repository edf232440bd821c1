package models

// CartItem is one line of a customer's cart. Price is in minor currency units.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
	Quantity int    `json:"quantity"`
}

// AddCartItemRequest adds quantity (default 1) of a product to the cart.
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// Charges are the derived checkout amounts, all in minor units.
type Charges struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// CartView is what the cart endpoints return.
type CartView struct {
	Items         []CartItem `json:"items"`
	TotalQuantity int        `json:"totalQuantity"`
	Charges       Charges    `json:"charges"`
}
