package domain

import (
	"fmt"
	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetCart        = "cart retrieved successfully"
	MessageSuccessAddToCart      = "item added to cart successfully"
	MessageSuccessUpdateCartItem = "cart item updated successfully"
	MessageSuccessRemoveCartItem = "cart item removed successfully"

	MessageFailedGetCart        = "failed to retrieve cart"
	MessageFailedAddToCart      = "failed to add item to cart"
	MessageFailedUpdateCartItem = "failed to update cart item"
	MessageFailedRemoveCartItem = "failed to remove cart item"

	ErrCartItemNotFound = fmt.Errorf("cart item %w", ErrNotFound)
)

type (
	AddToCartRequest struct {
		FoodID   string `json:"food_id" validate:"required,uuid"`
		Quantity int    `json:"quantity" validate:"required,min=1"`
	}

	UpdateCartItemRequest struct {
		Quantity int `json:"quantity" validate:"required,min=1"`
	}

	CartItemResponse struct {
		ID        string          `json:"id"`
		FoodID    string          `json:"food_id"`
		FoodName  string          `json:"food_name"`
		UnitPrice decimal.Decimal `json:"unit_price"`
		Quantity  int             `json:"quantity"`
		Subtotal  decimal.Decimal `json:"subtotal"`
	}

	CartResponse struct {
		Items []*CartItemResponse `json:"items"`
		Total decimal.Decimal     `json:"total"`
	}
)
