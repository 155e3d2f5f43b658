package cart

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/pkg/menu"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	CartService interface {
		AddToCart(ctx context.Context, userID string, req domain.AddToCartRequest) (domain.CartItemResponse, error)
		UpdateCartItem(ctx context.Context, userID string, cartID string, req domain.UpdateCartItemRequest) (domain.CartItemResponse, error)
		RemoveCartItem(ctx context.Context, userID string, cartID string) error
		GetCart(ctx context.Context, userID string) (domain.CartResponse, error)
	}

	cartService struct {
		cartRepository CartRepository
		menuRepository menu.MenuRepository
	}
)

func NewCartService(cartRepository CartRepository, menuRepository menu.MenuRepository) CartService {
	return &cartService{
		cartRepository: cartRepository,
		menuRepository: menuRepository,
	}
}

// AddToCart adds quantity to the user's existing row for the food item, or creates one.
func (s *cartService) AddToCart(ctx context.Context, userID string, req domain.AddToCartRequest) (domain.CartItemResponse, error) {
	if req.Quantity <= 0 {
		return domain.CartItemResponse{}, domain.ErrInvalidQuantity
	}

	foodItem, err := s.getActiveFoodItem(ctx, req.FoodID)
	if err != nil {
		return domain.CartItemResponse{}, err
	}

	row, err := s.cartRepository.GetCartRowByFood(ctx, userID, req.FoodID)
	switch {
	case err == nil:
		row.Quantity += req.Quantity
		if err := s.cartRepository.UpdateCartRow(ctx, row); err != nil {
			return domain.CartItemResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = &entities.Cart{
			ID:       uuid.New(),
			UserID:   userID,
			FoodID:   foodItem.ID,
			Quantity: req.Quantity,
		}
		if err := s.cartRepository.AddCartRow(ctx, row); err != nil {
			return domain.CartItemResponse{}, err
		}
	default:
		return domain.CartItemResponse{}, err
	}

	row.Food = foodItem
	return toCartItemResponse(row), nil
}

func (s *cartService) UpdateCartItem(ctx context.Context, userID string, cartID string, req domain.UpdateCartItemRequest) (domain.CartItemResponse, error) {
	if req.Quantity <= 0 {
		return domain.CartItemResponse{}, domain.ErrInvalidQuantity
	}

	row, err := s.getCartRow(ctx, userID, cartID)
	if err != nil {
		return domain.CartItemResponse{}, err
	}

	row.Quantity = req.Quantity
	if err := s.cartRepository.UpdateCartRow(ctx, row); err != nil {
		return domain.CartItemResponse{}, err
	}

	return toCartItemResponse(row), nil
}

func (s *cartService) RemoveCartItem(ctx context.Context, userID string, cartID string) error {
	row, err := s.getCartRow(ctx, userID, cartID)
	if err != nil {
		return err
	}

	deleted, err := s.cartRepository.DeleteCartRows(ctx, userID, []uuid.UUID{row.ID})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (s *cartService) GetCart(ctx context.Context, userID string) (domain.CartResponse, error) {
	rows, err := s.cartRepository.GetCartRowsByUser(ctx, userID)
	if err != nil {
		return domain.CartResponse{}, err
	}

	res := domain.CartResponse{
		Items: make([]*domain.CartItemResponse, 0, len(rows)),
		Total: decimal.Zero,
	}
	for _, row := range rows {
		item := toCartItemResponse(row)
		res.Items = append(res.Items, &item)
		res.Total = res.Total.Add(item.Subtotal)
	}
	return res, nil
}

func (s *cartService) getCartRow(ctx context.Context, userID string, cartID string) (*entities.Cart, error) {
	if _, err := uuid.Parse(cartID); err != nil {
		return nil, domain.ErrCartItemNotFound
	}
	row, err := s.cartRepository.GetCartRowByID(ctx, userID, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *cartService) getActiveFoodItem(ctx context.Context, foodID string) (*entities.MenuFoodItem, error) {
	if _, err := uuid.Parse(foodID); err != nil {
		return nil, domain.ErrFoodItemNotFound
	}
	foodItem, err := s.menuRepository.GetFoodItemByID(ctx, foodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	if foodItem.FoodStatus != domain.FoodStatusActive {
		return nil, domain.ErrFoodItemNotFound
	}
	return foodItem, nil
}

func toCartItemResponse(row *entities.Cart) domain.CartItemResponse {
	res := domain.CartItemResponse{
		ID:       row.ID.String(),
		FoodID:   row.FoodID.String(),
		Quantity: row.Quantity,
	}
	if row.Food != nil {
		res.FoodName = row.Food.FoodName
		res.UnitPrice = row.Food.UnitPrice
		res.Subtotal = row.Food.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity)))
	}
	return res
}
