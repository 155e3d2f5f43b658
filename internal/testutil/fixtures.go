package testutil

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"testing"
)

func CreateUser(t *testing.T, db *gorm.DB, role string) *entities.User {
	t.Helper()

	id := uuid.NewString()
	user := &entities.User{
		ID:       id,
		FullName: "User " + id[:8],
		Email:    id[:8] + "@flashfood.test",
		Address:  "Jl. Merdeka 1",
		Status:   domain.UserStatusActive,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateFoodItem(t *testing.T, db *gorm.DB, name string, price int64) *entities.MenuFoodItem {
	t.Helper()

	item := &entities.MenuFoodItem{
		ID:         uuid.New(),
		FoodName:   name,
		FoodStatus: domain.FoodStatusActive,
		UnitPrice:  decimal.NewFromInt(price),
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func CreateCartRow(t *testing.T, db *gorm.DB, userID string, foodID uuid.UUID, quantity int) *entities.Cart {
	t.Helper()

	row := &entities.Cart{
		ID:       uuid.New(),
		UserID:   userID,
		FoodID:   foodID,
		Quantity: quantity,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}
