package cart

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/internal/testutil"
	"FlashFoodDelivery/pkg/menu"
	"context"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestAddToCartMergesSameFood(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewCartService(NewCartRepository(db), menu.NewMenuRepository(db))

	user := testutil.CreateUser(t, db, domain.RoleUser)
	burger := testutil.CreateFoodItem(t, db, "Burger", 10)
	fries := testutil.CreateFoodItem(t, db, "Fries", 5)

	_, err := svc.AddToCart(ctx, user.ID, domain.AddToCartRequest{FoodID: burger.ID.String(), Quantity: 1})
	require.NoError(t, err)
	item, err := svc.AddToCart(ctx, user.ID, domain.AddToCartRequest{FoodID: burger.ID.String(), Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	_, err = svc.AddToCart(ctx, user.ID, domain.AddToCartRequest{FoodID: fries.ID.String(), Quantity: 1})
	require.NoError(t, err)

	res, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(25)), "total %s", res.Total)
}

func TestAddToCartRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewCartService(NewCartRepository(db), menu.NewMenuRepository(db))

	user := testutil.CreateUser(t, db, domain.RoleUser)
	burger := testutil.CreateFoodItem(t, db, "Burger", 10)
	retired := testutil.CreateFoodItem(t, db, "Retired", 10)
	require.NoError(t, db.Model(retired).Update("food_status", domain.FoodStatusInactive).Error)

	_, err := svc.AddToCart(ctx, user.ID, domain.AddToCartRequest{FoodID: burger.ID.String(), Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.AddToCart(ctx, user.ID, domain.AddToCartRequest{FoodID: uuid.NewString(), Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.AddToCart(ctx, user.ID, domain.AddToCartRequest{FoodID: retired.ID.String(), Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewCartService(NewCartRepository(db), menu.NewMenuRepository(db))

	owner := testutil.CreateUser(t, db, domain.RoleUser)
	other := testutil.CreateUser(t, db, domain.RoleUser)
	burger := testutil.CreateFoodItem(t, db, "Burger", 10)
	row := testutil.CreateCartRow(t, db, owner.ID, burger.ID, 1)

	updated, err := svc.UpdateCartItem(ctx, owner.ID, row.ID.String(), domain.UpdateCartItemRequest{Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.True(t, updated.Subtotal.Equal(decimal.NewFromInt(30)))

	_, err = svc.UpdateCartItem(ctx, other.ID, row.ID.String(), domain.UpdateCartItemRequest{Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)

	assert.ErrorIs(t, svc.RemoveCartItem(ctx, other.ID, row.ID.String()), domain.ErrCartItemNotFound)
	require.NoError(t, svc.RemoveCartItem(ctx, owner.ID, row.ID.String()))

	var count int64
	require.NoError(t, db.Model(&entities.Cart{}).Where("user_id = ?", owner.ID).Count(&count).Error)
	assert.Zero(t, count)
}
