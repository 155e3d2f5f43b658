package order

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/internal/testutil"
	"FlashFoodDelivery/pkg/cart"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

// brokenCartRepository fails when the converted cart rows are deleted, after
// the order and its details have been written.
type brokenCartRepository struct {
	cart.CartRepository
}

func (brokenCartRepository) DeleteCartRows(context.Context, string, []uuid.UUID) (int64, error) {
	return 0, errors.New("cart store unavailable")
}

func TestCheckoutConvertsCart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	member := testutil.CreateUser(t, env.db, domain.RoleUser)
	foodA := testutil.CreateFoodItem(t, env.db, "Sate Ayam", 10)
	foodB := testutil.CreateFoodItem(t, env.db, "Es Teh", 5)
	testutil.CreateCartRow(t, env.db, member.ID, foodA.ID, 2)
	testutil.CreateCartRow(t, env.db, member.ID, foodB.ID, 1)

	order, err := env.svc.Checkout(ctx, member.ID, domain.CheckoutRequest{Address: "Jl. Thamrin 10"})
	require.NoError(t, err)

	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(25)), "total %s", order.TotalPrice)
	assert.Len(t, order.Details, 2)
	assert.Equal(t, domain.StatusPlaced, order.Status)
	assert.Equal(t, member.ID, *order.MemberID)

	assert.EqualValues(t, 1, env.count(t, &entities.Order{}, ""))
	assert.EqualValues(t, 2, env.count(t, &entities.OrderDetail{}, "order_id = ?", order.ID))
	assert.EqualValues(t, 1, env.count(t, &entities.OrderStatus{}, "order_id = ? AND order_status_name = ?", order.ID, domain.StatusPlaced))
	assert.Zero(t, env.count(t, &entities.Cart{}, "user_id = ?", member.ID))
	env.requireConsistent(t, order.ID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	member := testutil.CreateUser(t, env.db, domain.RoleUser)

	_, err := env.svc.Checkout(context.Background(), member.ID, domain.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Zero(t, env.count(t, &entities.Order{}, ""))
}

func TestCheckoutUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Checkout(context.Background(), uuid.NewString(), domain.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckoutIsAtomic(t *testing.T) {
	db := testutil.NewDB(t)
	env := newTestEnvWithCart(t, db, brokenCartRepository{cart.NewCartRepository(db)})

	member := testutil.CreateUser(t, db, domain.RoleUser)
	foodA := testutil.CreateFoodItem(t, db, "Sate Ayam", 10)
	foodB := testutil.CreateFoodItem(t, db, "Es Teh", 5)
	testutil.CreateCartRow(t, db, member.ID, foodA.ID, 2)
	testutil.CreateCartRow(t, db, member.ID, foodB.ID, 1)

	_, err := env.svc.Checkout(context.Background(), member.ID, domain.CheckoutRequest{})
	require.Error(t, err)

	assert.Zero(t, env.count(t, &entities.Order{}, ""))
	assert.Zero(t, env.count(t, &entities.OrderDetail{}, ""))
	assert.Zero(t, env.count(t, &entities.OrderStatus{}, ""))
	assert.EqualValues(t, 2, env.count(t, &entities.Cart{}, "user_id = ?", member.ID))
}

func TestCheckoutCollapsesDuplicateRows(t *testing.T) {
	env := newTestEnv(t)

	member := testutil.CreateUser(t, env.db, domain.RoleUser)
	food := testutil.CreateFoodItem(t, env.db, "Bakso", 8)
	testutil.CreateCartRow(t, env.db, member.ID, food.ID, 1)
	testutil.CreateCartRow(t, env.db, member.ID, food.ID, 2)

	order, err := env.svc.Checkout(context.Background(), member.ID, domain.CheckoutRequest{})
	require.NoError(t, err)

	require.Len(t, order.Details, 1)
	assert.Equal(t, 3, order.Details[0].Quantity)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(24)))
	assert.Equal(t, member.Address, order.Address)
	assert.Zero(t, env.count(t, &entities.Cart{}, "user_id = ?", member.ID))
}

func TestCheckoutSnapshotsUnitPrice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	member := testutil.CreateUser(t, env.db, domain.RoleUser)
	food := testutil.CreateFoodItem(t, env.db, "Soto", 12)
	testutil.CreateCartRow(t, env.db, member.ID, food.ID, 1)

	order, err := env.svc.Checkout(ctx, member.ID, domain.CheckoutRequest{})
	require.NoError(t, err)

	require.NoError(t, env.db.Model(food).Update("unit_price", decimal.NewFromInt(99)).Error)

	got, err := env.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Details, 1)
	assert.True(t, got.Details[0].UnitPrice.Equal(decimal.NewFromInt(12)))
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(12)))
}

func TestCheckoutRejectsInactiveFood(t *testing.T) {
	env := newTestEnv(t)

	member := testutil.CreateUser(t, env.db, domain.RoleUser)
	food := testutil.CreateFoodItem(t, env.db, "Rendang", 30)
	testutil.CreateCartRow(t, env.db, member.ID, food.ID, 1)
	require.NoError(t, env.db.Model(food).Update("food_status", domain.FoodStatusInactive).Error)

	_, err := env.svc.Checkout(context.Background(), member.ID, domain.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
	assert.Zero(t, env.count(t, &entities.Order{}, ""))
	assert.EqualValues(t, 1, env.count(t, &entities.Cart{}, "user_id = ?", member.ID))
}

func TestConcurrentCheckoutConvertsCartOnce(t *testing.T) {
	env := newTestEnv(t)

	member := testutil.CreateUser(t, env.db, domain.RoleUser)
	food := testutil.CreateFoodItem(t, env.db, "Martabak", 15)
	testutil.CreateCartRow(t, env.db, member.ID, food.ID, 2)

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Checkout(context.Background(), member.ID, domain.CheckoutRequest{})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrEmptyCart) || errors.Is(err, domain.ErrConcurrentUpdate), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.EqualValues(t, 1, env.count(t, &entities.Order{}, ""))
}

func TestCreateOrderDefaults(t *testing.T) {
	env := newTestEnv(t)

	member := testutil.CreateUser(t, env.db, domain.RoleUser)
	food := testutil.CreateFoodItem(t, env.db, "Gado Gado", 7)

	before := time.Now()
	order, err := env.svc.CreateOrder(context.Background(), member.ID, domain.CreateOrderRequest{
		Address: "Jl. Asia Afrika 8",
		Items: []domain.OrderItemRequest{
			{FoodID: food.ID.String(), Quantity: 2},
			{FoodID: food.ID.String(), Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, order.RequiredDate)
	require.NotNil(t, order.ShippedDate)
	assert.WithinDuration(t, before.Add(72*time.Hour), *order.RequiredDate, 5*time.Second)
	assert.WithinDuration(t, before.Add(120*time.Hour), *order.ShippedDate, 5*time.Second)
	assert.False(t, order.RequiredDate.Before(order.OrderDate))
	assert.False(t, order.ShippedDate.Before(*order.RequiredDate))

	require.Len(t, order.Details, 1)
	assert.Equal(t, 3, order.Details[0].Quantity)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(21)))
	env.requireConsistent(t, order.ID)
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)

	member := testutil.CreateUser(t, env.db, domain.RoleUser)
	food := testutil.CreateFoodItem(t, env.db, "Pecel", 6)
	inactive := testutil.CreateFoodItem(t, env.db, "Lontong", 6)
	require.NoError(t, env.db.Model(inactive).Update("food_status", domain.FoodStatusInactive).Error)

	now := time.Now()
	early := now.Add(-time.Hour)
	later := now.Add(48 * time.Hour)
	sooner := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		req  domain.CreateOrderRequest
		want error
	}{
		{
			name: "no items",
			req:  domain.CreateOrderRequest{Address: "x"},
			want: domain.ErrOrderHasNoItems,
		},
		{
			name: "zero quantity",
			req:  domain.CreateOrderRequest{Items: []domain.OrderItemRequest{{FoodID: food.ID.String(), Quantity: 0}}},
			want: domain.ErrInvalidQuantity,
		},
		{
			name: "negative quantity",
			req:  domain.CreateOrderRequest{Items: []domain.OrderItemRequest{{FoodID: food.ID.String(), Quantity: -2}}},
			want: domain.ErrInvalidQuantity,
		},
		{
			name: "missing food",
			req:  domain.CreateOrderRequest{Items: []domain.OrderItemRequest{{FoodID: uuid.NewString(), Quantity: 1}}},
			want: domain.ErrNotFound,
		},
		{
			name: "inactive food",
			req:  domain.CreateOrderRequest{Items: []domain.OrderItemRequest{{FoodID: inactive.ID.String(), Quantity: 1}}},
			want: domain.ErrFoodItemNotFound,
		},
		{
			name: "required before order date",
			req: domain.CreateOrderRequest{
				Items:        []domain.OrderItemRequest{{FoodID: food.ID.String(), Quantity: 1}},
				RequiredDate: &early,
			},
			want: domain.ErrInvalidSchedule,
		},
		{
			name: "shipped before required",
			req: domain.CreateOrderRequest{
				Items:        []domain.OrderItemRequest{{FoodID: food.ID.String(), Quantity: 1}},
				RequiredDate: &later,
				ShippedDate:  &sooner,
			},
			want: domain.ErrInvalidSchedule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.CreateOrder(context.Background(), member.ID, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Zero(t, env.count(t, &entities.Order{}, ""))
}

func TestGetUserOrders(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	member, placed := env.placeOrder(t)
	other := testutil.CreateUser(t, env.db, domain.RoleUser)

	orders, err := env.svc.GetUserOrders(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
	assert.Equal(t, "Nasi Goreng", orders[0].Details[0].FoodName)

	orders, err = env.svc.GetUserOrders(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	_, err = env.svc.GetOrder(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestRecalculateTotal(t *testing.T) {
	details := []*entities.OrderDetail{
		{Quantity: 3, UnitPrice: decimal.RequireFromString("1.10")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("0.20")},
	}
	assert.True(t, RecalculateTotal(details).Equal(decimal.RequireFromString("3.50")))
	assert.True(t, RecalculateTotal(nil).IsZero())
}
