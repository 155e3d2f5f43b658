package order

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/internal/testutil"
	"FlashFoodDelivery/pkg/cart"
	"FlashFoodDelivery/pkg/database"
	"FlashFoodDelivery/pkg/menu"
	"FlashFoodDelivery/pkg/user"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"testing"
)

type testEnv struct {
	db     *gorm.DB
	svc    OrderService
	orders OrderRepository
	carts  cart.CartRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	return newTestEnvWithCart(t, db, cart.NewCartRepository(db))
}

func newTestEnvWithCart(t *testing.T, db *gorm.DB, carts cart.CartRepository) *testEnv {
	t.Helper()
	orders := NewOrderRepository(db)
	svc := NewOrderService(
		orders,
		carts,
		menu.NewMenuRepository(db),
		user.NewUserRepository(db),
		database.NewTransactor(db),
		DefaultSchedule(),
	)
	return &testEnv{db: db, svc: svc, orders: orders, carts: carts}
}

// placeOrder checks out a single-item cart for a fresh member.
func (e *testEnv) placeOrder(t *testing.T) (*entities.User, domain.OrderResponse) {
	t.Helper()
	member := testutil.CreateUser(t, e.db, domain.RoleUser)
	food := testutil.CreateFoodItem(t, e.db, "Nasi Goreng", 20)
	testutil.CreateCartRow(t, e.db, member.ID, food.ID, 1)

	order, err := e.svc.Checkout(context.Background(), member.ID, domain.CheckoutRequest{Address: "Jl. Sudirman 5"})
	require.NoError(t, err)
	return member, order
}

func (e *testEnv) count(t *testing.T, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// requireConsistent checks that the order row mirrors its newest ledger entry
// and that its total matches its details.
func (e *testEnv) requireConsistent(t *testing.T, orderID string) {
	t.Helper()

	var order entities.Order
	require.NoError(t, e.db.Preload("OrderDetails").Where("id = ?", orderID).First(&order).Error)

	var bySeq, byTime entities.OrderStatus
	require.NoError(t, e.db.Where("order_id = ?", orderID).Order("seq desc").First(&bySeq).Error)
	require.NoError(t, e.db.Where("order_id = ?", orderID).Order("created_at desc").Order("seq desc").First(&byTime).Error)

	assert.Equal(t, bySeq.ID, byTime.ID, "ledger sequence and time order disagree")
	assert.Equal(t, bySeq.OrderStatusName, order.StatusOrder)
	assert.Equal(t, bySeq.Seq, order.StatusSeq)
	assert.True(t, RecalculateTotal(order.OrderDetails).Equal(order.TotalPrice),
		"total %s does not match details", order.TotalPrice)
}
