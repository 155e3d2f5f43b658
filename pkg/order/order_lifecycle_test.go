package order

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/internal/testutil"
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name  string
		steps []string
		next  string
		want  error
	}{
		{name: "placed to delivered skips shipped", next: domain.StatusDelivered, want: domain.ErrInvalidTransition},
		{name: "placed to cancelled", next: domain.StatusCancelled},
		{name: "placed to shipped", next: domain.StatusShipped},
		{name: "shipped to delivered", steps: []string{domain.StatusShipped}, next: domain.StatusDelivered},
		{name: "shipped to cancelled", steps: []string{domain.StatusShipped}, next: domain.StatusCancelled},
		{name: "shipped back to placed", steps: []string{domain.StatusShipped}, next: domain.StatusPlaced, want: domain.ErrInvalidTransition},
		{name: "self transition", steps: []string{domain.StatusShipped}, next: domain.StatusShipped, want: domain.ErrInvalidTransition},
		{name: "after cancelled", steps: []string{domain.StatusCancelled}, next: domain.StatusShipped, want: domain.ErrInvalidTransition},
		{name: "cancel after cancelled", steps: []string{domain.StatusCancelled}, next: domain.StatusCancelled, want: domain.ErrInvalidTransition},
		{name: "after delivered", steps: []string{domain.StatusShipped, domain.StatusDelivered}, next: domain.StatusCancelled, want: domain.ErrInvalidTransition},
		{name: "unknown status", next: "Lost", want: domain.ErrInvalidTransition},
		{name: "case insensitive name", next: "shipped"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			env := newTestEnv(t)
			_, order := env.placeOrder(t)

			for _, step := range tt.steps {
				_, err := env.svc.AppendStatus(ctx, order.ID, step, nil)
				require.NoError(t, err)
				env.requireConsistent(t, order.ID)
			}

			entry, err := env.svc.AppendStatus(ctx, order.ID, tt.next, nil)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				require.NoError(t, err)
				assert.Equal(t, len(tt.steps)+2, entry.Seq)
			}
			env.requireConsistent(t, order.ID)

			history, err := env.svc.StatusHistory(ctx, order.ID)
			require.NoError(t, err)
			expected := len(tt.steps) + 1
			if tt.want == nil {
				expected++
			}
			assert.Len(t, history, expected)
		})
	}
}

func TestAppendStatusUnknownOrder(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.AppendStatus(context.Background(), uuid.NewString(), domain.StatusShipped, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.svc.MarkShipped(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestMarkShippedAndDeliveredSetDates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, order := env.placeOrder(t)

	_, err := env.svc.MarkShipped(ctx, order.ID)
	require.NoError(t, err)

	shipped, err := env.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, shipped.Status)
	require.NotNil(t, shipped.ShippedDate)
	require.NotNil(t, shipped.RequiredDate)
	assert.WithinDuration(t, time.Now(), *shipped.ShippedDate, 5*time.Second)
	assert.False(t, shipped.RequiredDate.After(*shipped.ShippedDate))
	assert.False(t, shipped.RequiredDate.Before(shipped.OrderDate))
	assert.Nil(t, shipped.DeliveredDate)

	_, err = env.svc.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)

	delivered, err := env.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, delivered.Status)
	require.NotNil(t, delivered.DeliveredDate)
	assert.False(t, delivered.DeliveredDate.Before(*delivered.ShippedDate))
	env.requireConsistent(t, order.ID)

	status, err := env.svc.CurrentStatus(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, status)
}

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, order := env.placeOrder(t)

	entry, err := env.svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, entry.Status)

	_, err = env.svc.MarkShipped(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	env.requireConsistent(t, order.ID)
}

func TestAssignShipper(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, order := env.placeOrder(t)

	first := testutil.CreateUser(t, env.db, domain.RoleShipper)
	second := testutil.CreateUser(t, env.db, domain.RoleShipper)

	entry, err := env.svc.AssignShipper(ctx, order.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPlaced, entry.Status)
	assert.Equal(t, first.ID, *entry.ShipperID)
	env.requireConsistent(t, order.ID)

	_, err = env.svc.AssignShipper(ctx, order.ID, second.ID)
	require.NoError(t, err)

	got, err := env.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ShipperID)
	assert.Equal(t, second.ID, *got.ShipperID)

	shipped, err := env.svc.MarkShipped(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, shipped.ShipperID)
	assert.Equal(t, second.ID, *shipped.ShipperID)

	history, err := env.svc.StatusHistory(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i, entry := range history {
		assert.Equal(t, i+1, entry.Seq)
	}
	env.requireConsistent(t, order.ID)
}

func TestAssignShipperRequiresPlacedOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, order := env.placeOrder(t)
	shipper := testutil.CreateUser(t, env.db, domain.RoleShipper)

	_, err := env.svc.MarkShipped(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.svc.AssignShipper(ctx, order.ID, shipper.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	env.requireConsistent(t, order.ID)
}

func TestAssignShipperRejectsUnknownShipper(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	member, order := env.placeOrder(t)

	_, err := env.svc.AssignShipper(ctx, order.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrShipperNotFound)

	_, err = env.svc.AssignShipper(ctx, order.ID, member.ID)
	assert.ErrorIs(t, err, domain.ErrShipperNotFound)

	_, err = env.svc.AppendStatus(ctx, order.ID, domain.StatusShipped, &member.ID)
	assert.ErrorIs(t, err, domain.ErrShipperNotFound)

	history, err := env.svc.StatusHistory(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestRecordFeedback(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	member, order := env.placeOrder(t)
	stranger := testutil.CreateUser(t, env.db, domain.RoleUser)

	_, err := env.svc.RecordFeedback(ctx, order.ID, stranger.ID, "cold food")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.svc.RecordFeedback(ctx, order.ID, member.ID, "still waiting")
	assert.ErrorIs(t, err, domain.ErrOrderNotDeliverable)

	_, err = env.svc.MarkShipped(ctx, order.ID)
	require.NoError(t, err)
	_, err = env.svc.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.svc.RecordFeedback(ctx, order.ID, stranger.ID, "cold food")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.svc.RecordFeedback(ctx, order.ID, member.ID, strings.Repeat("a", domain.MaxFeedbackLength+1))
	assert.ErrorIs(t, err, domain.ErrInvalidFeedback)

	_, err = env.svc.RecordFeedback(ctx, order.ID, member.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidFeedback)

	feedback, err := env.svc.RecordFeedback(ctx, order.ID, member.ID, "  hot and fast  ")
	require.NoError(t, err)
	assert.Equal(t, "hot and fast", feedback.Comment)

	feedbacks, err := env.svc.GetFeedbacks(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, feedbacks, 1)
	assert.Equal(t, member.ID, feedbacks[0].UserID)
}

func TestRecordTransaction(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, order := env.placeOrder(t)

	_, err := env.svc.RecordTransaction(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	_, err = env.svc.MarkShipped(ctx, order.ID)
	require.NoError(t, err)
	_, err = env.svc.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)

	bill, err := env.svc.RecordTransaction(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, bill.Amount.Equal(order.TotalPrice))
	assert.Equal(t, domain.PaymentStatusPending, bill.PaymentStatus)

	_, err = env.svc.RecordTransaction(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateTransaction)
	assert.EqualValues(t, 1, env.count(t, &entities.TransactionBill{}, "order_id = ?", order.ID))
}

func TestTransactionBillUniquePerOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, order := env.placeOrder(t)
	orderID := uuid.MustParse(order.ID)

	require.NoError(t, env.orders.CreateTransactionBill(ctx, &entities.TransactionBill{ID: uuid.New(), OrderID: orderID}))
	err := env.orders.CreateTransactionBill(ctx, &entities.TransactionBill{ID: uuid.New(), OrderID: orderID})
	assert.Error(t, err)
}

func TestStaleAppendIsRejected(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, order := env.placeOrder(t)

	stale, err := env.orders.LockOrderByID(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.svc.MarkShipped(ctx, order.ID)
	require.NoError(t, err)

	entry := &entities.OrderStatus{
		ID:              uuid.New(),
		OrderID:         stale.ID,
		Seq:             stale.StatusSeq + 1,
		OrderStatusName: domain.StatusCancelled,
		CreatedAt:       time.Now(),
	}
	err = env.orders.AppendStatus(ctx, stale, entry, nil)
	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)

	status, err := env.svc.CurrentStatus(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, status)
	env.requireConsistent(t, order.ID)
}

func TestConcurrentStatusAppendsSerialize(t *testing.T) {
	env := newTestEnv(t)
	_, order := env.placeOrder(t)

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.MarkShipped(context.Background(), order.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrConcurrentUpdate), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.EqualValues(t, 2, env.count(t, &entities.OrderStatus{}, "order_id = ?", order.ID))
	env.requireConsistent(t, order.ID)
}

func TestReconcileStatus(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, order := env.placeOrder(t)

	_, err := env.svc.MarkShipped(ctx, order.ID)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(&entities.Order{}).
		Where("id = ?", order.ID).
		Update("status_order", domain.StatusDelivered).Error)

	status, err := env.svc.ReconcileStatus(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, status)
	env.requireConsistent(t, order.ID)

	status, err = env.svc.ReconcileStatus(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, status)

	_, err = env.svc.ReconcileStatus(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}
