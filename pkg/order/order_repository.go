package order

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/pkg/database"
	"context"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	OrderRepository interface {
		// Aggregate
		CreateOrder(ctx context.Context, order *entities.Order, details []*entities.OrderDetail, placed *entities.OrderStatus) error
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		OrderExists(ctx context.Context, id string) (bool, error)
		LockOrderByID(ctx context.Context, id string) (*entities.Order, error)
		GetOrdersByMember(ctx context.Context, memberID string) ([]*entities.Order, error)
		GetOrderDetails(ctx context.Context, orderID string) ([]*entities.OrderDetail, error)

		// Status ledger
		AppendStatus(ctx context.Context, order *entities.Order, entry *entities.OrderStatus, changes map[string]any) error
		SyncStatusProjection(ctx context.Context, order *entities.Order, latest *entities.OrderStatus) error
		GetStatusHistory(ctx context.Context, orderID string) ([]*entities.OrderStatus, error)
		GetLatestStatus(ctx context.Context, orderID string) (*entities.OrderStatus, error)

		// Feedback and bills
		CreateFeedback(ctx context.Context, feedback *entities.FeedBack) error
		GetFeedbacks(ctx context.Context, orderID string) ([]*entities.FeedBack, error)
		CreateTransactionBill(ctx context.Context, bill *entities.TransactionBill) error
		GetTransactionBillByOrder(ctx context.Context, orderID string) (*entities.TransactionBill, error)
		GetTransactionBillByID(ctx context.Context, id string) (*entities.TransactionBill, error)
		UpdateTransactionBill(ctx context.Context, bill *entities.TransactionBill) error
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order, details []*entities.OrderDetail, placed *entities.OrderStatus) error {
	db := database.Conn(ctx, r.db)

	if err := db.Omit(clause.Associations).Create(order).Error; err != nil {
		return err
	}
	if err := db.Omit(clause.Associations).Create(&details).Error; err != nil {
		return err
	}
	return db.Create(placed).Error
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := database.Conn(ctx, r.db).
		Preload("OrderDetails", func(db *gorm.DB) *gorm.DB {
			return db.Order("food_id asc")
		}).
		Preload("OrderDetails.Food").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) OrderExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := database.Conn(ctx, r.db).Model(&entities.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// LockOrderByID loads the bare order row with FOR UPDATE so ledger appends on
// one order serialize on Postgres.
func (r *orderRepository) LockOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetOrdersByMember(ctx context.Context, memberID string) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := database.Conn(ctx, r.db).
		Preload("OrderDetails").
		Preload("OrderDetails.Food").
		Where("member_id = ?", memberID).
		Order("order_date desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrderDetails(ctx context.Context, orderID string) ([]*entities.OrderDetail, error) {
	var details []*entities.OrderDetail
	if err := database.Conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("food_id asc").
		Find(&details).Error; err != nil {
		return nil, err
	}
	return details, nil
}

// AppendStatus moves the projection on order from its current sequence to
// entry.Seq and inserts entry. The update only matches while status_seq still
// holds the sequence the caller read, so a concurrent append makes it fail
// with domain.ErrConcurrentUpdate.
func (r *orderRepository) AppendStatus(ctx context.Context, order *entities.Order, entry *entities.OrderStatus, changes map[string]any) error {
	db := database.Conn(ctx, r.db)

	updates := map[string]any{
		"status_order": entry.OrderStatusName,
		"status_seq":   entry.Seq,
	}
	for column, value := range changes {
		updates[column] = value
	}

	res := db.Model(&entities.Order{}).
		Where("id = ? AND status_seq = ?", order.ID, order.StatusSeq).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}

	if err := db.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConcurrentUpdate
		}
		return err
	}
	return nil
}

// SyncStatusProjection rewrites order.status_order from the latest ledger entry.
func (r *orderRepository) SyncStatusProjection(ctx context.Context, order *entities.Order, latest *entities.OrderStatus) error {
	res := database.Conn(ctx, r.db).
		Model(&entities.Order{}).
		Where("id = ? AND status_seq = ?", order.ID, order.StatusSeq).
		Updates(map[string]any{
			"status_order": latest.OrderStatusName,
			"status_seq":   latest.Seq,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

func (r *orderRepository) GetStatusHistory(ctx context.Context, orderID string) ([]*entities.OrderStatus, error) {
	var entries []*entities.OrderStatus
	if err := database.Conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("seq asc").
		Order("created_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *orderRepository) GetLatestStatus(ctx context.Context, orderID string) (*entities.OrderStatus, error) {
	var entry entities.OrderStatus
	if err := database.Conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("seq desc").
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *orderRepository) CreateFeedback(ctx context.Context, feedback *entities.FeedBack) error {
	return database.Conn(ctx, r.db).Omit("User").Create(feedback).Error
}

func (r *orderRepository) GetFeedbacks(ctx context.Context, orderID string) ([]*entities.FeedBack, error) {
	var feedbacks []*entities.FeedBack
	if err := database.Conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *orderRepository) CreateTransactionBill(ctx context.Context, bill *entities.TransactionBill) error {
	return database.Conn(ctx, r.db).Create(bill).Error
}

func (r *orderRepository) GetTransactionBillByOrder(ctx context.Context, orderID string) (*entities.TransactionBill, error) {
	var bill entities.TransactionBill
	if err := database.Conn(ctx, r.db).Where("order_id = ?", orderID).First(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *orderRepository) GetTransactionBillByID(ctx context.Context, id string) (*entities.TransactionBill, error) {
	var bill entities.TransactionBill
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *orderRepository) UpdateTransactionBill(ctx context.Context, bill *entities.TransactionBill) error {
	return database.Conn(ctx, r.db).
		Model(&entities.TransactionBill{}).
		Where("id = ?", bill.ID).
		Updates(map[string]any{
			"payment_status": bill.PaymentStatus,
			"payment_token":  bill.PaymentToken,
			"redirect_url":   bill.RedirectURL,
			"paid_at":        bill.PaidAt,
		}).Error
}
