package domain

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"time"
)

var (
	MessageSuccessCreateOrder       = "order created successfully"
	MessageSuccessCheckout          = "checkout completed successfully"
	MessageSuccessGetOrders         = "orders retrieved successfully"
	MessageSuccessGetOrderStatuses  = "order statuses retrieved successfully"
	MessageSuccessAppendOrderStatus = "order status updated successfully"
	MessageSuccessAssignShipper     = "shipper assigned successfully"
	MessageSuccessRecordFeedback    = "feedback recorded successfully"
	MessageSuccessRecordTransaction = "transaction recorded successfully"

	MessageFailedCreateOrder       = "failed to create order"
	MessageFailedCheckout          = "failed to checkout cart"
	MessageFailedGetOrders         = "failed to retrieve orders"
	MessageFailedGetOrderStatuses  = "failed to retrieve order statuses"
	MessageFailedAppendOrderStatus = "failed to update order status"
	MessageFailedAssignShipper     = "failed to assign shipper"
	MessageFailedRecordFeedback    = "failed to record feedback"
	MessageFailedRecordTransaction = "failed to record transaction"

	ErrOrderNotFound   = fmt.Errorf("order %w", ErrNotFound)
	ErrShipperNotFound = fmt.Errorf("shipper %w", ErrNotFound)
	ErrBillNotFound    = fmt.Errorf("transaction bill %w", ErrNotFound)
	ErrOrderHasNoItems = errors.New("order must contain at least one item")
	ErrInvalidSchedule = errors.New("order date, required date and shipped date are out of order")
	ErrInvalidFeedback = errors.New("feedback comment must be between 1 and 100 characters")
	ErrNotOrderMember  = fmt.Errorf("user is not the member of this order: %w", ErrForbidden)
)

const MaxFeedbackLength = 100

type (
	OrderItemRequest struct {
		FoodID   string `json:"food_id" validate:"required,uuid"`
		Quantity int    `json:"quantity" validate:"required,min=1"`
	}

	CreateOrderRequest struct {
		Address      string             `json:"address" validate:"required,max=100"`
		Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
		RequiredDate *time.Time         `json:"required_date,omitempty"`
		ShippedDate  *time.Time         `json:"shipped_date,omitempty"`
	}

	CheckoutRequest struct {
		Address string `json:"address" validate:"omitempty,max=100"`
	}

	AppendStatusRequest struct {
		Status    string  `json:"status" validate:"required,max=128"`
		ShipperID *string `json:"shipper_id,omitempty"`
	}

	AssignShipperRequest struct {
		ShipperID string `json:"shipper_id" validate:"required"`
	}

	FeedbackRequest struct {
		Comment string `json:"comment" validate:"required,max=100"`
	}

	OrderDetailResponse struct {
		FoodID    string          `json:"food_id"`
		FoodName  string          `json:"food_name,omitempty"`
		Quantity  int             `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unit_price"`
		Subtotal  decimal.Decimal `json:"subtotal"`
	}

	OrderResponse struct {
		ID            string                 `json:"id"`
		Address       string                 `json:"address"`
		MemberID      *string                `json:"member_id,omitempty"`
		OrderDate     time.Time              `json:"order_date"`
		RequiredDate  *time.Time             `json:"required_date,omitempty"`
		ShippedDate   *time.Time             `json:"shipped_date,omitempty"`
		DeliveredDate *time.Time             `json:"delivered_date,omitempty"`
		ShipperID     *string                `json:"shipper_id,omitempty"`
		Status        string                 `json:"status"`
		TotalPrice    decimal.Decimal        `json:"total_price"`
		Details       []*OrderDetailResponse `json:"details"`
		CreatedAt     time.Time              `json:"created_at"`
	}

	StatusEntryResponse struct {
		ID        string    `json:"id"`
		OrderID   string    `json:"order_id"`
		Seq       int       `json:"seq"`
		Status    string    `json:"status"`
		ShipperID *string   `json:"shipper_id,omitempty"`
		CreatedAt time.Time `json:"created_at"`
	}

	FeedbackResponse struct {
		ID        string    `json:"id"`
		OrderID   string    `json:"order_id"`
		UserID    string    `json:"user_id"`
		Comment   string    `json:"comment"`
		CreatedAt time.Time `json:"created_at"`
	}

	TransactionBillResponse struct {
		ID            string          `json:"id"`
		OrderID       string          `json:"order_id"`
		Amount        decimal.Decimal `json:"amount"`
		PaymentStatus string          `json:"payment_status"`
		PaymentToken  string          `json:"payment_token,omitempty"`
		RedirectURL   string          `json:"redirect_url,omitempty"`
		PaidAt        *time.Time      `json:"paid_at,omitempty"`
		CreatedAt     time.Time       `json:"created_at"`
	}
)
