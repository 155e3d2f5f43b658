package order

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type lineItem struct {
	foodID   uuid.UUID
	quantity int
}

// collapseItems merges repeated food ids into one line with the summed
// quantity, keeping first-seen order.
func collapseItems(items []lineItem) ([]lineItem, error) {
	if len(items) == 0 {
		return nil, domain.ErrOrderHasNoItems
	}

	index := make(map[uuid.UUID]int, len(items))
	collapsed := make([]lineItem, 0, len(items))
	for _, item := range items {
		if item.quantity <= 0 {
			return nil, fmt.Errorf("%w: food %s has quantity %d", domain.ErrInvalidQuantity, item.foodID, item.quantity)
		}
		if i, ok := index[item.foodID]; ok {
			collapsed[i].quantity += item.quantity
			continue
		}
		index[item.foodID] = len(collapsed)
		collapsed = append(collapsed, item)
	}
	return collapsed, nil
}

// buildDetails snapshots the catalog unit price of every line. Missing or
// inactive food items fail the whole order.
func buildDetails(orderID uuid.UUID, items []lineItem, foodItems []*entities.MenuFoodItem) ([]*entities.OrderDetail, error) {
	catalog := make(map[uuid.UUID]*entities.MenuFoodItem, len(foodItems))
	for _, foodItem := range foodItems {
		catalog[foodItem.ID] = foodItem
	}

	details := make([]*entities.OrderDetail, 0, len(items))
	for _, item := range items {
		foodItem, ok := catalog[item.foodID]
		if !ok || foodItem.FoodStatus != domain.FoodStatusActive {
			return nil, fmt.Errorf("%w: %s", domain.ErrFoodItemNotFound, item.foodID)
		}
		details = append(details, &entities.OrderDetail{
			OrderID:   orderID,
			FoodID:    item.foodID,
			Quantity:  item.quantity,
			UnitPrice: foodItem.UnitPrice,
			Food:      foodItem,
		})
	}
	return details, nil
}

// RecalculateTotal is the only source of Order.TotalPrice.
func RecalculateTotal(details []*entities.OrderDetail) decimal.Decimal {
	total := decimal.Zero
	for _, detail := range details {
		total = total.Add(detail.UnitPrice.Mul(decimal.NewFromInt(int64(detail.Quantity))))
	}
	return total
}

func validateSchedule(orderDate time.Time, requiredDate, shippedDate *time.Time) error {
	if requiredDate != nil && requiredDate.Before(orderDate) {
		return domain.ErrInvalidSchedule
	}
	if shippedDate != nil && shippedDate.Before(orderDate) {
		return domain.ErrInvalidSchedule
	}
	if requiredDate != nil && shippedDate != nil && shippedDate.Before(*requiredDate) {
		return domain.ErrInvalidSchedule
	}
	return nil
}

func foodIDs(items []lineItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.foodID.String())
	}
	return ids
}

func toOrderResponse(order *entities.Order) domain.OrderResponse {
	res := domain.OrderResponse{
		ID:            order.ID.String(),
		Address:       order.Address,
		MemberID:      order.MemberID,
		OrderDate:     order.OrderDate,
		RequiredDate:  order.RequiredDate,
		ShippedDate:   order.ShippedDate,
		DeliveredDate: order.DeliveredDate,
		ShipperID:     order.ShipperID,
		Status:        order.StatusOrder,
		TotalPrice:    order.TotalPrice,
		Details:       make([]*domain.OrderDetailResponse, 0, len(order.OrderDetails)),
		CreatedAt:     order.CreatedAt,
	}
	for _, detail := range order.OrderDetails {
		item := &domain.OrderDetailResponse{
			FoodID:    detail.FoodID.String(),
			Quantity:  detail.Quantity,
			UnitPrice: detail.UnitPrice,
			Subtotal:  detail.UnitPrice.Mul(decimal.NewFromInt(int64(detail.Quantity))),
		}
		if detail.Food != nil {
			item.FoodName = detail.Food.FoodName
		}
		res.Details = append(res.Details, item)
	}
	return res
}

func toStatusEntryResponse(entry *entities.OrderStatus) domain.StatusEntryResponse {
	return domain.StatusEntryResponse{
		ID:        entry.ID.String(),
		OrderID:   entry.OrderID.String(),
		Seq:       entry.Seq,
		Status:    entry.OrderStatusName,
		ShipperID: entry.ShipperID,
		CreatedAt: entry.CreatedAt,
	}
}

func toFeedbackResponse(feedback *entities.FeedBack) domain.FeedbackResponse {
	return domain.FeedbackResponse{
		ID:        feedback.ID.String(),
		OrderID:   feedback.OrderID.String(),
		UserID:    feedback.UserID,
		Comment:   feedback.CommentMsg,
		CreatedAt: feedback.CreatedAt,
	}
}

func ToTransactionBillResponse(bill *entities.TransactionBill) domain.TransactionBillResponse {
	return domain.TransactionBillResponse{
		ID:            bill.ID.String(),
		OrderID:       bill.OrderID.String(),
		Amount:        bill.Amount,
		PaymentStatus: bill.PaymentStatus,
		PaymentToken:  bill.PaymentToken,
		RedirectURL:   bill.RedirectURL,
		PaidAt:        bill.PaidAt,
		CreatedAt:     bill.CreatedAt,
	}
}
