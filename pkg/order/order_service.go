package order

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/pkg/cart"
	"FlashFoodDelivery/pkg/database"
	"FlashFoodDelivery/pkg/menu"
	"FlashFoodDelivery/pkg/user"
	"context"
	"errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
	"time"
)

type (
	OrderService interface {
		CreateOrder(ctx context.Context, userID string, req domain.CreateOrderRequest) (domain.OrderResponse, error)
		Checkout(ctx context.Context, userID string, req domain.CheckoutRequest) (domain.OrderResponse, error)
		GetOrder(ctx context.Context, orderID string) (domain.OrderResponse, error)
		GetUserOrders(ctx context.Context, userID string) ([]domain.OrderResponse, error)

		AppendStatus(ctx context.Context, orderID string, status string, shipperID *string) (domain.StatusEntryResponse, error)
		AssignShipper(ctx context.Context, orderID string, shipperID string) (domain.StatusEntryResponse, error)
		MarkShipped(ctx context.Context, orderID string) (domain.StatusEntryResponse, error)
		MarkDelivered(ctx context.Context, orderID string) (domain.StatusEntryResponse, error)
		CancelOrder(ctx context.Context, orderID string) (domain.StatusEntryResponse, error)
		StatusHistory(ctx context.Context, orderID string) ([]domain.StatusEntryResponse, error)
		CurrentStatus(ctx context.Context, orderID string) (string, error)
		ReconcileStatus(ctx context.Context, orderID string) (string, error)

		RecordFeedback(ctx context.Context, orderID string, userID string, comment string) (domain.FeedbackResponse, error)
		GetFeedbacks(ctx context.Context, orderID string) ([]domain.FeedbackResponse, error)
		RecordTransaction(ctx context.Context, orderID string) (domain.TransactionBillResponse, error)
	}

	// Schedule holds the default estimates applied to a new order.
	Schedule struct {
		RequiredOffset time.Duration
		ShippedOffset  time.Duration
	}

	orderService struct {
		orderRepository OrderRepository
		cartRepository  cart.CartRepository
		menuRepository  menu.MenuRepository
		userRepository  user.UserRepository
		transactor      database.Transactor
		schedule        Schedule
		now             func() time.Time
	}
)

func DefaultSchedule() Schedule {
	return Schedule{
		RequiredOffset: 72 * time.Hour,
		ShippedOffset:  120 * time.Hour,
	}
}

func NewOrderService(
	orderRepository OrderRepository,
	cartRepository cart.CartRepository,
	menuRepository menu.MenuRepository,
	userRepository user.UserRepository,
	transactor database.Transactor,
	schedule Schedule,
) OrderService {
	return &orderService{
		orderRepository: orderRepository,
		cartRepository:  cartRepository,
		menuRepository:  menuRepository,
		userRepository:  userRepository,
		transactor:      transactor,
		schedule:        schedule,
		now:             time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	items := make([]lineItem, 0, len(req.Items))
	for _, item := range req.Items {
		foodID, err := uuid.Parse(item.FoodID)
		if err != nil {
			return domain.OrderResponse{}, domain.ErrFoodItemNotFound
		}
		items = append(items, lineItem{foodID: foodID, quantity: item.Quantity})
	}

	var order *entities.Order
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.getMember(ctx, userID)
		if err != nil {
			return err
		}

		order, err = s.placeOrder(ctx, member, req.Address, items, req.RequiredDate, req.ShippedDate)
		return err
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	log.Infof("order %s placed by %s, total %s", order.ID, userID, order.TotalPrice.StringFixed(2))
	return toOrderResponse(order), nil
}

// Checkout drains the user's cart into a new order. The cart rows read at the
// start are the rows deleted at the end; if any of them vanished in between,
// another checkout got there first and this one rolls back.
func (s *orderService) Checkout(ctx context.Context, userID string, req domain.CheckoutRequest) (domain.OrderResponse, error) {
	var order *entities.Order
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		member, err := s.getMember(ctx, userID)
		if err != nil {
			return err
		}

		rows, err := s.cartRepository.LockCartRowsByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return domain.ErrEmptyCart
		}

		items := make([]lineItem, 0, len(rows))
		rowIDs := make([]uuid.UUID, 0, len(rows))
		for _, row := range rows {
			items = append(items, lineItem{foodID: row.FoodID, quantity: row.Quantity})
			rowIDs = append(rowIDs, row.ID)
		}

		order, err = s.placeOrder(ctx, member, req.Address, items, nil, nil)
		if err != nil {
			return err
		}

		deleted, err := s.cartRepository.DeleteCartRows(ctx, userID, rowIDs)
		if err != nil {
			return err
		}
		if deleted != int64(len(rowIDs)) {
			return domain.ErrConcurrentUpdate
		}
		return nil
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	log.Infof("cart of %s checked out into order %s, total %s", userID, order.ID, order.TotalPrice.StringFixed(2))
	return toOrderResponse(order), nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (domain.OrderResponse, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return domain.OrderResponse{}, domain.ErrOrderNotFound
	}
	order, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderResponse{}, err
	}
	return toOrderResponse(order), nil
}

func (s *orderService) GetUserOrders(ctx context.Context, userID string) ([]domain.OrderResponse, error) {
	orders, err := s.orderRepository.GetOrdersByMember(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, toOrderResponse(order))
	}
	return result, nil
}

// placeOrder persists a Placed order with its details and first ledger entry.
// It must run inside a transaction.
func (s *orderService) placeOrder(
	ctx context.Context,
	member *entities.User,
	address string,
	items []lineItem,
	requiredDate, shippedDate *time.Time,
) (*entities.Order, error) {
	items, err := collapseItems(items)
	if err != nil {
		return nil, err
	}

	foodItems, err := s.menuRepository.GetFoodItemsByIDs(ctx, foodIDs(items))
	if err != nil {
		return nil, err
	}

	now := s.now()
	if requiredDate == nil {
		estimate := now.Add(s.schedule.RequiredOffset)
		requiredDate = &estimate
	}
	if shippedDate == nil {
		estimate := now.Add(s.schedule.ShippedOffset)
		shippedDate = &estimate
	}
	if err := validateSchedule(now, requiredDate, shippedDate); err != nil {
		return nil, err
	}

	address = strings.TrimSpace(address)
	if address == "" {
		address = member.Address
	}

	order := &entities.Order{
		ID:           uuid.New(),
		Address:      address,
		MemberID:     &member.ID,
		OrderDate:    now,
		RequiredDate: requiredDate,
		ShippedDate:  shippedDate,
		StatusOrder:  domain.StatusPlaced,
		StatusSeq:    1,
	}

	details, err := buildDetails(order.ID, items, foodItems)
	if err != nil {
		return nil, err
	}
	order.TotalPrice = RecalculateTotal(details)

	placed := &entities.OrderStatus{
		ID:              uuid.New(),
		OrderID:         order.ID,
		Seq:             order.StatusSeq,
		OrderStatusName: domain.StatusPlaced,
		CreatedAt:       now,
	}

	if err := s.orderRepository.CreateOrder(ctx, order, details, placed); err != nil {
		return nil, err
	}

	order.OrderDetails = details
	order.OrderStatuses = []*entities.OrderStatus{placed}
	return order, nil
}

func (s *orderService) getMember(ctx context.Context, userID string) (*entities.User, error) {
	member, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return member, nil
}
