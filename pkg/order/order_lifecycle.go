package order

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"context"
	"errors"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
	"unicode/utf8"
)

func (s *orderService) AppendStatus(ctx context.Context, orderID string, status string, shipperID *string) (domain.StatusEntryResponse, error) {
	entry, err := s.transition(ctx, orderID, status, shipperID)
	if err != nil {
		return domain.StatusEntryResponse{}, err
	}
	return toStatusEntryResponse(entry), nil
}

func (s *orderService) MarkShipped(ctx context.Context, orderID string) (domain.StatusEntryResponse, error) {
	return s.AppendStatus(ctx, orderID, domain.StatusShipped, nil)
}

func (s *orderService) MarkDelivered(ctx context.Context, orderID string) (domain.StatusEntryResponse, error) {
	return s.AppendStatus(ctx, orderID, domain.StatusDelivered, nil)
}

func (s *orderService) CancelOrder(ctx context.Context, orderID string) (domain.StatusEntryResponse, error) {
	return s.AppendStatus(ctx, orderID, domain.StatusCancelled, nil)
}

// AssignShipper records the shipper with a new Placed entry. A later
// assignment while still Placed replaces the earlier one.
func (s *orderService) AssignShipper(ctx context.Context, orderID string, shipperID string) (domain.StatusEntryResponse, error) {
	var entry *entities.OrderStatus
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.StatusOrder != domain.StatusPlaced {
			return domain.ErrInvalidState
		}
		if err := s.ensureShipper(ctx, shipperID); err != nil {
			return err
		}

		entry = s.nextEntry(order, domain.StatusPlaced, &shipperID)
		return s.orderRepository.AppendStatus(ctx, order, entry, map[string]any{
			"shipper_id": shipperID,
		})
	})
	if err != nil {
		return domain.StatusEntryResponse{}, err
	}

	log.Infof("shipper %s assigned to order %s", shipperID, orderID)
	return toStatusEntryResponse(entry), nil
}

// transition appends status to the ledger of orderID and moves the order
// projection with it, applying the date side effects of the target status.
func (s *orderService) transition(ctx context.Context, orderID string, status string, shipperID *string) (*entities.OrderStatus, error) {
	var entry *entities.OrderStatus
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}

		target, ok := domain.NormalizeOrderStatus(status)
		if !ok {
			target = status
		}
		if err := domain.ValidateTransition(order.StatusOrder, target); err != nil {
			return err
		}

		changes := map[string]any{}
		if shipperID != nil {
			if err := s.ensureShipper(ctx, *shipperID); err != nil {
				return err
			}
			changes["shipper_id"] = *shipperID
		} else {
			shipperID = order.ShipperID
		}

		entry = s.nextEntry(order, target, shipperID)
		switch target {
		case domain.StatusShipped:
			changes["shipped_date"] = entry.CreatedAt
			if order.RequiredDate != nil && order.RequiredDate.After(entry.CreatedAt) {
				changes["required_date"] = entry.CreatedAt
			}
		case domain.StatusDelivered:
			changes["delivered_date"] = entry.CreatedAt
		}

		return s.orderRepository.AppendStatus(ctx, order, entry, changes)
	})
	if err != nil {
		return nil, err
	}

	log.Infof("order %s moved to %s (seq %d)", orderID, entry.OrderStatusName, entry.Seq)
	return entry, nil
}

func (s *orderService) StatusHistory(ctx context.Context, orderID string) ([]domain.StatusEntryResponse, error) {
	if err := s.ensureOrder(ctx, orderID); err != nil {
		return nil, err
	}

	entries, err := s.orderRepository.GetStatusHistory(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.StatusEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toStatusEntryResponse(entry))
	}
	return result, nil
}

// CurrentStatus reads the status from the ledger rather than the order row.
func (s *orderService) CurrentStatus(ctx context.Context, orderID string) (string, error) {
	if err := s.ensureOrder(ctx, orderID); err != nil {
		return "", err
	}

	latest, err := s.orderRepository.GetLatestStatus(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrOrderNotFound
		}
		return "", err
	}
	return latest.OrderStatusName, nil
}

// ReconcileStatus rewrites the order's status projection from the latest
// ledger entry when the two disagree, and returns the ledger status.
func (s *orderService) ReconcileStatus(ctx context.Context, orderID string) (string, error) {
	var status string
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}

		latest, err := s.orderRepository.GetLatestStatus(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}
		status = latest.OrderStatusName

		if order.StatusOrder == latest.OrderStatusName && order.StatusSeq == latest.Seq {
			return nil
		}

		log.Warnf("order %s status drifted: projection %s/%d, ledger %s/%d",
			orderID, order.StatusOrder, order.StatusSeq, latest.OrderStatusName, latest.Seq)
		return s.orderRepository.SyncStatusProjection(ctx, order, latest)
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// RecordFeedback accepts feedback from the order's own member once delivered.
// Membership is checked first so strangers never learn the order state.
func (s *orderService) RecordFeedback(ctx context.Context, orderID string, userID string, comment string) (domain.FeedbackResponse, error) {
	var feedback *entities.FeedBack
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.MemberID == nil || *order.MemberID != userID {
			return domain.ErrNotOrderMember
		}
		if order.StatusOrder != domain.StatusDelivered {
			return domain.ErrOrderNotDeliverable
		}

		comment = strings.TrimSpace(comment)
		if comment == "" || utf8.RuneCountInString(comment) > domain.MaxFeedbackLength {
			return domain.ErrInvalidFeedback
		}

		feedback = &entities.FeedBack{
			ID:         uuid.New(),
			CommentMsg: comment,
			OrderID:    order.ID,
			UserID:     userID,
		}
		return s.orderRepository.CreateFeedback(ctx, feedback)
	})
	if err != nil {
		return domain.FeedbackResponse{}, err
	}
	return toFeedbackResponse(feedback), nil
}

func (s *orderService) GetFeedbacks(ctx context.Context, orderID string) ([]domain.FeedbackResponse, error) {
	if err := s.ensureOrder(ctx, orderID); err != nil {
		return nil, err
	}

	feedbacks, err := s.orderRepository.GetFeedbacks(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.FeedbackResponse, 0, len(feedbacks))
	for _, feedback := range feedbacks {
		result = append(result, toFeedbackResponse(feedback))
	}
	return result, nil
}

// RecordTransaction opens the single bill of a delivered order for its total.
func (s *orderService) RecordTransaction(ctx context.Context, orderID string) (domain.TransactionBillResponse, error) {
	var bill *entities.TransactionBill
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.StatusOrder != domain.StatusDelivered {
			return domain.ErrInvalidState
		}

		_, err = s.orderRepository.GetTransactionBillByOrder(ctx, orderID)
		switch {
		case err == nil:
			return domain.ErrDuplicateTransaction
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		bill = &entities.TransactionBill{
			ID:            uuid.New(),
			OrderID:       order.ID,
			Amount:        order.TotalPrice,
			PaymentStatus: domain.PaymentStatusPending,
		}
		if err := s.orderRepository.CreateTransactionBill(ctx, bill); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateTransaction
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.TransactionBillResponse{}, err
	}

	log.Infof("bill %s recorded for order %s", bill.ID, orderID)
	return ToTransactionBillResponse(bill), nil
}

func (s *orderService) nextEntry(order *entities.Order, status string, shipperID *string) *entities.OrderStatus {
	return &entities.OrderStatus{
		ID:              uuid.New(),
		OrderID:         order.ID,
		Seq:             order.StatusSeq + 1,
		OrderStatusName: status,
		ShipperID:       shipperID,
		CreatedAt:       s.now(),
	}
}

func (s *orderService) lockOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, domain.ErrOrderNotFound
	}
	order, err := s.orderRepository.LockOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) ensureOrder(ctx context.Context, orderID string) error {
	if _, err := uuid.Parse(orderID); err != nil {
		return domain.ErrOrderNotFound
	}
	exists, err := s.orderRepository.OrderExists(ctx, orderID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (s *orderService) ensureShipper(ctx context.Context, shipperID string) error {
	shipper, err := s.userRepository.GetUserByID(ctx, shipperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrShipperNotFound
		}
		return err
	}
	if shipper.Role != domain.RoleShipper {
		return domain.ErrShipperNotFound
	}
	return nil
}
