package midtrans

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/pkg/order"
	"FlashFoodDelivery/pkg/user"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
	"time"
)

type (
	// SnapGateway is the part of snap.Client the service needs.
	SnapGateway interface {
		CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
	}

	MidtransService interface {
		CreatePaymentLink(ctx context.Context, orderID string, userID string) (domain.PaymentLinkResponse, error)
		HandleNotification(ctx context.Context, req domain.MidtransNotification) (domain.TransactionBillResponse, error)
	}

	midtransService struct {
		orderRepository order.OrderRepository
		userRepository  user.UserRepository
		gateway         SnapGateway
		serverKey       string
		now             func() time.Time
	}
)

func NewSnapClient(serverKey string, isProd bool) SnapGateway {
	env := midtrans.Sandbox
	if isProd {
		env = midtrans.Production
	}
	var client snap.Client
	client.New(serverKey, env)
	return &client
}

func NewMidtransService(
	orderRepository order.OrderRepository,
	userRepository user.UserRepository,
	gateway SnapGateway,
	serverKey string,
) MidtransService {
	return &midtransService{
		orderRepository: orderRepository,
		userRepository:  userRepository,
		gateway:         gateway,
		serverKey:       serverKey,
		now:             time.Now,
	}
}

// CreatePaymentLink opens a Snap transaction for the bill of orderID. The bill
// id is used as the Midtrans order id so notifications map back to the bill.
func (s *midtransService) CreatePaymentLink(ctx context.Context, orderID string, userID string) (domain.PaymentLinkResponse, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return domain.PaymentLinkResponse{}, domain.ErrOrderNotFound
	}
	o, err := s.orderRepository.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentLinkResponse{}, domain.ErrOrderNotFound
		}
		return domain.PaymentLinkResponse{}, err
	}
	if o.MemberID == nil || *o.MemberID != userID {
		return domain.PaymentLinkResponse{}, domain.ErrNotOrderMember
	}

	bill, err := s.orderRepository.GetTransactionBillByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PaymentLinkResponse{}, domain.ErrBillNotFound
		}
		return domain.PaymentLinkResponse{}, err
	}
	if bill.PaymentStatus == domain.PaymentStatusPaid {
		return domain.PaymentLinkResponse{}, domain.ErrBillAlreadyPaid
	}
	if bill.PaymentToken != "" && bill.PaymentStatus == domain.PaymentStatusPending {
		return toPaymentLinkResponse(bill), nil
	}

	member, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.PaymentLinkResponse{}, err
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  bill.ID.String(),
			GrossAmt: bill.Amount.Round(0).IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: member.FullName,
			Email: member.Email,
			Phone: member.PhoneNumber,
		},
	}

	resp, midtransErr := s.gateway.CreateTransaction(req)
	if midtransErr != nil {
		log.Errorf("midtrans create transaction for bill %s: %s", bill.ID, midtransErr.Message)
		return domain.PaymentLinkResponse{}, fmt.Errorf("%w: %s", domain.ErrPaymentGateway, midtransErr.Message)
	}

	bill.PaymentToken = resp.Token
	bill.RedirectURL = resp.RedirectURL
	bill.PaymentStatus = domain.PaymentStatusPending
	if err := s.orderRepository.UpdateTransactionBill(ctx, bill); err != nil {
		return domain.PaymentLinkResponse{}, err
	}

	return toPaymentLinkResponse(bill), nil
}

// HandleNotification verifies a Midtrans notification and settles the bill it
// refers to. Notifications for an already paid bill are acknowledged unchanged.
func (s *midtransService) HandleNotification(ctx context.Context, req domain.MidtransNotification) (domain.TransactionBillResponse, error) {
	if !s.validSignature(req) {
		return domain.TransactionBillResponse{}, domain.ErrInvalidSignature
	}

	if _, err := uuid.Parse(req.OrderID); err != nil {
		return domain.TransactionBillResponse{}, domain.ErrBillNotFound
	}
	bill, err := s.orderRepository.GetTransactionBillByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TransactionBillResponse{}, domain.ErrBillNotFound
		}
		return domain.TransactionBillResponse{}, err
	}
	if bill.PaymentStatus == domain.PaymentStatusPaid {
		return order.ToTransactionBillResponse(bill), nil
	}

	status := paymentStatus(req.TransactionStatus, req.FraudStatus)
	if status == bill.PaymentStatus {
		return order.ToTransactionBillResponse(bill), nil
	}

	bill.PaymentStatus = status
	if status == domain.PaymentStatusPaid {
		paidAt := s.now()
		bill.PaidAt = &paidAt
	}
	if err := s.orderRepository.UpdateTransactionBill(ctx, bill); err != nil {
		return domain.TransactionBillResponse{}, err
	}

	log.Infof("bill %s is now %s (midtrans %s)", bill.ID, status, req.TransactionStatus)
	return order.ToTransactionBillResponse(bill), nil
}

func (s *midtransService) validSignature(req domain.MidtransNotification) bool {
	expected := Signature(req.OrderID, req.StatusCode, req.GrossAmount, s.serverKey)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(req.SignatureKey)) == 1
}

// Signature is SHA512(order_id + status_code + gross_amount + server_key) in hex.
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func paymentStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "" || fraudStatus == "accept" {
			return domain.PaymentStatusPaid
		}
		return domain.PaymentStatusPending
	case "settlement":
		return domain.PaymentStatusPaid
	case "deny", "cancel", "expire", "failure":
		return domain.PaymentStatusFailed
	default:
		return domain.PaymentStatusPending
	}
}

func toPaymentLinkResponse(bill *entities.TransactionBill) domain.PaymentLinkResponse {
	return domain.PaymentLinkResponse{
		BillID:      bill.ID.String(),
		OrderID:     bill.OrderID.String(),
		Amount:      bill.Amount,
		Token:       bill.PaymentToken,
		RedirectURL: bill.RedirectURL,
	}
}
