package domain

import (
	"errors"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
	PaymentStatusFailed  = "Failed"
)

var (
	MessageSuccessCreatePayment = "payment link created successfully"
	MessageSuccessNotification  = "payment notification processed"

	MessageFailedCreatePayment = "failed to create payment link"
	MessageFailedNotification  = "failed to process payment notification"

	ErrInvalidSignature = errors.New("invalid notification signature")
	ErrPaymentGateway   = errors.New("payment gateway request failed")
	ErrBillAlreadyPaid  = errors.New("transaction bill already paid")
)

type (
	PaymentLinkResponse struct {
		BillID      string          `json:"bill_id"`
		OrderID     string          `json:"order_id"`
		Amount      decimal.Decimal `json:"amount"`
		Token       string          `json:"token"`
		RedirectURL string          `json:"redirect_url"`
	}

	// MidtransNotification is the body of a Midtrans HTTP notification.
	// OrderID carries the transaction bill id used when creating the Snap transaction.
	MidtransNotification struct {
		OrderID           string `json:"order_id" validate:"required"`
		StatusCode        string `json:"status_code" validate:"required"`
		GrossAmount       string `json:"gross_amount" validate:"required"`
		SignatureKey      string `json:"signature_key" validate:"required"`
		TransactionStatus string `json:"transaction_status" validate:"required"`
		FraudStatus       string `json:"fraud_status"`
	}
)
