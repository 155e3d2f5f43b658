package domain

import (
	"errors"
	"fmt"
)

const (
	RoleUser    = "user"
	RoleShipper = "shipper"
	RoleAdmin   = "admin"
)

var (
	MesaageUserNotAllowed       = "user not allowed"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	// Error kinds. Entity specific errors wrap one of these so callers can
	// branch with errors.Is on the kind.
	ErrNotFound             = errors.New("not found")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidState         = errors.New("operation not allowed in current order state")
	ErrOrderNotDeliverable  = errors.New("order has not been delivered")
	ErrForbidden            = errors.New("forbidden")
	ErrDuplicateTransaction = errors.New("transaction already recorded for order")
	ErrConcurrentUpdate     = errors.New("resource was modified concurrently")

	ErrParseUUID      = errors.New("failed to parse UUID")
	ErrUserNotAllowed = fmt.Errorf("user not allowed: %w", ErrForbidden)
	ErrTokenNotFound  = errors.New("failed to token not found")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
)
