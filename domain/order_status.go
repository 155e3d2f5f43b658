package domain

import (
	"fmt"
	"strings"
)

const (
	StatusPlaced    = "Placed"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

var orderTransitions = map[string][]string{
	StatusPlaced:  {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered, StatusCancelled},
}

// NormalizeOrderStatus maps a case-insensitive status name onto its canonical form.
func NormalizeOrderStatus(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, status := range []string{StatusPlaced, StatusShipped, StatusDelivered, StatusCancelled} {
		if strings.EqualFold(status, name) {
			return status, true
		}
	}
	return "", false
}

func IsTerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an error wrapping ErrInvalidTransition when the
// ledger may not move from one status to the other.
func ValidateTransition(from, to string) error {
	if _, ok := NormalizeOrderStatus(to); !ok {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
