package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUnauthenticated   = errors.New("unauthorized access")
	ErrForbidden         = errors.New("forbidden access")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNotFound          = errors.New("not found")
	ErrPaymentProvider   = errors.New("payment provider error")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrMissingEmail      = errors.New("email claim is required")
)

// ParseID converts a path identifier into a record id.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, raw)
	}
	return id, nil
}

// storeErr classifies a gorm error once so handlers only see service sentinels.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
