package ledger

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidRecord    = errors.New("invalid payment record")
	ErrDuplicatePayment = errors.New("payment already recorded for appointment")
	ErrPaymentNotFound  = errors.New("payment not found")
)

func ValidateRecord(r *Record) error {
	if r == nil {
		return ErrInvalidRecord
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return ErrInvalidRecord
	}
	if _, err := uuid.Parse(r.AppointmentID); err != nil {
		return ErrInvalidRecord
	}
	if r.Amount <= 0 || r.Currency == "" || r.AuthorizationID == "" {
		return ErrInvalidRecord
	}
	return nil
}
