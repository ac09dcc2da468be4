package booking

import (
	"errors"
	"net/mail"
	"strings"

	"clinic/internal/appointment"
	"clinic/internal/catalog"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrAuthorizationFailed = errors.New("payment authorization failed")

	ErrServiceNotFound     = catalog.ErrServiceNotFound
	ErrAppointmentNotFound = appointment.ErrAppointmentNotFound
	ErrAlreadyPaid         = appointment.ErrAlreadyPaid
)

func ValidateAuthorizationRequest(r AuthorizationRequest) error {
	if _, err := uuid.Parse(r.ServiceID); err != nil {
		return ErrInvalidRequest
	}
	return validateEmail(r.CustomerEmail)
}

func ValidateConfirmRequest(r ConfirmRequest) error {
	if _, err := uuid.Parse(r.AppointmentID); err != nil {
		return ErrInvalidRequest
	}
	if strings.TrimSpace(r.AuthorizationID) == "" {
		return ErrInvalidRequest
	}
	return validateEmail(r.CustomerEmail)
}

// validateEmail allows an empty address; receipts are skipped then.
func validateEmail(s string) error {
	if s == "" {
		return nil
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return ErrInvalidRequest
	}
	return nil
}
