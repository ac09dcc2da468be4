package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAppointment  = errors.New("invalid appointment")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAlreadyPaid         = errors.New("appointment already paid")
)

// CreateRequest lists the only fields a caller may set when booking. Status,
// id and timestamps are assigned by the service.
type CreateRequest struct {
	ServiceID string
	DoctorID  string
	ClientID  string
	Slot      time.Time
}

func ValidateAppointmentID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidAppointment
	}
	return nil
}

func ValidateCreateRequest(r CreateRequest) error {
	for _, id := range []string{r.ServiceID, r.DoctorID, r.ClientID} {
		if _, err := uuid.Parse(id); err != nil {
			return ErrInvalidAppointment
		}
	}
	if r.Slot.IsZero() {
		return ErrInvalidAppointment
	}
	return nil
}
