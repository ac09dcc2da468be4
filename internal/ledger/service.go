package ledger

import (
	"context"
	"errors"
	"log"

	"clinic/kit/db"

	"github.com/google/uuid"
)

type Service struct {
	repository RepositoryContract
}

func NewService(repo RepositoryContract) *Service {
	return &Service{repository: repo}
}

// Append inserts a record. A second record for the same appointment fails
// with ErrDuplicatePayment.
func (s *Service) Append(ctx context.Context, r *Record) error {
	if err := ValidateRecord(r); err != nil {
		return errors.Join(db.ErrInvalid, err)
	}
	if err := s.repository.Append(ctx, r); err != nil {
		if db.IsConflict(err) {
			return errors.Join(err, ErrDuplicatePayment)
		}
		log.Printf("layer=service component=ledger method=Append appointment_id=%s err=%v", r.AppointmentID, err)
		return err
	}
	return nil
}

func (s *Service) GetByAppointment(ctx context.Context, appointmentID string) (*Record, error) {
	if _, err := uuid.Parse(appointmentID); err != nil {
		return nil, errors.Join(db.ErrInvalid, ErrInvalidRecord)
	}
	r, err := s.repository.GetByAppointment(ctx, appointmentID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.Join(err, ErrPaymentNotFound)
		}
		return nil, err
	}
	return r, nil
}
