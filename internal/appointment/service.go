package appointment

import (
	"context"
	"errors"
	"log"
	"time"

	"clinic/kit/db"
	"clinic/kit/observability"

	"github.com/google/uuid"
)

type Service struct {
	bus        PublisherContract
	store      StoreContract
	repository RepositoryContract
	catalog    CatalogContract
	metrics    *observability.Metrics
	now        func() time.Time
}

func NewService(bus PublisherContract, store StoreContract, repo RepositoryContract, catalog CatalogContract, metrics *observability.Metrics) *Service {
	return &Service{
		bus:        bus,
		store:      store,
		repository: repo,
		catalog:    catalog,
		metrics:    metrics,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create books an appointment. The stored status is always unpaid no matter
// what the caller sent.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	if err := ValidateCreateRequest(req); err != nil {
		log.Printf("layer=service component=appointment method=Create service_id=%s err=%v", req.ServiceID, err)
		return nil, errors.Join(db.ErrInvalid, err)
	}
	if _, err := s.catalog.GetService(ctx, req.ServiceID); err != nil {
		log.Printf("layer=service component=appointment method=Create service_id=%s err=%v", req.ServiceID, err)
		return nil, err
	}

	a := ToAppointment(uuid.NewString(), req, s.now())
	if err := s.repository.Create(ctx, a); err != nil {
		log.Printf("layer=service component=appointment method=Create appointment_id=%s err=%v", a.ID, err)
		return nil, err
	}

	evt := ToAppointmentBookedEvent(a)
	if s.store != nil {
		if err := s.store.Append(ctx, a.ID, evt); err != nil {
			log.Printf("layer=service component=appointment method=Create appointment_id=%s err=%v", a.ID, err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(ctx, evt)
	}
	if s.metrics != nil {
		s.metrics.AppointmentsBooked.Add(1)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, appointmentID string) (*Appointment, error) {
	if err := ValidateAppointmentID(appointmentID); err != nil {
		return nil, errors.Join(db.ErrInvalid, err)
	}
	a, err := s.repository.Get(ctx, appointmentID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.Join(err, ErrAppointmentNotFound)
		}
		log.Printf("layer=service component=appointment method=Get appointment_id=%s err=%v", appointmentID, err)
		return nil, err
	}
	return a, nil
}

// MarkPaid flips an unpaid appointment to paid and returns the stored row.
// A second call fails with ErrAlreadyPaid.
func (s *Service) MarkPaid(ctx context.Context, appointmentID, transactionID string, paidAt time.Time) (*Appointment, error) {
	if err := ValidateAppointmentID(appointmentID); err != nil {
		return nil, errors.Join(db.ErrInvalid, err)
	}
	if err := s.repository.MarkPaid(ctx, appointmentID, transactionID, paidAt.UTC()); err != nil {
		switch {
		case db.IsConflict(err):
			return nil, errors.Join(err, ErrAlreadyPaid)
		case db.IsNotFound(err):
			return nil, errors.Join(err, ErrAppointmentNotFound)
		}
		log.Printf("layer=service component=appointment method=MarkPaid appointment_id=%s err=%v", appointmentID, err)
		return nil, err
	}
	return s.Get(ctx, appointmentID)
}
