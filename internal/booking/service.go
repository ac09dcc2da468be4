package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"clinic/internal/appointment"
	"clinic/internal/catalog"
	"clinic/internal/ledger"
	"clinic/internal/recovery"
	"clinic/kit/db"
	"clinic/kit/observability"

	"github.com/google/uuid"
)

const defaultGatewayTimeout = 10 * time.Second

// Service coordinates the catalog, appointments, the payment ledger and the
// payment gateway.
type Service struct {
	tx           db.Transactor
	catalog      CatalogContract
	appointments AppointmentContract
	ledger       LedgerContract
	gateway      GatewayContract

	bus       PublisherContract
	store     StoreContract
	escalator EscalatorContract
	metrics   *observability.Metrics

	gatewayTimeout time.Duration
	now            func() time.Time
}

type Option func(*Service)

func WithPublisher(bus PublisherContract) Option { return func(s *Service) { s.bus = bus } }

func WithStore(store StoreContract) Option { return func(s *Service) { s.store = store } }

func WithEscalator(e EscalatorContract) Option { return func(s *Service) { s.escalator = e } }

func WithMetrics(m *observability.Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithGatewayTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.gatewayTimeout = d
		}
	}
}

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(tx db.Transactor, catalog CatalogContract, appointments AppointmentContract, ledger LedgerContract, gw GatewayContract, opts ...Option) *Service {
	s := &Service{
		tx:             tx,
		catalog:        catalog,
		appointments:   appointments,
		ledger:         ledger,
		gateway:        gw,
		gatewayTimeout: defaultGatewayTimeout,
		now:            func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestAuthorization prices the service from the catalog and asks the
// gateway for an authorization. It writes no local state, so callers may
// retry freely.
func (s *Service) RequestAuthorization(ctx context.Context, req AuthorizationRequest) (*Authorization, error) {
	if err := ValidateAuthorizationRequest(req); err != nil {
		log.Printf("layer=service component=booking method=RequestAuthorization service_id=%s err=%v", req.ServiceID, err)
		return nil, errors.Join(db.ErrInvalid, err)
	}

	svc, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		log.Printf("layer=service component=booking method=RequestAuthorization service_id=%s err=%v", req.ServiceID, err)
		return nil, err
	}

	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()
	auth, err := s.gateway.Authorize(gctx, ToAuthorizeRequest(svc, req))
	if err != nil {
		log.Printf("layer=service component=booking method=RequestAuthorization service_id=%s amount=%d err=%v", svc.ID, svc.MinorUnits(), err)
		if s.metrics != nil {
			s.metrics.AuthorizationsFailed.Add(1)
		}
		return nil, errors.Join(ErrAuthorizationFailed, err)
	}

	out := ToAuthorization(svc, auth)
	evt := ToPaymentAuthorizedEvent(out, req.CustomerEmail, s.now())
	if s.store != nil {
		if err := s.store.Append(ctx, out.ID, evt); err != nil {
			log.Printf("layer=service component=booking method=RequestAuthorization authorization_id=%s err=%v", out.ID, err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(ctx, evt)
	}
	if s.metrics != nil {
		s.metrics.AuthorizationsIssued.Add(1)
	}
	return out, nil
}

// ConfirmPayment settles an appointment. The status flip and the ledger append
// commit together or not at all: the conditional MarkPaid runs first inside
// the transaction, so of two concurrent confirmations exactly one succeeds
// and the other gets ErrAlreadyPaid.
func (s *Service) ConfirmPayment(ctx context.Context, req ConfirmRequest) (*ledger.Record, error) {
	if err := ValidateConfirmRequest(req); err != nil {
		log.Printf("layer=service component=booking method=ConfirmPayment appointment_id=%s err=%v", req.AppointmentID, err)
		return nil, errors.Join(db.ErrInvalid, err)
	}

	var (
		rec       *ledger.Record
		escalate  *recovery.Escalation
		paidAt    = s.now()
		paymentID = uuid.NewString()
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		appt, err := s.appointments.Get(ctx, req.AppointmentID)
		if err != nil {
			return err
		}
		if appt.IsPaid() {
			return errors.Join(db.ErrConflict, ErrAlreadyPaid)
		}

		svc, err := s.catalog.GetService(ctx, appt.ServiceID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				escalate = &recovery.Escalation{
					AppointmentID:   appt.ID,
					ServiceID:       appt.ServiceID,
					AuthorizationID: req.AuthorizationID,
					Reason:          "service not found at confirmation",
				}
			}
			return err
		}

		if _, err := s.appointments.MarkPaid(ctx, appt.ID, req.AuthorizationID, paidAt); err != nil {
			return err
		}

		r := ToRecord(paymentID, appt, svc, req.AuthorizationID, paidAt)
		if err := s.ledger.Append(ctx, r); err != nil {
			if errors.Is(err, ledger.ErrDuplicatePayment) {
				return errors.Join(err, ErrAlreadyPaid)
			}
			return err
		}
		rec = r
		return nil
	})
	if err != nil {
		s.onConfirmFailure(ctx, req, escalate, err)
		return nil, err
	}

	evt := ToAppointmentPaidEvent(rec, req)
	if s.store != nil {
		if err := s.store.Append(ctx, rec.AppointmentID, evt); err != nil {
			log.Printf("layer=service component=booking method=ConfirmPayment appointment_id=%s payment_id=%s err=%v", rec.AppointmentID, rec.ID, err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(ctx, evt)
	}
	if s.metrics != nil {
		s.metrics.PaymentsConfirmed.Add(1)
	}
	return rec, nil
}

func (s *Service) onConfirmFailure(ctx context.Context, req ConfirmRequest, escalate *recovery.Escalation, err error) {
	switch {
	case errors.Is(err, appointment.ErrAlreadyPaid):
		if s.metrics != nil {
			s.metrics.PaymentsDuplicate.Add(1)
		}
		return
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		return
	}
	log.Printf("layer=service component=booking method=ConfirmPayment appointment_id=%s authorization_id=%s err=%v", req.AppointmentID, req.AuthorizationID, err)
	if escalate != nil && s.escalator != nil {
		s.escalator.Escalate(ctx, *escalate)
	}
}
