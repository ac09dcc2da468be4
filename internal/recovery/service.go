package recovery

import (
	"context"
	"sort"
	"sync"
	"time"

	"clinic/internal/events"
	"clinic/kit/broker"
	"clinic/kit/observability"
)

// Escalation describes a payment that reported success at the gateway but
// could not be settled, so it needs manual resolution.
type Escalation struct {
	AppointmentID   string
	ServiceID       string
	AuthorizationID string
	Reason          string
}

type StoreContract interface {
	Append(ctx context.Context, aggregateID string, evt broker.Event) error
}

type Service struct {
	logger  *observability.Logger
	store   StoreContract
	bus     broker.Publisher
	metrics *observability.Metrics
	now     func() time.Time

	mu      sync.Mutex
	pending map[string]events.PaymentEscalated
}

func NewService(logger *observability.Logger, store StoreContract, bus broker.Publisher, metrics *observability.Metrics) *Service {
	return &Service{
		logger:  logger,
		store:   store,
		bus:     bus,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
		pending: make(map[string]events.PaymentEscalated),
	}
}

// Escalate records the case once per appointment. Repeated escalations for the
// same appointment keep the latest reason.
func (s *Service) Escalate(ctx context.Context, e Escalation) {
	evt := events.PaymentEscalated{
		AppointmentID:   e.AppointmentID,
		ServiceID:       e.ServiceID,
		AuthorizationID: e.AuthorizationID,
		Reason:          e.Reason,
		At:              s.now(),
	}

	s.mu.Lock()
	_, seen := s.pending[e.AppointmentID]
	s.pending[e.AppointmentID] = evt
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Error("payment escalated", "appointment_id", e.AppointmentID, "service_id", e.ServiceID, "authorization_id", e.AuthorizationID, "reason", e.Reason)
	}
	if s.store != nil {
		if err := s.store.Append(ctx, e.AppointmentID, evt); err != nil && s.logger != nil {
			s.logger.Error("recovery error", "layer", "service", "component", "recovery", "method", "Escalate", "error", err.Error())
		}
	}
	if s.bus != nil {
		s.bus.Publish(ctx, evt)
	}
	if s.metrics != nil && !seen {
		s.metrics.Escalations.Add(1)
	}
}

// Track registers an escalation already recorded elsewhere, for example
// while replaying the journal. Nothing is appended or published.
func (s *Service) Track(evt events.PaymentEscalated) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[evt.AppointmentID] = evt
}

// Pending returns open escalations ordered by appointment id.
func (s *Service) Pending() []events.PaymentEscalated {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.PaymentEscalated, 0, len(s.pending))
	for _, e := range s.pending {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentID < out[j].AppointmentID })
	return out
}

// Resolve closes an escalation. It reports false when nothing was pending.
func (s *Service) Resolve(appointmentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[appointmentID]; !ok {
		return false
	}
	delete(s.pending, appointmentID)
	return true
}

// SendToDLQ logs an event a subscriber failed to handle.
func (s *Service) SendToDLQ(ctx context.Context, topic string, reason string, payload any) {
	if s.logger == nil {
		return
	}
	s.logger.Error("dlq", "topic", topic, "reason", reason, "payload", payload)
}
