package handlers

import (
	"context"
	"fmt"

	"clinic/internal/events"
	"clinic/kit/broker"
	"clinic/kit/observability"
)

type RecoveryContract interface {
	Track(evt events.PaymentEscalated)
	Resolve(appointmentID string) bool
}

// RecoveryEvent keeps the manual-resolution queue in step with the event
// stream: an escalation opens a case and a later payment closes it.
type RecoveryEvent struct {
	logger   *observability.Logger
	recovery RecoveryContract
}

func NewRecoveryEvent(logger *observability.Logger, r RecoveryContract) *RecoveryEvent {
	return &RecoveryEvent{logger: logger, recovery: r}
}

func (h *RecoveryEvent) HandlePaymentEscalated(ctx context.Context, evt broker.Event) error {
	e, ok := evt.(events.PaymentEscalated)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedEventType, evt)
	}
	h.recovery.Track(e)
	return nil
}

func (h *RecoveryEvent) HandleAppointmentPaid(ctx context.Context, evt broker.Event) error {
	e, ok := evt.(events.AppointmentPaid)
	if !ok {
		return fmt.Errorf("%w: %T", ErrUnexpectedEventType, evt)
	}
	if h.recovery.Resolve(e.AppointmentID) && h.logger != nil {
		h.logger.Info("escalation resolved", "appointment_id", e.AppointmentID, "payment_id", e.PaymentID)
	}
	return nil
}
