package handlers

import (
	"context"

	"clinic/internal/events"
	"clinic/kit/broker"
)

type MetricsContract interface {
	AppointmentsBookedAdd(n int64)
	AuthorizationsIssuedAdd(n int64)
	PaymentsConfirmedAdd(n int64)
	EscalationsAdd(n int64)
	RoleChangesAdd(n int64)
}

// MetricsEvent rebuilds counters from events. The web process counts at the
// source, so this is used when replaying the journal.
type MetricsEvent struct {
	m MetricsContract
}

func NewMetricsEvent(m MetricsContract) *MetricsEvent {
	return &MetricsEvent{m: m}
}

func (h *MetricsEvent) HandleAny(ctx context.Context, evt broker.Event) error {
	if h.m == nil {
		return nil
	}

	switch evt.(type) {
	case events.AppointmentBooked:
		h.m.AppointmentsBookedAdd(1)
	case events.PaymentAuthorized:
		h.m.AuthorizationsIssuedAdd(1)
	case events.AppointmentPaid:
		h.m.PaymentsConfirmedAdd(1)
	case events.PaymentEscalated:
		h.m.EscalationsAdd(1)
	case events.UserRoleChanged:
		h.m.RoleChangesAdd(1)
	}
	return nil
}
