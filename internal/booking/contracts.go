package booking

import (
	"context"
	"time"

	"clinic/internal/appointment"
	"clinic/internal/catalog"
	"clinic/internal/ledger"
	"clinic/internal/recovery"
	"clinic/kit/broker"
	gateway "clinic/kit/external_payment_gateway"
)

// CatalogContract define catalog lookup used by the coordinator.
type CatalogContract interface {
	GetService(ctx context.Context, serviceID string) (*catalog.Service, error)
}

// AppointmentContract define the appointment operations used on confirm.
type AppointmentContract interface {
	Get(ctx context.Context, appointmentID string) (*appointment.Appointment, error)
	MarkPaid(ctx context.Context, appointmentID, transactionID string, paidAt time.Time) (*appointment.Appointment, error)
}

// LedgerContract define append responsibility (payment ledger).
type LedgerContract interface {
	Append(ctx context.Context, r *ledger.Record) error
}

// GatewayContract define payment authorization responsibility.
type GatewayContract interface {
	Authorize(ctx context.Context, req gateway.AuthorizeRequest) (*gateway.Authorization, error)
}

// EscalatorContract define manual-resolution responsibility.
type EscalatorContract interface {
	Escalate(ctx context.Context, e recovery.Escalation)
}

// PublisherContract define publish responsibility (broker).
type PublisherContract interface {
	Publish(ctx context.Context, evt broker.Event) []error
}

// StoreContract define append responsibility (event journal).
type StoreContract interface {
	Append(ctx context.Context, aggregateID string, evt broker.Event) error
}

// ServiceContract define the coordinator operations exposed upward.
type ServiceContract interface {
	RequestAuthorization(ctx context.Context, req AuthorizationRequest) (*Authorization, error)
	ConfirmPayment(ctx context.Context, req ConfirmRequest) (*ledger.Record, error)
}
