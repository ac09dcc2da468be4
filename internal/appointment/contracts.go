package appointment

import (
	"context"
	"time"

	"clinic/internal/catalog"
	"clinic/kit/broker"
)

// RepositoryContract define appointment repository responsibility.
type RepositoryContract interface {
	Create(ctx context.Context, a *Appointment) error
	Get(ctx context.Context, appointmentID string) (*Appointment, error)
	MarkPaid(ctx context.Context, appointmentID, transactionID string, paidAt time.Time) error
}

// ServiceContract define appointment service responsibility.
type ServiceContract interface {
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	Get(ctx context.Context, appointmentID string) (*Appointment, error)
	MarkPaid(ctx context.Context, appointmentID, transactionID string, paidAt time.Time) (*Appointment, error)
}

// CatalogContract define the catalog lookup used when booking.
type CatalogContract interface {
	GetService(ctx context.Context, serviceID string) (*catalog.Service, error)
}

// PublisherContract define publish responsibility (broker).
type PublisherContract interface {
	Publish(ctx context.Context, evt broker.Event) []error
}

// StoreContract define append responsibility (event journal).
type StoreContract interface {
	Append(ctx context.Context, aggregateID string, evt broker.Event) error
}
