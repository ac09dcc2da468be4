package ledger

import "context"

// RepositoryContract define ledger repository responsibility. There is no
// update or delete.
type RepositoryContract interface {
	Append(ctx context.Context, r *Record) error
	GetByAppointment(ctx context.Context, appointmentID string) (*Record, error)
}

// ServiceContract define ledger service responsibility.
type ServiceContract interface {
	Append(ctx context.Context, r *Record) error
	GetByAppointment(ctx context.Context, appointmentID string) (*Record, error)
}
