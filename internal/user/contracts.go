package user

import (
	"context"

	"clinic/kit/broker"
)

// RepositoryContract define user repository responsibility.
type RepositoryContract interface {
	Get(ctx context.Context, userID string) (*User, error)
	Upsert(ctx context.Context, u *User) error
	CountByRole(ctx context.Context, role Role) (int64, error)
	UpdateRole(ctx context.Context, userID string, from, to Role) error
}

// ServiceContract define user service responsibility.
type ServiceContract interface {
	Get(ctx context.Context, userID string) (*User, error)
	Upsert(ctx context.Context, req UpsertRequest) (*User, error)
	ChangeRole(ctx context.Context, req ChangeRoleRequest) (*User, error)
}

// PublisherContract define publish responsibility (broker).
type PublisherContract interface {
	Publish(ctx context.Context, evt broker.Event) []error
}

// StoreContract define append responsibility (event journal).
type StoreContract interface {
	Append(ctx context.Context, aggregateID string, evt broker.Event) error
}
