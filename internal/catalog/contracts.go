package catalog

import "context"

// RepositoryContract define catalog repository responsibility.
type RepositoryContract interface {
	Get(ctx context.Context, serviceID string) (*Service, error)
	Upsert(ctx context.Context, s *Service) error
	Delete(ctx context.Context, serviceID string) error
}

// ServiceContract define catalog service responsibility.
type ServiceContract interface {
	GetService(ctx context.Context, serviceID string) (*Service, error)
	Upsert(ctx context.Context, req UpsertRequest) (*Service, error)
	Delete(ctx context.Context, serviceID string) error
}
