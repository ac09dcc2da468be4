package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type RepositoryMock struct {
	mock.Mock
	RepositoryContract
}

func (m *RepositoryMock) Get(ctx context.Context, serviceID string) (*Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Service), args.Error(1)
}

func (m *RepositoryMock) Upsert(ctx context.Context, s *Service) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *RepositoryMock) Delete(ctx context.Context, serviceID string) error {
	args := m.Called(ctx, serviceID)
	return args.Error(0)
}
