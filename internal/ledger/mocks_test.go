package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type RepositoryMock struct {
	mock.Mock
	RepositoryContract
}

func (m *RepositoryMock) Append(ctx context.Context, r *Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RepositoryMock) GetByAppointment(ctx context.Context, appointmentID string) (*Record, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}
