package appointment

import (
	"context"
	"time"

	"clinic/internal/catalog"
	"clinic/kit/broker"

	"github.com/stretchr/testify/mock"
)

type RepositoryMock struct {
	mock.Mock
	RepositoryContract
}

func (m *RepositoryMock) Create(ctx context.Context, a *Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *RepositoryMock) Get(ctx context.Context, appointmentID string) (*Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Appointment), args.Error(1)
}

func (m *RepositoryMock) MarkPaid(ctx context.Context, appointmentID, transactionID string, paidAt time.Time) error {
	args := m.Called(ctx, appointmentID, transactionID, paidAt)
	return args.Error(0)
}

type CatalogMock struct {
	mock.Mock
	CatalogContract
}

func (m *CatalogMock) GetService(ctx context.Context, serviceID string) (*catalog.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Service), args.Error(1)
}

type PublisherMock struct {
	mock.Mock
	PublisherContract
}

func (m *PublisherMock) Publish(ctx context.Context, evt broker.Event) []error {
	args := m.Called(ctx, evt)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]error)
}

type StoreMock struct {
	mock.Mock
	StoreContract
}

func (m *StoreMock) Append(ctx context.Context, aggregateID string, evt broker.Event) error {
	args := m.Called(ctx, aggregateID, evt)
	return args.Error(0)
}
