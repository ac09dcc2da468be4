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

	"github.com/stretchr/testify/mock"
)

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

type AppointmentMock struct {
	mock.Mock
	AppointmentContract
}

func (m *AppointmentMock) Get(ctx context.Context, appointmentID string) (*appointment.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appointment.Appointment), args.Error(1)
}

func (m *AppointmentMock) MarkPaid(ctx context.Context, appointmentID, transactionID string, paidAt time.Time) (*appointment.Appointment, error) {
	args := m.Called(ctx, appointmentID, transactionID, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appointment.Appointment), args.Error(1)
}

type LedgerMock struct {
	mock.Mock
	LedgerContract
}

func (m *LedgerMock) Append(ctx context.Context, r *ledger.Record) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type GatewayMock struct {
	mock.Mock
	GatewayContract
}

func (m *GatewayMock) Authorize(ctx context.Context, req gateway.AuthorizeRequest) (*gateway.Authorization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Authorization), args.Error(1)
}

type EscalatorMock struct {
	mock.Mock
	EscalatorContract
}

func (m *EscalatorMock) Escalate(ctx context.Context, e recovery.Escalation) {
	m.Called(ctx, e)
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
