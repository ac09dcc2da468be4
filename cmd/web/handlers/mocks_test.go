package handlers

import (
	"context"

	"clinic/internal/appointment"
	"clinic/internal/booking"
	"clinic/internal/health"
	"clinic/internal/ledger"
	"clinic/internal/readmodels"
	"clinic/internal/user"

	"github.com/stretchr/testify/mock"
)

type bookingServiceMock struct{ mock.Mock }

func (m *bookingServiceMock) RequestAuthorization(ctx context.Context, req booking.AuthorizationRequest) (*booking.Authorization, error) {
	args := m.Called(ctx, req)
	a, _ := args.Get(0).(*booking.Authorization)
	return a, args.Error(1)
}

func (m *bookingServiceMock) ConfirmPayment(ctx context.Context, req booking.ConfirmRequest) (*ledger.Record, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*ledger.Record)
	return r, args.Error(1)
}

type healthMock struct{ mock.Mock }

func (m *healthMock) Check(ctx context.Context) health.Result {
	args := m.Called(ctx)
	return args.Get(0).(health.Result)
}

type appointmentServiceMock struct{ mock.Mock }

func (m *appointmentServiceMock) Create(ctx context.Context, req appointment.CreateRequest) (*appointment.Appointment, error) {
	args := m.Called(ctx, req)
	a, _ := args.Get(0).(*appointment.Appointment)
	return a, args.Error(1)
}

func (m *appointmentServiceMock) Get(ctx context.Context, appointmentID string) (*appointment.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	a, _ := args.Get(0).(*appointment.Appointment)
	return a, args.Error(1)
}

type ledgerReaderMock struct{ mock.Mock }

func (m *ledgerReaderMock) GetByAppointment(ctx context.Context, appointmentID string) (*ledger.Record, error) {
	args := m.Called(ctx, appointmentID)
	r, _ := args.Get(0).(*ledger.Record)
	return r, args.Error(1)
}

type readModelMock struct{ mock.Mock }

func (m *readModelMock) GetAppointment(appointmentID string) (readmodels.AppointmentView, bool) {
	args := m.Called(appointmentID)
	v, _ := args.Get(0).(readmodels.AppointmentView)
	return v, args.Bool(1)
}

type userServiceMock struct{ mock.Mock }

func (m *userServiceMock) ChangeRole(ctx context.Context, req user.ChangeRoleRequest) (*user.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}
