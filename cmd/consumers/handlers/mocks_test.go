package handlers

import (
	"context"

	"clinic/internal/events"
	"clinic/kit/broker"

	"github.com/stretchr/testify/mock"
)

type AuditorMock struct{ mock.Mock }

func (m *AuditorMock) Record(ctx context.Context, evt broker.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type DLQMock struct{ mock.Mock }

func (m *DLQMock) SendToDLQ(ctx context.Context, topic string, reason string, payload any) {
	m.Called(ctx, topic, reason, payload)
}

type MetricsMock struct{ mock.Mock }

func (m *MetricsMock) AppointmentsBookedAdd(n int64)   { m.MethodCalled("appointments_booked", n) }
func (m *MetricsMock) AuthorizationsIssuedAdd(n int64) { m.MethodCalled("authorizations_issued", n) }
func (m *MetricsMock) PaymentsConfirmedAdd(n int64)    { m.MethodCalled("payments_confirmed", n) }
func (m *MetricsMock) EscalationsAdd(n int64)          { m.MethodCalled("escalations", n) }
func (m *MetricsMock) RoleChangesAdd(n int64)          { m.MethodCalled("role_changes", n) }

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) SendReceipt(ctx context.Context, evt events.AppointmentPaid) bool {
	args := m.Called(ctx, evt)
	return args.Bool(0)
}

type RecoveryMock struct{ mock.Mock }

func (m *RecoveryMock) Track(evt events.PaymentEscalated) { m.Called(evt) }

func (m *RecoveryMock) Resolve(appointmentID string) bool {
	args := m.Called(appointmentID)
	return args.Bool(0)
}
