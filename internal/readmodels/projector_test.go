package readmodels

import (
	"context"
	"testing"
	"time"

	"clinic/internal/events"
	"clinic/kit/db"

	"github.com/stretchr/testify/require"
)

func TestProjector_Replay_BuildsAppointmentView(t *testing.T) {
	ctx := context.Background()
	journal := db.NewJournal()
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, journal.Append(ctx, "a1", events.AppointmentBooked{AppointmentID: "a1", ServiceID: "s1", DoctorID: "d1", ClientID: "c1", At: now}))
	require.NoError(t, journal.Append(ctx, "a2", events.AppointmentBooked{AppointmentID: "a2", ServiceID: "s1", At: now}))
	require.NoError(t, journal.Append(ctx, "a1", events.AppointmentPaid{AppointmentID: "a1", PaymentID: "p1", ServiceID: "s1", AuthorizationID: "pi_1", Amount: 12000, Currency: "usd", At: now.Add(time.Minute)}))
	require.NoError(t, journal.Append(ctx, "a2", events.PaymentEscalated{AppointmentID: "a2", ServiceID: "s1", Reason: "service not found", At: now.Add(time.Minute)}))
	require.NoError(t, journal.Append(ctx, "u1", events.UserRoleChanged{UserID: "u1", From: "admin", To: "doctor"}))

	p := NewProjector()
	require.NoError(t, p.Replay(ctx, journal))
	require.Equal(t, 2, p.Len())

	paid, ok := p.GetAppointment("a1")
	require.True(t, ok)
	require.Equal(t, "paid", paid.PaymentStatus)
	require.Equal(t, "d1", paid.DoctorID)
	require.EqualValues(t, 12000, paid.Amount)
	require.NotNil(t, paid.PaidAt)
	require.True(t, now.Add(time.Minute).Equal(*paid.PaidAt))

	escalated, ok := p.GetAppointment("a2")
	require.True(t, ok)
	require.Equal(t, "unpaid", escalated.PaymentStatus)
	require.True(t, escalated.Escalated)
	require.Equal(t, "service not found", escalated.EscalationReason)
}

func TestProjector_ApplyRecord_CorruptPayload(t *testing.T) {
	p := NewProjector()
	err := p.ApplyRecord(context.Background(), db.Record{EventName: "appointment.paid", Payload: []byte(`{"amount":"x"}`)})
	require.ErrorIs(t, err, db.ErrInternal)
}

func TestProjector_Apply_PaidBeforeBooked(t *testing.T) {
	ctx := context.Background()
	p := NewProjector()
	require.NoError(t, p.Apply(ctx, events.AppointmentPaid{AppointmentID: "a1", ServiceID: "s1", Amount: 100}))
	require.NoError(t, p.Apply(ctx, events.AppointmentBooked{AppointmentID: "a1", ServiceID: "s1", DoctorID: "d1"}))

	v, ok := p.GetAppointment("a1")
	require.True(t, ok)
	require.Equal(t, "paid", v.PaymentStatus)
	require.Equal(t, "d1", v.DoctorID)
}
