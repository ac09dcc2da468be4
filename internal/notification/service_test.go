package notification

import (
	"context"
	"testing"

	"clinic/internal/events"
	"clinic/kit/observability"

	"github.com/stretchr/testify/require"
)

func TestBuildReceipt(t *testing.T) {
	r := BuildReceipt(events.AppointmentPaid{
		PaymentID:     "p1",
		AppointmentID: "a1",
		ServiceTitle:  "Checkup",
		Amount:        12000,
		Currency:      "usd",
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
	})
	require.Equal(t, "ana@example.com", r.To)
	require.Equal(t, "Payment received: Checkup", r.Subject)
	require.Equal(t, "Hi Ana, we received 120.00 USD for Checkup (appointment a1).", r.Body)
}

func TestService_SendReceipt(t *testing.T) {
	ctx := context.Background()

	var tests = []struct {
		name     string
		evt      events.AppointmentPaid
		expected bool
	}{
		{name: "no email", evt: events.AppointmentPaid{PaymentID: "p1"}},
		{name: "sent", evt: events.AppointmentPaid{PaymentID: "p2", CustomerEmail: "a@b.c", Amount: 5}, expected: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(observability.NewNopLogger())
			require.Equal(t, tt.expected, svc.SendReceipt(ctx, tt.evt))
			_, ok := svc.Sent(tt.evt.PaymentID)
			require.Equal(t, tt.expected, ok)
		})
	}
}

func TestService_SendReceiptOnce(t *testing.T) {
	svc := NewService(observability.NewNopLogger())
	evt := events.AppointmentPaid{PaymentID: "p1", CustomerEmail: "a@b.c", Amount: 100}
	require.True(t, svc.SendReceipt(context.Background(), evt))
	require.False(t, svc.SendReceipt(context.Background(), evt))
}
