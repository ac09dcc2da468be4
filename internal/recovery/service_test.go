package recovery

import (
	"context"
	"testing"

	"clinic/internal/events"
	"clinic/kit/broker"
	"clinic/kit/db"
	"clinic/kit/observability"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestService_Escalate(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)
	journal := db.NewJournal()
	bus := broker.New()
	metrics := observability.NewMetrics()

	var published []broker.Event
	bus.Subscribe(events.PaymentEscalated{}.Name(), func(_ context.Context, evt broker.Event) error {
		published = append(published, evt)
		return nil
	})

	svc := NewService(observability.NewLoggerFrom(zap.New(core)), journal, bus, metrics)
	e := Escalation{AppointmentID: "a1", ServiceID: "s1", AuthorizationID: "pi_1", Reason: "service not found"}
	svc.Escalate(ctx, e)
	svc.Escalate(ctx, e)

	require.Len(t, svc.Pending(), 1)
	require.Equal(t, "pi_1", svc.Pending()[0].AuthorizationID)
	require.EqualValues(t, 1, metrics.Escalations.Load())
	require.Len(t, journal.Load(ctx, "a1"), 2)
	require.Len(t, published, 2)
	require.Equal(t, 2, logs.FilterMessage("payment escalated").Len())

	require.True(t, svc.Resolve("a1"))
	require.False(t, svc.Resolve("a1"))
	require.Empty(t, svc.Pending())
}

func TestService_SendToDLQ(t *testing.T) {
	var tests = []struct {
		name string
		svc  func() *Service
	}{
		{
			name: "nil logger does not panic",
			svc: func() *Service {
				return NewService(nil, nil, nil, nil)
			},
		},
		{
			name: "logger set does not panic",
			svc: func() *Service {
				return NewService(observability.NewNopLogger(), nil, nil, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := tt.svc()
			require.NotPanics(t, func() {
				svc.SendToDLQ(context.Background(), "appointment.paid", "handler failed", map[string]any{"k": "v"})
			})
		})
	}
}

func TestService_TrackDoesNotJournal(t *testing.T) {
	journal := db.NewJournal()
	svc := NewService(nil, journal, nil, nil)
	svc.Track(events.PaymentEscalated{AppointmentID: "a1", Reason: "service not found"})

	require.Len(t, svc.Pending(), 1)
	require.Empty(t, journal.All(context.Background()))
}
