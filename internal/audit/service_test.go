package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"clinic/internal/events"
	"clinic/kit/observability"

	"github.com/stretchr/testify/require"
)

func TestService_Close(t *testing.T) {
	var tests = []struct {
		name string
		svc  func(t *testing.T) *Service
	}{
		{
			name: "close without file",
			svc: func(t *testing.T) *Service {
				return NewService(observability.NewNopLogger())
			},
		},
		{
			name: "close with file",
			svc: func(t *testing.T) *Service {
				svc, err := Open(observability.NewNopLogger(), filepath.Join(t.TempDir(), "audit.jsonl"))
				require.NoError(t, err)
				return svc
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := tt.svc(t)
			require.NoError(t, svc.Close())
			require.NoError(t, svc.Close())
		})
	}
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "audit.jsonl")
	svc, err := Open(observability.NewNopLogger(), path)
	require.NoError(t, err)

	require.NoError(t, svc.Record(ctx, events.AppointmentPaid{AppointmentID: "a1", Amount: 12000, Currency: "usd"}))
	require.NoError(t, svc.Record(ctx, events.UserRoleChanged{UserID: "u1", From: "admin", To: "doctor"}))
	require.Equal(t, 2, svc.Written())
	require.NoError(t, svc.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	require.Len(t, entries, 2)
	require.Equal(t, "appointment.paid", entries[0].Event)
	require.Equal(t, "a1", entries[0].Key)
	require.Equal(t, "user.role_changed", entries[1].Event)

	var paid events.AppointmentPaid
	require.NoError(t, json.Unmarshal(entries[0].Payload, &paid))
	require.EqualValues(t, 12000, paid.Amount)
}

func TestService_RecordWithoutFile(t *testing.T) {
	svc := NewService(observability.NewNopLogger())
	require.NoError(t, svc.Record(context.Background(), events.AppointmentBooked{AppointmentID: "a1"}))
	require.Equal(t, 1, svc.Written())
}
