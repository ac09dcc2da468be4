package appointment

import (
	"context"
	"testing"
	"time"

	"clinic/internal/catalog"
	"clinic/internal/events"
	"clinic/kit/db"
	"clinic/kit/observability"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateRequest {
	return CreateRequest{
		ServiceID: testServiceID,
		DoctorID:  testDoctorID,
		ClientID:  testClientID,
		Slot:      time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC),
	}
}

func TestAppointmentService_Create(t *testing.T) {
	ctx := context.Background()
	svc := &catalog.Service{ID: testServiceID, Title: "Checkup", Price: decimal.NewFromInt(120), Currency: "usd"}

	var tests = []struct {
		name        string
		req         CreateRequest
		setup       func(repo *RepositoryMock, cat *CatalogMock, bus *PublisherMock, store *StoreMock)
		expectedErr []error
	}{
		{
			name: "malformed doctor id",
			req: func() CreateRequest {
				r := validCreateRequest()
				r.DoctorID = "doc"
				return r
			}(),
			setup:       func(*RepositoryMock, *CatalogMock, *PublisherMock, *StoreMock) {},
			expectedErr: []error{db.ErrInvalid, ErrInvalidAppointment},
		},
		{
			name: "missing slot",
			req: func() CreateRequest {
				r := validCreateRequest()
				r.Slot = time.Time{}
				return r
			}(),
			setup:       func(*RepositoryMock, *CatalogMock, *PublisherMock, *StoreMock) {},
			expectedErr: []error{ErrInvalidAppointment},
		},
		{
			name: "unknown service",
			req:  validCreateRequest(),
			setup: func(_ *RepositoryMock, cat *CatalogMock, _ *PublisherMock, _ *StoreMock) {
				cat.On("GetService", ctx, testServiceID).Return(nil, catalog.ErrServiceNotFound)
			},
			expectedErr: []error{catalog.ErrServiceNotFound},
		},
		{
			name: "storage error",
			req:  validCreateRequest(),
			setup: func(repo *RepositoryMock, cat *CatalogMock, _ *PublisherMock, _ *StoreMock) {
				cat.On("GetService", ctx, testServiceID).Return(svc, nil)
				repo.On("Create", ctx, mock.AnythingOfType("*appointment.Appointment")).Return(db.ErrInternal)
			},
			expectedErr: []error{db.ErrInternal},
		},
		{
			name: "success",
			req:  validCreateRequest(),
			setup: func(repo *RepositoryMock, cat *CatalogMock, bus *PublisherMock, store *StoreMock) {
				cat.On("GetService", ctx, testServiceID).Return(svc, nil)
				repo.On("Create", ctx, mock.MatchedBy(func(a *Appointment) bool {
					return a.PaymentStatus == StatusUnpaid && a.ID != "" && a.TransactionID == "" && a.PaidAt == nil
				})).Return(nil)
				store.On("Append", ctx, mock.Anything, mock.AnythingOfType("events.AppointmentBooked")).Return(nil)
				bus.On("Publish", ctx, mock.AnythingOfType("events.AppointmentBooked")).Return(nil)
			},
		},
		{
			name: "journal failure does not undo the booking",
			req:  validCreateRequest(),
			setup: func(repo *RepositoryMock, cat *CatalogMock, bus *PublisherMock, store *StoreMock) {
				cat.On("GetService", ctx, testServiceID).Return(svc, nil)
				repo.On("Create", ctx, mock.AnythingOfType("*appointment.Appointment")).Return(nil)
				store.On("Append", ctx, mock.Anything, mock.AnythingOfType("events.AppointmentBooked")).Return(db.ErrInternal)
				bus.On("Publish", ctx, mock.AnythingOfType("events.AppointmentBooked")).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo, cat, bus, store := new(RepositoryMock), new(CatalogMock), new(PublisherMock), new(StoreMock)
			tt.setup(repo, cat, bus, store)
			metrics := observability.NewMetrics()

			a, err := NewService(bus, store, repo, cat, metrics).Create(ctx, tt.req)
			if tt.expectedErr != nil {
				for _, e := range tt.expectedErr {
					require.ErrorIs(t, err, e)
				}
				require.Zero(t, metrics.AppointmentsBooked.Load())
				return
			}
			require.NoError(t, err)
			require.Equal(t, StatusUnpaid, a.PaymentStatus)
			require.Equal(t, testServiceID, a.ServiceID)
			require.EqualValues(t, 1, metrics.AppointmentsBooked.Load())
			bus.AssertExpectations(t)
			store.AssertExpectations(t)
		})
	}
}

func TestAppointmentService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	paidAt := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)

	var tests = []struct {
		name        string
		id          string
		setup       func(repo *RepositoryMock)
		expectedErr []error
	}{
		{
			name:        "malformed id",
			id:          "42",
			setup:       func(*RepositoryMock) {},
			expectedErr: []error{db.ErrInvalid, ErrInvalidAppointment},
		},
		{
			name: "already paid",
			id:   testAppointmentID,
			setup: func(repo *RepositoryMock) {
				repo.On("MarkPaid", ctx, testAppointmentID, "pi_1", paidAt).Return(db.ErrConflict)
			},
			expectedErr: []error{db.ErrConflict, ErrAlreadyPaid},
		},
		{
			name: "not found",
			id:   testAppointmentID,
			setup: func(repo *RepositoryMock) {
				repo.On("MarkPaid", ctx, testAppointmentID, "pi_1", paidAt).Return(db.ErrNotFound)
			},
			expectedErr: []error{db.ErrNotFound, ErrAppointmentNotFound},
		},
		{
			name: "success",
			id:   testAppointmentID,
			setup: func(repo *RepositoryMock) {
				paid := testAppointment()
				paid.PaymentStatus = StatusPaid
				paid.TransactionID = "pi_1"
				paid.PaidAt = &paidAt
				repo.On("MarkPaid", ctx, testAppointmentID, "pi_1", paidAt).Return(nil)
				repo.On("Get", ctx, testAppointmentID).Return(paid, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := new(RepositoryMock)
			tt.setup(repo)
			a, err := NewService(nil, nil, repo, new(CatalogMock), nil).MarkPaid(ctx, tt.id, "pi_1", paidAt)
			if tt.expectedErr != nil {
				for _, e := range tt.expectedErr {
					require.ErrorIs(t, err, e)
				}
				return
			}
			require.NoError(t, err)
			require.True(t, a.IsPaid())
			require.Equal(t, "pi_1", a.TransactionID)
		})
	}
}

func TestToAppointmentBookedEvent(t *testing.T) {
	a := testAppointment()
	evt := ToAppointmentBookedEvent(a)
	require.Equal(t, events.AppointmentBooked{
		AppointmentID: testAppointmentID,
		ServiceID:     testServiceID,
		DoctorID:      testDoctorID,
		ClientID:      testClientID,
		Slot:          a.Slot,
		At:            a.CreatedAt,
	}, evt)
}
