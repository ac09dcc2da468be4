package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic/cmd/web/validator"
	"clinic/internal/appointment"
	"clinic/internal/catalog"
	"clinic/internal/ledger"
	"clinic/internal/readmodels"
	"clinic/kit/db"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func appointmentMux(h *Appointment) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /appointments", h.Create)
	mux.HandleFunc("GET /appointments/{id}", h.Get)
	mux.HandleFunc("GET /appointments/{id}/payment", h.Payment)
	return mux
}

func TestAppointment_Create(t *testing.T) {
	slot := time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC)

	var tests = []struct {
		name         string
		body         string
		setup        func(m *appointmentServiceMock)
		expectedCode int
		expectedErr  string
	}{
		{
			name:         "payment status cannot be set",
			body:         `{"service_id":"s1","doctor_id":"d1","client_id":"c1","slot":"2026-11-02T09:30:00Z","payment_status":"paid"}`,
			setup:        func(*appointmentServiceMock) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid_request",
		},
		{
			name: "unknown service",
			body: `{"service_id":"s1","doctor_id":"d1","client_id":"c1","slot":"2026-11-02T09:30:00Z"}`,
			setup: func(m *appointmentServiceMock) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.Join(db.ErrNotFound, catalog.ErrServiceNotFound))
			},
			expectedCode: http.StatusNotFound,
			expectedErr:  "service_not_found",
		},
		{
			name: "created unpaid",
			body: `{"service_id":"s1","doctor_id":"d1","client_id":"c1","slot":"2026-11-02T09:30:00Z"}`,
			setup: func(m *appointmentServiceMock) {
				m.On("Create", mock.Anything, appointment.CreateRequest{ServiceID: "s1", DoctorID: "d1", ClientID: "c1", Slot: slot}).
					Return(&appointment.Appointment{ID: "a1", ServiceID: "s1", DoctorID: "d1", ClientID: "c1", Slot: slot, PaymentStatus: appointment.StatusUnpaid}, nil)
			},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := new(appointmentServiceMock)
			tt.setup(m)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader([]byte(tt.body)))
			appointmentMux(NewAppointment(validator.NewJSON(), m, new(ledgerReaderMock), nil)).ServeHTTP(rr, req)

			require.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedErr != "" {
				require.Equal(t, tt.expectedErr, decodeError(t, rr).Code)
				return
			}
			var got map[string]any
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			require.Equal(t, "unpaid", got["payment_status"])
			require.Nil(t, got["transaction_id"])
			require.Nil(t, got["paid_at"])
		})
	}
}

func TestAppointment_Get(t *testing.T) {
	paidAt := time.Date(2026, 10, 2, 8, 0, 0, 0, time.UTC)

	t.Run("served from read model", func(t *testing.T) {
		t.Parallel()
		rm := new(readModelMock)
		rm.On("GetAppointment", "a1").Return(readmodels.AppointmentView{AppointmentID: "a1", DoctorID: "d1", PaymentStatus: "paid", AuthorizationID: "tok_1", PaidAt: &paidAt}, true)
		svc := new(appointmentServiceMock)

		rr := httptest.NewRecorder()
		appointmentMux(NewAppointment(validator.NewJSON(), svc, new(ledgerReaderMock), rm)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/appointments/a1", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got appointmentResp
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Equal(t, "paid", got.PaymentStatus)
		require.Equal(t, "tok_1", *got.TransactionID)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("falls back to store", func(t *testing.T) {
		t.Parallel()
		rm := new(readModelMock)
		rm.On("GetAppointment", "a1").Return(nil, false)
		svc := new(appointmentServiceMock)
		svc.On("Get", mock.Anything, "a1").Return(nil, errors.Join(db.ErrNotFound, appointment.ErrAppointmentNotFound))

		rr := httptest.NewRecorder()
		appointmentMux(NewAppointment(validator.NewJSON(), svc, new(ledgerReaderMock), rm)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/appointments/a1", nil))

		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Equal(t, "appointment_not_found", decodeError(t, rr).Code)
	})
}

func TestAppointment_Payment(t *testing.T) {
	var tests = []struct {
		name         string
		setup        func(m *ledgerReaderMock)
		expectedCode int
	}{
		{
			name: "no payment yet",
			setup: func(m *ledgerReaderMock) {
				m.On("GetByAppointment", mock.Anything, "a1").Return(nil, errors.Join(db.ErrNotFound, ledger.ErrPaymentNotFound))
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "paid",
			setup: func(m *ledgerReaderMock) {
				m.On("GetByAppointment", mock.Anything, "a1").Return(&ledger.Record{ID: "p1", AppointmentID: "a1", Amount: 12000, Currency: "usd"}, nil)
			},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := new(ledgerReaderMock)
			tt.setup(m)
			rr := httptest.NewRecorder()
			appointmentMux(NewAppointment(validator.NewJSON(), new(appointmentServiceMock), m, nil)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/appointments/a1/payment", nil))
			require.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
