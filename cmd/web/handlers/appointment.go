package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"clinic/cmd/web/validator"
	"clinic/internal/appointment"
	"clinic/internal/ledger"
	"clinic/internal/readmodels"
)

type AppointmentServiceContract interface {
	Create(ctx context.Context, req appointment.CreateRequest) (*appointment.Appointment, error)
	Get(ctx context.Context, appointmentID string) (*appointment.Appointment, error)
}

type LedgerReaderContract interface {
	GetByAppointment(ctx context.Context, appointmentID string) (*ledger.Record, error)
}

type AppointmentReadModelContract interface {
	GetAppointment(appointmentID string) (readmodels.AppointmentView, bool)
}

type Appointment struct {
	json         *validator.JSON
	appointments AppointmentServiceContract
	ledger       LedgerReaderContract
	rm           AppointmentReadModelContract
}

func NewAppointment(jsonV *validator.JSON, appointments AppointmentServiceContract, ledger LedgerReaderContract, rm AppointmentReadModelContract) *Appointment {
	return &Appointment{json: jsonV, appointments: appointments, ledger: ledger, rm: rm}
}

// createAppointmentReq has no payment fields: a new appointment is always
// unpaid.
type createAppointmentReq struct {
	ServiceID string    `json:"service_id"`
	DoctorID  string    `json:"doctor_id"`
	ClientID  string    `json:"client_id"`
	Slot      time.Time `json:"slot"`
}

type appointmentResp struct {
	ID            string     `json:"id"`
	ServiceID     string     `json:"service_id"`
	DoctorID      string     `json:"doctor_id"`
	ClientID      string     `json:"client_id"`
	Slot          time.Time  `json:"slot"`
	PaymentStatus string     `json:"payment_status"`
	TransactionID *string    `json:"transaction_id"`
	PaidAt        *time.Time `json:"paid_at"`
}

func toAppointmentResp(a *appointment.Appointment) appointmentResp {
	resp := appointmentResp{
		ID:            a.ID,
		ServiceID:     a.ServiceID,
		DoctorID:      a.DoctorID,
		ClientID:      a.ClientID,
		Slot:          a.Slot,
		PaymentStatus: string(a.PaymentStatus),
		PaidAt:        a.PaidAt,
	}
	if a.TransactionID != "" {
		tx := a.TransactionID
		resp.TransactionID = &tx
	}
	return resp
}

func (h *Appointment) Create(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentReq
	if err := h.json.Decode(w, r, &req); err != nil {
		log.Printf("layer=handler component=appointment method=Create err=%v", err)
		writeError(w, err)
		return
	}

	a, err := h.appointments.Create(r.Context(), appointment.CreateRequest{
		ServiceID: req.ServiceID,
		DoctorID:  req.DoctorID,
		ClientID:  req.ClientID,
		Slot:      req.Slot,
	})
	if err != nil {
		log.Printf("layer=handler component=appointment method=Create service_id=%s err=%v", req.ServiceID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAppointmentResp(a))
}

func (h *Appointment) Get(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("id")
	if h.rm != nil {
		if v, ok := h.rm.GetAppointment(appointmentID); ok && v.DoctorID != "" {
			resp := appointmentResp{
				ID:            v.AppointmentID,
				ServiceID:     v.ServiceID,
				DoctorID:      v.DoctorID,
				ClientID:      v.ClientID,
				Slot:          v.Slot,
				PaymentStatus: v.PaymentStatus,
				PaidAt:        v.PaidAt,
			}
			if v.AuthorizationID != "" {
				tx := v.AuthorizationID
				resp.TransactionID = &tx
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	a, err := h.appointments.Get(r.Context(), appointmentID)
	if err != nil {
		log.Printf("layer=handler component=appointment method=Get appointment_id=%s err=%v", appointmentID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentResp(a))
}

func (h *Appointment) Payment(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("id")
	rec, err := h.ledger.GetByAppointment(r.Context(), appointmentID)
	if err != nil {
		log.Printf("layer=handler component=appointment method=Payment appointment_id=%s err=%v", appointmentID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRecordResp(rec))
}
