package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"clinic/cmd/web/validator"
	"clinic/internal/booking"
	"clinic/internal/health"
	"clinic/internal/ledger"

	"github.com/shopspring/decimal"
)

type BookingServiceContract interface {
	RequestAuthorization(ctx context.Context, req booking.AuthorizationRequest) (*booking.Authorization, error)
	ConfirmPayment(ctx context.Context, req booking.ConfirmRequest) (*ledger.Record, error)
}

type HealthContract interface {
	Check(ctx context.Context) health.Result
}

type Payment struct {
	json    *validator.JSON
	booking BookingServiceContract
	health  HealthContract
}

func NewPayment(jsonV *validator.JSON, bookingSvc BookingServiceContract, healthSvc HealthContract) *Payment {
	return &Payment{json: jsonV, booking: bookingSvc, health: healthSvc}
}

type authorizeReq struct {
	ServiceID     string `json:"service_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

type authorizeResp struct {
	AuthorizationID string `json:"authorization_id"`
	ClientSecret    string `json:"client_secret"`
	ServiceID       string `json:"service_id"`
	Amount          int64  `json:"amount"`
	AmountDisplay   string `json:"amount_display"`
	Currency        string `json:"currency"`
}

type confirmReq struct {
	AppointmentID   string `json:"appointment_id"`
	AuthorizationID string `json:"authorization_id"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
}

type recordResp struct {
	PaymentID       string    `json:"payment_id"`
	AppointmentID   string    `json:"appointment_id"`
	ServiceID       string    `json:"service_id"`
	ServiceTitle    string    `json:"service_title"`
	Amount          int64     `json:"amount"`
	AmountDisplay   string    `json:"amount_display"`
	Currency        string    `json:"currency"`
	AuthorizationID string    `json:"authorization_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func displayAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

func toRecordResp(r *ledger.Record) recordResp {
	return recordResp{
		PaymentID:       r.ID,
		AppointmentID:   r.AppointmentID,
		ServiceID:       r.ServiceID,
		ServiceTitle:    r.ServiceTitle,
		Amount:          r.Amount,
		AmountDisplay:   displayAmount(r.Amount),
		Currency:        r.Currency,
		AuthorizationID: r.AuthorizationID,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
	}
}

// unavailable names the failing checks, e.g. "gateway: circuit open".
func unavailable(checks map[string]string) error {
	failing := make([]string, 0, len(checks))
	for name, status := range checks {
		if status != "ok" {
			failing = append(failing, name+": "+status)
		}
	}
	sort.Strings(failing)
	return fmt.Errorf("%w (%s)", errUnavailable, strings.Join(failing, ", "))
}

func (h *Payment) Authorize(w http.ResponseWriter, r *http.Request) {
	var req authorizeReq
	if err := h.json.Decode(w, r, &req); err != nil {
		log.Printf("layer=handler component=payment method=Authorize err=%v", err)
		writeError(w, err)
		return
	}
	if h.health != nil {
		res := h.health.Check(r.Context())
		if !res.OK {
			log.Printf("layer=handler component=payment method=Authorize err=service_unavailable checks=%v", res.Checks)
			writeError(w, unavailable(res.Checks))
			return
		}
	}

	auth, err := h.booking.RequestAuthorization(r.Context(), booking.AuthorizationRequest{
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		log.Printf("layer=handler component=payment method=Authorize service_id=%s err=%v", req.ServiceID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authorizeResp{
		AuthorizationID: auth.ID,
		ClientSecret:    auth.ClientSecret,
		ServiceID:       auth.ServiceID,
		Amount:          auth.Amount,
		AmountDisplay:   displayAmount(auth.Amount),
		Currency:        auth.Currency,
	})
}

func (h *Payment) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmReq
	if err := h.json.Decode(w, r, &req); err != nil {
		log.Printf("layer=handler component=payment method=Confirm err=%v", err)
		writeError(w, err)
		return
	}

	rec, err := h.booking.ConfirmPayment(r.Context(), booking.ConfirmRequest{
		AppointmentID:   req.AppointmentID,
		AuthorizationID: req.AuthorizationID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
	})
	if err != nil {
		log.Printf("layer=handler component=payment method=Confirm appointment_id=%s err=%v", req.AppointmentID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRecordResp(rec))
}
