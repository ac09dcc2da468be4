package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"clinic/cmd/web/validator"
	"clinic/internal/booking"
	"clinic/internal/ledger"
	"clinic/internal/user"
	"clinic/kit/db"
)

var errUnavailable = errors.New("payments temporarily unavailable")

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorStatus maps a domain error onto its stable code and HTTP status.
// Specific sentinels are checked before storage classes.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, user.ErrLastAdminViolation):
		return http.StatusConflict, "last_admin_violation"
	case errors.Is(err, booking.ErrAlreadyPaid):
		return http.StatusConflict, "already_paid"
	case errors.Is(err, booking.ErrServiceNotFound):
		return http.StatusNotFound, "service_not_found"
	case errors.Is(err, booking.ErrAppointmentNotFound):
		return http.StatusNotFound, "appointment_not_found"
	case errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, ledger.ErrPaymentNotFound):
		return http.StatusNotFound, "payment_not_found"
	case errors.Is(err, booking.ErrAuthorizationFailed):
		return http.StatusBadGateway, "authorization_failed"
	case errors.Is(err, errUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, validator.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType, "invalid_request"
	case errors.Is(err, validator.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "invalid_request"
	case errors.Is(err, validator.ErrInvalidJSON), db.IsInvalid(err):
		return http.StatusBadRequest, "invalid_request"
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	msg := strings.ReplaceAll(err.Error(), "\n", ": ")
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("layer=handler component=response method=writeJSON status=%d err=%v", status, err)
	}
}
