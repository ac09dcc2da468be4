package handlers

import "net/http"

// Routes registers every endpoint on mux.
func Routes(mux *http.ServeMux, appt *Appointment, pay *Payment, usr *User, health *Health, metrics *Metrics) {
	mux.HandleFunc("POST /appointments", appt.Create)
	mux.HandleFunc("GET /appointments/{id}", appt.Get)
	mux.HandleFunc("GET /appointments/{id}/payment", appt.Payment)
	mux.HandleFunc("POST /payments/authorizations", pay.Authorize)
	mux.HandleFunc("POST /payments/confirmations", pay.Confirm)
	mux.HandleFunc("PATCH /users/{id}/role", usr.ChangeRole)
	mux.HandleFunc("GET /health", health.Handler)
	mux.HandleFunc("GET /metrics", metrics.Handler)
}
