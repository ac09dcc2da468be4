package events

import "time"

type AppointmentBooked struct {
	AppointmentID string    `json:"appointment_id"`
	ServiceID     string    `json:"service_id"`
	DoctorID      string    `json:"doctor_id"`
	ClientID      string    `json:"client_id"`
	Slot          time.Time `json:"slot"`
	At            time.Time `json:"at"`
}

func (AppointmentBooked) Name() string { return "appointment.booked" }

func (e AppointmentBooked) PartitionKey() string { return e.AppointmentID }

type PaymentAuthorized struct {
	AuthorizationID string    `json:"authorization_id"`
	ServiceID       string    `json:"service_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	CustomerEmail   string    `json:"customer_email"`
	At              time.Time `json:"at"`
}

func (PaymentAuthorized) Name() string { return "payment.authorized" }

func (e PaymentAuthorized) PartitionKey() string { return e.AuthorizationID }

type AppointmentPaid struct {
	AppointmentID   string    `json:"appointment_id"`
	PaymentID       string    `json:"payment_id"`
	ServiceID       string    `json:"service_id"`
	ServiceTitle    string    `json:"service_title"`
	AuthorizationID string    `json:"authorization_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	At              time.Time `json:"at"`
}

func (AppointmentPaid) Name() string { return "appointment.paid" }

func (e AppointmentPaid) PartitionKey() string { return e.AppointmentID }

// PaymentEscalated marks an appointment that reported a successful payment
// but could not be settled automatically.
type PaymentEscalated struct {
	AppointmentID   string    `json:"appointment_id"`
	ServiceID       string    `json:"service_id"`
	AuthorizationID string    `json:"authorization_id"`
	Reason          string    `json:"reason"`
	At              time.Time `json:"at"`
}

func (PaymentEscalated) Name() string { return "payment.escalated" }

func (e PaymentEscalated) PartitionKey() string { return e.AppointmentID }

type UserRoleChanged struct {
	UserID string    `json:"user_id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	At     time.Time `json:"at"`
}

func (UserRoleChanged) Name() string { return "user.role_changed" }

func (e UserRoleChanged) PartitionKey() string { return e.UserID }
