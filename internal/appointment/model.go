package appointment

import "time"

type PaymentStatus string

const (
	StatusUnpaid PaymentStatus = "unpaid"
	StatusPaid   PaymentStatus = "paid"
)

// Appointment is a booked slot. It moves from unpaid to paid exactly once;
// paid is terminal.
type Appointment struct {
	ID            string
	ServiceID     string
	DoctorID      string
	ClientID      string
	Slot          time.Time
	PaymentStatus PaymentStatus
	TransactionID string
	PaidAt        *time.Time
	CreatedAt     time.Time
}

func (a *Appointment) IsPaid() bool {
	return a.PaymentStatus == StatusPaid
}
