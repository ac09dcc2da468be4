package ledger

import "time"

type Status string

const StatusSucceeded Status = "succeeded"

// Record is an immutable payment entry. Amount is in minor currency units.
type Record struct {
	ID              string
	AppointmentID   string
	ServiceID       string
	ServiceTitle    string
	Amount          int64
	Currency        string
	AuthorizationID string
	Status          Status
	CreatedAt       time.Time
}
