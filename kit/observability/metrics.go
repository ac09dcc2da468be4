package observability

import "sync/atomic"

type Metrics struct {
	AppointmentsBooked   atomic.Int64
	AuthorizationsIssued atomic.Int64
	AuthorizationsFailed atomic.Int64
	PaymentsConfirmed    atomic.Int64
	PaymentsDuplicate    atomic.Int64
	Escalations          atomic.Int64
	RoleChanges          atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) AppointmentsBookedAdd(n int64) {
	m.AppointmentsBooked.Add(n)
}

func (m *Metrics) AuthorizationsIssuedAdd(n int64) {
	m.AuthorizationsIssued.Add(n)
}

func (m *Metrics) PaymentsConfirmedAdd(n int64) {
	m.PaymentsConfirmed.Add(n)
}

func (m *Metrics) EscalationsAdd(n int64) {
	m.Escalations.Add(n)
}

func (m *Metrics) RoleChangesAdd(n int64) {
	m.RoleChanges.Add(n)
}
