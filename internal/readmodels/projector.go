package readmodels

import (
	"context"
	"errors"
	"sync"
	"time"

	"clinic/internal/events"
	"clinic/kit/broker"
	"clinic/kit/db"
)

// AppointmentView is the denormalized payment state of one appointment as
// seen through events.
type AppointmentView struct {
	AppointmentID    string     `json:"appointment_id"`
	ServiceID        string     `json:"service_id"`
	DoctorID         string     `json:"doctor_id,omitempty"`
	ClientID         string     `json:"client_id,omitempty"`
	Slot             time.Time  `json:"slot"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentID        string     `json:"payment_id,omitempty"`
	AuthorizationID  string     `json:"authorization_id,omitempty"`
	Amount           int64      `json:"amount,omitempty"`
	Currency         string     `json:"currency,omitempty"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
	Escalated        bool       `json:"escalated,omitempty"`
	EscalationReason string     `json:"escalation_reason,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type RecordSource interface {
	All(ctx context.Context) []db.Record
}

type Projector struct {
	mu    sync.RWMutex
	views map[string]AppointmentView
}

func NewProjector() *Projector {
	return &Projector{views: make(map[string]AppointmentView)}
}

func (p *Projector) Replay(ctx context.Context, src RecordSource) error {
	for _, rec := range src.All(ctx) {
		if err := p.ApplyRecord(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Apply is a broker.Handler. Unknown events are ignored.
func (p *Projector) Apply(ctx context.Context, evt broker.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e := evt.(type) {
	case events.AppointmentBooked:
		v := p.views[e.AppointmentID]
		v.AppointmentID = e.AppointmentID
		v.ServiceID = e.ServiceID
		v.DoctorID = e.DoctorID
		v.ClientID = e.ClientID
		v.Slot = e.Slot
		if v.PaymentStatus == "" {
			v.PaymentStatus = "unpaid"
		}
		v.UpdatedAt = e.At
		p.views[e.AppointmentID] = v
	case events.AppointmentPaid:
		v := p.views[e.AppointmentID]
		v.AppointmentID = e.AppointmentID
		v.ServiceID = e.ServiceID
		v.PaymentStatus = "paid"
		v.PaymentID = e.PaymentID
		v.AuthorizationID = e.AuthorizationID
		v.Amount = e.Amount
		v.Currency = e.Currency
		at := e.At
		v.PaidAt = &at
		v.Escalated = false
		v.EscalationReason = ""
		v.UpdatedAt = e.At
		p.views[e.AppointmentID] = v
	case events.PaymentEscalated:
		v := p.views[e.AppointmentID]
		v.AppointmentID = e.AppointmentID
		if v.ServiceID == "" {
			v.ServiceID = e.ServiceID
		}
		if v.PaymentStatus == "" {
			v.PaymentStatus = "unpaid"
		}
		v.Escalated = true
		v.EscalationReason = e.Reason
		v.UpdatedAt = e.At
		p.views[e.AppointmentID] = v
	}
	return nil
}

// ApplyRecord decodes a journaled event and applies it. Records of events
// the projector does not know are skipped.
func (p *Projector) ApplyRecord(ctx context.Context, rec db.Record) error {
	evt, err := events.Decode(rec.EventName, rec.Payload)
	if err != nil {
		if errors.Is(err, events.ErrUnknownEvent) {
			return nil
		}
		return errors.Join(db.ErrInternal, err)
	}
	return p.Apply(ctx, evt)
}

func (p *Projector) GetAppointment(appointmentID string) (AppointmentView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.views[appointmentID]
	return v, ok
}

func (p *Projector) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.views)
}
