package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"clinic/internal/events"
	"clinic/kit/observability"

	"github.com/shopspring/decimal"
)

// Receipt is what the client receives after a confirmed payment.
type Receipt struct {
	PaymentID     string
	AppointmentID string
	To            string
	Subject       string
	Body          string
}

// Service delivers receipts through the logger. Each payment is receipted at
// most once, so replaying the journal does not resend.
type Service struct {
	logger *observability.Logger

	mu   sync.Mutex
	sent map[string]Receipt
}

func NewService(logger *observability.Logger) *Service {
	return &Service{logger: logger, sent: make(map[string]Receipt)}
}

// SendReceipt reports whether a new receipt was sent.
func (s *Service) SendReceipt(ctx context.Context, evt events.AppointmentPaid) bool {
	if evt.CustomerEmail == "" {
		s.logger.Info("receipt skipped", "appointment_id", evt.AppointmentID, "reason", "no email")
		return false
	}

	s.mu.Lock()
	if _, ok := s.sent[evt.PaymentID]; ok {
		s.mu.Unlock()
		return false
	}
	r := BuildReceipt(evt)
	s.sent[evt.PaymentID] = r
	s.mu.Unlock()

	s.logger.Info("receipt sent", "to", r.To, "subject", r.Subject, "payment_id", r.PaymentID, "appointment_id", r.AppointmentID)
	return true
}

func (s *Service) Sent(paymentID string) (Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.sent[paymentID]
	return r, ok
}

func BuildReceipt(evt events.AppointmentPaid) Receipt {
	amount := decimal.New(evt.Amount, -2).StringFixed(2)
	name := evt.CustomerName
	if name == "" {
		name = "customer"
	}
	return Receipt{
		PaymentID:     evt.PaymentID,
		AppointmentID: evt.AppointmentID,
		To:            evt.CustomerEmail,
		Subject:       fmt.Sprintf("Payment received: %s", evt.ServiceTitle),
		Body: fmt.Sprintf(
			"Hi %s, we received %s %s for %s (appointment %s).",
			name, amount, strings.ToUpper(evt.Currency), evt.ServiceTitle, evt.AppointmentID,
		),
	}
}
