package metrics

import "clinic/kit/observability"

type Service struct {
	m *observability.Metrics
}

func NewService(m *observability.Metrics) *Service {
	return &Service{m: m}
}

func (s *Service) Snapshot() map[string]int64 {
	if s.m == nil {
		return map[string]int64{}
	}
	return map[string]int64{
		"appointments_booked":   s.m.AppointmentsBooked.Load(),
		"authorizations_issued": s.m.AuthorizationsIssued.Load(),
		"authorizations_failed": s.m.AuthorizationsFailed.Load(),
		"payments_confirmed":    s.m.PaymentsConfirmed.Load(),
		"payments_duplicate":    s.m.PaymentsDuplicate.Load(),
		"escalations":           s.m.Escalations.Load(),
		"role_changes":          s.m.RoleChanges.Load(),
	}
}
