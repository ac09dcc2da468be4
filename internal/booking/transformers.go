package booking

import (
	"time"

	"clinic/internal/appointment"
	"clinic/internal/catalog"
	"clinic/internal/events"
	"clinic/internal/ledger"
	gateway "clinic/kit/external_payment_gateway"
)

func ToAuthorizeRequest(svc *catalog.Service, req AuthorizationRequest) gateway.AuthorizeRequest {
	return gateway.AuthorizeRequest{
		Amount:   svc.MinorUnits(),
		Currency: svc.Currency,
		Metadata: map[string]string{
			"service_id":     svc.ID,
			"service_title":  svc.Title,
			"customer_name":  req.CustomerName,
			"customer_email": req.CustomerEmail,
		},
	}
}

func ToAuthorization(svc *catalog.Service, a *gateway.Authorization) *Authorization {
	return &Authorization{
		ID:           a.ID,
		ClientSecret: a.ClientSecret,
		ServiceID:    svc.ID,
		Amount:       svc.MinorUnits(),
		Currency:     svc.Currency,
	}
}

func ToPaymentAuthorizedEvent(a *Authorization, customerEmail string, at time.Time) events.PaymentAuthorized {
	return events.PaymentAuthorized{
		AuthorizationID: a.ID,
		ServiceID:       a.ServiceID,
		Amount:          a.Amount,
		Currency:        a.Currency,
		CustomerEmail:   customerEmail,
		At:              at,
	}
}

func ToRecord(id string, appt *appointment.Appointment, svc *catalog.Service, authorizationID string, at time.Time) *ledger.Record {
	return &ledger.Record{
		ID:              id,
		AppointmentID:   appt.ID,
		ServiceID:       svc.ID,
		ServiceTitle:    svc.Title,
		Amount:          svc.MinorUnits(),
		Currency:        svc.Currency,
		AuthorizationID: authorizationID,
		Status:          ledger.StatusSucceeded,
		CreatedAt:       at,
	}
}

func ToAppointmentPaidEvent(r *ledger.Record, req ConfirmRequest) events.AppointmentPaid {
	return events.AppointmentPaid{
		AppointmentID:   r.AppointmentID,
		PaymentID:       r.ID,
		ServiceID:       r.ServiceID,
		ServiceTitle:    r.ServiceTitle,
		AuthorizationID: r.AuthorizationID,
		Amount:          r.Amount,
		Currency:        r.Currency,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		At:              r.CreatedAt,
	}
}
