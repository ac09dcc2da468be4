package appointment

import (
	"time"

	"clinic/internal/events"
)

func ToAppointment(id string, req CreateRequest, now time.Time) *Appointment {
	return &Appointment{
		ID:            id,
		ServiceID:     req.ServiceID,
		DoctorID:      req.DoctorID,
		ClientID:      req.ClientID,
		Slot:          req.Slot.UTC(),
		PaymentStatus: StatusUnpaid,
		CreatedAt:     now,
	}
}

func ToAppointmentBookedEvent(a *Appointment) events.AppointmentBooked {
	return events.AppointmentBooked{
		AppointmentID: a.ID,
		ServiceID:     a.ServiceID,
		DoctorID:      a.DoctorID,
		ClientID:      a.ClientID,
		Slot:          a.Slot,
		At:            a.CreatedAt,
	}
}
