package appointment

import (
	"context"
	"log"
	"time"

	"clinic/kit/db"
)

type SQLRepository struct {
	db db.Client
}

func NewSQLRepository(dbClient db.Client) *SQLRepository {
	return &SQLRepository{db: dbClient}
}

const (
	qAppointmentInsert   = "INSERT INTO appointments (id, service_id, doctor_id, client_id, slot, payment_status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
	qAppointmentGet      = "SELECT id, service_id, doctor_id, client_id, slot, payment_status, transaction_id, paid_at, created_at FROM appointments WHERE id = ?"
	qAppointmentMarkPaid = "UPDATE appointments SET payment_status = 'paid', transaction_id = ?, paid_at = ? WHERE id = ? AND payment_status = 'unpaid'"
)

func (r *SQLRepository) Create(ctx context.Context, a *Appointment) error {
	if err := r.db.Exec(
		ctx,
		qAppointmentInsert,
		a.ID,
		a.ServiceID,
		a.DoctorID,
		a.ClientID,
		a.Slot,
		a.PaymentStatus,
		a.CreatedAt,
	); err != nil {
		log.Printf("layer=repo component=appointment repo=SQLRepository method=Create appointment_id=%s err=%v", a.ID, err)
		return err
	}
	return nil
}

func (r *SQLRepository) Get(ctx context.Context, appointmentID string) (*Appointment, error) {
	row, err := r.db.QueryRow(ctx, qAppointmentGet, appointmentID)
	if err != nil {
		log.Printf("layer=repo component=appointment repo=SQLRepository method=Get appointment_id=%s err=%v", appointmentID, err)
		return nil, err
	}
	var a Appointment
	var paidAt time.Time
	if err := row.Scan(&a.ID, &a.ServiceID, &a.DoctorID, &a.ClientID, &a.Slot, &a.PaymentStatus, &a.TransactionID, &paidAt, &a.CreatedAt); err != nil {
		if !db.IsNotFound(err) {
			log.Printf("layer=repo component=appointment repo=SQLRepository method=Get appointment_id=%s err=%v", appointmentID, err)
		}
		return nil, err
	}
	if !paidAt.IsZero() {
		a.PaidAt = &paidAt
	}
	return &a, nil
}

// MarkPaid is a conditional update: it fails with db.ErrConflict when the
// appointment is no longer unpaid.
func (r *SQLRepository) MarkPaid(ctx context.Context, appointmentID, transactionID string, paidAt time.Time) error {
	if err := r.db.Exec(ctx, qAppointmentMarkPaid, transactionID, paidAt, appointmentID); err != nil {
		if !db.IsConflict(err) && !db.IsNotFound(err) {
			log.Printf("layer=repo component=appointment repo=SQLRepository method=MarkPaid appointment_id=%s err=%v", appointmentID, err)
		}
		return err
	}
	return nil
}
