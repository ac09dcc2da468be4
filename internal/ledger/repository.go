package ledger

import (
	"context"
	"log"

	"clinic/kit/db"
)

type SQLRepository struct {
	db db.Client
}

func NewSQLRepository(dbClient db.Client) *SQLRepository {
	return &SQLRepository{db: dbClient}
}

const (
	qPaymentInsert           = "INSERT INTO payments (payment_id, appointment_id, service_id, service_title, amount, currency, authorization_id, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
	qPaymentGetByAppointment = "SELECT payment_id, appointment_id, service_id, service_title, amount, currency, authorization_id, status, created_at FROM payments WHERE appointment_id = ?"
)

func (r *SQLRepository) Append(ctx context.Context, rec *Record) error {
	if err := r.db.Exec(
		ctx,
		qPaymentInsert,
		rec.ID,
		rec.AppointmentID,
		rec.ServiceID,
		rec.ServiceTitle,
		rec.Amount,
		rec.Currency,
		rec.AuthorizationID,
		rec.Status,
		rec.CreatedAt,
	); err != nil {
		if !db.IsConflict(err) {
			log.Printf("layer=repo component=ledger repo=SQLRepository method=Append appointment_id=%s err=%v", rec.AppointmentID, err)
		}
		return err
	}
	return nil
}

func (r *SQLRepository) GetByAppointment(ctx context.Context, appointmentID string) (*Record, error) {
	row, err := r.db.QueryRow(ctx, qPaymentGetByAppointment, appointmentID)
	if err != nil {
		log.Printf("layer=repo component=ledger repo=SQLRepository method=GetByAppointment appointment_id=%s err=%v", appointmentID, err)
		return nil, err
	}
	var rec Record
	if err := row.Scan(
		&rec.ID,
		&rec.AppointmentID,
		&rec.ServiceID,
		&rec.ServiceTitle,
		&rec.Amount,
		&rec.Currency,
		&rec.AuthorizationID,
		&rec.Status,
		&rec.CreatedAt,
	); err != nil {
		if !db.IsNotFound(err) {
			log.Printf("layer=repo component=ledger repo=SQLRepository method=GetByAppointment appointment_id=%s err=%v", appointmentID, err)
		}
		return nil, err
	}
	return &rec, nil
}
