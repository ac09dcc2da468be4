package catalog

import (
	"context"
	"errors"
	"log"

	"clinic/kit/db"

	"github.com/shopspring/decimal"
)

type SQLRepository struct {
	db db.Client
}

func NewSQLRepository(dbClient db.Client) *SQLRepository {
	return &SQLRepository{db: dbClient}
}

const (
	qServiceGet    = "SELECT id, title, price, currency, description FROM services WHERE id = ? AND deleted = 0"
	qServiceUpsert = "INSERT INTO services (id, title, price, currency, description) VALUES (?, ?, ?, ?, ?) ON DUPLICATE KEY UPDATE title=?, price=?, currency=?, description=?, deleted=0"
	qServiceDelete = "UPDATE services SET deleted = 1 WHERE id = ?"
)

func (r *SQLRepository) Get(ctx context.Context, serviceID string) (*Service, error) {
	row, err := r.db.QueryRow(ctx, qServiceGet, serviceID)
	if err != nil {
		log.Printf("layer=repo component=catalog repo=SQLRepository method=Get service_id=%s err=%v", serviceID, err)
		return nil, err
	}
	var s Service
	var price string
	if err := row.Scan(&s.ID, &s.Title, &price, &s.Currency, &s.Description); err != nil {
		if !db.IsNotFound(err) {
			log.Printf("layer=repo component=catalog repo=SQLRepository method=Get service_id=%s err=%v", serviceID, err)
		}
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		log.Printf("layer=repo component=catalog repo=SQLRepository method=Get service_id=%s price=%q err=%v", serviceID, price, err)
		return nil, errors.Join(db.ErrInternal, err)
	}
	s.Price = p
	return &s, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, s *Service) error {
	price := s.Price.StringFixed(2)
	if err := r.db.Exec(
		ctx,
		qServiceUpsert,
		s.ID,
		s.Title,
		price,
		s.Currency,
		s.Description,
		s.Title,
		price,
		s.Currency,
		s.Description,
	); err != nil {
		log.Printf("layer=repo component=catalog repo=SQLRepository method=Upsert service_id=%s err=%v", s.ID, err)
		return err
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, serviceID string) error {
	if err := r.db.Exec(ctx, qServiceDelete, serviceID); err != nil {
		log.Printf("layer=repo component=catalog repo=SQLRepository method=Delete service_id=%s err=%v", serviceID, err)
		return err
	}
	return nil
}
