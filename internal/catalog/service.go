package catalog

import (
	"context"
	"errors"
	"log"

	"clinic/kit/db"
)

// CatalogService resolves catalog entries. The booking core only reads through
// GetService; Upsert and Delete exist for seeding and administration.
type CatalogService struct {
	repository RepositoryContract
}

func NewService(repo RepositoryContract) *CatalogService {
	return &CatalogService{repository: repo}
}

func (s *CatalogService) GetService(ctx context.Context, serviceID string) (*Service, error) {
	if err := ValidateServiceID(serviceID); err != nil {
		log.Printf("layer=service component=catalog method=GetService service_id=%s err=%v", serviceID, err)
		return nil, errors.Join(db.ErrInvalid, err)
	}
	svc, err := s.repository.Get(ctx, serviceID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.Join(err, ErrServiceNotFound)
		}
		log.Printf("layer=service component=catalog method=GetService service_id=%s err=%v", serviceID, err)
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) Upsert(ctx context.Context, req UpsertRequest) (*Service, error) {
	if err := ValidateUpsertRequest(req); err != nil {
		log.Printf("layer=service component=catalog method=Upsert service_id=%s err=%v", req.ID, err)
		return nil, errors.Join(db.ErrInvalid, err)
	}
	svc := ToService(req)
	if err := s.repository.Upsert(ctx, svc); err != nil {
		log.Printf("layer=service component=catalog method=Upsert service_id=%s err=%v", req.ID, err)
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) Delete(ctx context.Context, serviceID string) error {
	if err := ValidateServiceID(serviceID); err != nil {
		return errors.Join(db.ErrInvalid, err)
	}
	if err := s.repository.Delete(ctx, serviceID); err != nil {
		if db.IsNotFound(err) {
			return errors.Join(err, ErrServiceNotFound)
		}
		log.Printf("layer=service component=catalog method=Delete service_id=%s err=%v", serviceID, err)
		return err
	}
	return nil
}
