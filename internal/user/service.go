package user

import (
	"context"
	"errors"
	"log"
	"time"

	"clinic/kit/db"
	"clinic/kit/observability"
)

type Service struct {
	tx         db.Transactor
	repository RepositoryContract
	bus        PublisherContract
	store      StoreContract
	metrics    *observability.Metrics
	now        func() time.Time
}

func NewService(tx db.Transactor, repo RepositoryContract, bus PublisherContract, store StoreContract, metrics *observability.Metrics) *Service {
	return &Service{
		tx:         tx,
		repository: repo,
		bus:        bus,
		store:      store,
		metrics:    metrics,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, errors.Join(db.ErrInvalid, err)
	}
	u, err := s.repository.Get(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, errors.Join(err, ErrUserNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Upsert(ctx context.Context, req UpsertRequest) (*User, error) {
	if err := ValidateUpsertRequest(req); err != nil {
		log.Printf("layer=service component=user method=Upsert user_id=%s err=%v", req.ID, err)
		return nil, errors.Join(db.ErrInvalid, err)
	}
	u := ToUser(req)
	if err := s.repository.Upsert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangeRole applies a role change. Moving the last admin away from admin
// fails with ErrLastAdminViolation. The admin count and the update run in
// one transaction so two concurrent demotions cannot both pass the check.
func (s *Service) ChangeRole(ctx context.Context, req ChangeRoleRequest) (*User, error) {
	if err := ValidateChangeRoleRequest(req); err != nil {
		log.Printf("layer=service component=user method=ChangeRole user_id=%s role=%s err=%v", req.UserID, req.Role, err)
		return nil, errors.Join(db.ErrInvalid, err)
	}

	var (
		out  *User
		from Role
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		u, err := s.Get(ctx, req.UserID)
		if err != nil {
			return err
		}
		from = u.Role
		if u.Role == req.Role {
			out = u
			return nil
		}
		if u.Role == RoleAdmin {
			admins, err := s.repository.CountByRole(ctx, RoleAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return errors.Join(db.ErrConflict, ErrLastAdminViolation)
			}
		}
		if err := s.repository.UpdateRole(ctx, u.ID, u.Role, req.Role); err != nil {
			return err
		}
		u.Role = req.Role
		out = u
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrLastAdminViolation) && !errors.Is(err, ErrUserNotFound) {
			log.Printf("layer=service component=user method=ChangeRole user_id=%s role=%s err=%v", req.UserID, req.Role, err)
		}
		return nil, err
	}
	if from == req.Role {
		return out, nil
	}

	evt := ToUserRoleChangedEvent(out.ID, from, out.Role, s.now())
	if s.store != nil {
		if err := s.store.Append(ctx, out.ID, evt); err != nil {
			log.Printf("layer=service component=user method=ChangeRole user_id=%s err=%v", out.ID, err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(ctx, evt)
	}
	if s.metrics != nil {
		s.metrics.RoleChanges.Add(1)
	}
	return out, nil
}
