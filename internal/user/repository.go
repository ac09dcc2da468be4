package user

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
	qUserUpsert      = "INSERT INTO users (id, email, name, role) VALUES (?, ?, ?, ?) ON DUPLICATE KEY UPDATE email=?, name=?, role=?"
	qUserGet         = "SELECT id, email, name, role FROM users WHERE id = ?"
	qUserCountByRole = "SELECT COUNT(*) FROM users WHERE role = ?"
	qUserUpdateRole  = "UPDATE users SET role = ? WHERE id = ? AND role = ?"
)

func (r *SQLRepository) Get(ctx context.Context, userID string) (*User, error) {
	row, err := r.db.QueryRow(ctx, qUserGet, userID)
	if err != nil {
		log.Printf("layer=repo component=user repo=SQLRepository method=Get user_id=%s err=%v", userID, err)
		return nil, err
	}
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role); err != nil {
		if !db.IsNotFound(err) {
			log.Printf("layer=repo component=user repo=SQLRepository method=Get user_id=%s err=%v", userID, err)
		}
		return nil, err
	}
	return &u, nil
}

func (r *SQLRepository) Upsert(ctx context.Context, u *User) error {
	if err := r.db.Exec(ctx, qUserUpsert, u.ID, u.Email, u.Name, u.Role, u.Email, u.Name, u.Role); err != nil {
		log.Printf("layer=repo component=user repo=SQLRepository method=Upsert user_id=%s err=%v", u.ID, err)
		return err
	}
	return nil
}

func (r *SQLRepository) CountByRole(ctx context.Context, role Role) (int64, error) {
	row, err := r.db.QueryRow(ctx, qUserCountByRole, role)
	if err != nil {
		log.Printf("layer=repo component=user repo=SQLRepository method=CountByRole role=%s err=%v", role, err)
		return 0, err
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		log.Printf("layer=repo component=user repo=SQLRepository method=CountByRole role=%s err=%v", role, err)
		return 0, err
	}
	return n, nil
}

// UpdateRole only applies when the stored role still equals from.
func (r *SQLRepository) UpdateRole(ctx context.Context, userID string, from, to Role) error {
	if err := r.db.Exec(ctx, qUserUpdateRole, to, userID, from); err != nil {
		if !db.IsConflict(err) {
			log.Printf("layer=repo component=user repo=SQLRepository method=UpdateRole user_id=%s err=%v", userID, err)
		}
		return err
	}
	return nil
}
