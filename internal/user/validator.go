package user

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUserNotFound       = errors.New("user not found")
	ErrLastAdminViolation = errors.New("cannot remove the last admin")
)

// ChangeRoleRequest is the only mutation allowed on a user through the API.
type ChangeRoleRequest struct {
	UserID string
	Role   Role
}

type UpsertRequest struct {
	ID    string
	Email string
	Name  string
	Role  Role
}

func ValidateUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidRequest
	}
	return nil
}

func ValidateChangeRoleRequest(r ChangeRoleRequest) error {
	if err := ValidateUserID(r.UserID); err != nil {
		return err
	}
	if !r.Role.Valid() {
		return ErrInvalidRequest
	}
	return nil
}

func ValidateUpsertRequest(r UpsertRequest) error {
	if err := ValidateUserID(r.ID); err != nil {
		return err
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrInvalidRequest
	}
	if strings.TrimSpace(r.Name) == "" || !r.Role.Valid() {
		return ErrInvalidRequest
	}
	return nil
}
