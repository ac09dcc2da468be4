package user

import (
	"strings"
	"time"

	"clinic/internal/events"
)

func ToUser(req UpsertRequest) *User {
	return &User{
		ID:    req.ID,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Name:  strings.TrimSpace(req.Name),
		Role:  req.Role,
	}
}

func ToUserRoleChangedEvent(userID string, from, to Role, at time.Time) events.UserRoleChanged {
	return events.UserRoleChanged{UserID: userID, From: string(from), To: string(to), At: at}
}
