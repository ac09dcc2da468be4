package handlers

import (
	"context"
	"log"
	"net/http"

	"clinic/cmd/web/validator"
	"clinic/internal/user"
)

type UserServiceContract interface {
	ChangeRole(ctx context.Context, req user.ChangeRoleRequest) (*user.User, error)
}

type User struct {
	json  *validator.JSON
	users UserServiceContract
}

func NewUser(jsonV *validator.JSON, users UserServiceContract) *User {
	return &User{json: jsonV, users: users}
}

type changeRoleReq struct {
	Role string `json:"role"`
}

type userResp struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *User) ChangeRole(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	var req changeRoleReq
	if err := h.json.Decode(w, r, &req); err != nil {
		log.Printf("layer=handler component=user method=ChangeRole user_id=%s err=%v", userID, err)
		writeError(w, err)
		return
	}

	u, err := h.users.ChangeRole(r.Context(), user.ChangeRoleRequest{UserID: userID, Role: user.Role(req.Role)})
	if err != nil {
		log.Printf("layer=handler component=user method=ChangeRole user_id=%s role=%s err=%v", userID, req.Role, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userResp{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)})
}
