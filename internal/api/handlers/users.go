package handlers

import (
	"net/http"

	"github.com/baharkarakas/forohub/internal/api/httpx"
	"github.com/baharkarakas/forohub/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type userResp struct {
	ID    string `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterUserInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeBadBody(w, err)
		return
	}
	u, err := h.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, userResp{ID: u.ID, Name: u.Name, Email: u.Email})
}
