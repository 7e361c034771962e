package handlers

import (
	"net/http"

	"github.com/baharkarakas/forohub/internal/api/httpx"
	"github.com/baharkarakas/forohub/internal/api/validate"
	"github.com/baharkarakas/forohub/internal/services"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"clave"`
}

type tokenResp struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeBadBody(w, err)
		return
	}
	if err := validate.Collect(
		validate.Required("email", req.Email),
		validate.Required("clave", req.Password),
	); err != nil {
		writeError(w, r, err)
		return
	}

	tok, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokenResp{Token: tok.Value, Type: "Bearer"})
}
