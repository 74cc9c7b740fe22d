package handler

import (
	"net/http"

	"github.com/qaforum/qaforum-go/internal/model"
	"github.com/qaforum/qaforum-go/internal/service"
)

// AccountHandler handles HTTP requests for registration and login.
type AccountHandler struct {
	service *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc *service.AccountService) *AccountHandler {
	return &AccountHandler{service: svc}
}

// HandleRegister handles POST /registration requests.
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.Credentials
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.service.Register(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	writeText(w, http.StatusOK, "Account created")
}

// HandleLogin handles POST /login requests. The token is returned as a
// JSON string.
func (h *AccountHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.Credentials
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}
