package http

import (
	"encoding/json"
	"net/http"

	"github.com/buysimply/buysimply/faults"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handlers) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return faults.BadRequest("Invalid request body")
	}

	result, err := h.authService.Login(payload.Email, payload.Password)
	if err != nil {
		return err
	}

	respondOk(w, result)
	return nil
}

func (h *handlers) handleLogout(w http.ResponseWriter, r *http.Request) error {
	result, err := h.authService.Logout(bearerToken(r))
	if err != nil {
		return err
	}

	respondOk(w, result)
	return nil
}
