package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buysimply/buysimply/auth/token"
)

// requestRole is the role of the principal the guard attached to the
// request context. Public endpoints have no principal and yield "".
func requestRole(r *http.Request) string {
	p, _ := token.FromContext(r.Context())
	return p.Role
}

func (h *handlers) handleGetAllLoans(w http.ResponseWriter, r *http.Request) error {
	status := r.URL.Query().Get("status")
	respondOk(w, h.loanService.GetAllLoans(status, requestRole(r)))
	return nil
}

func (h *handlers) handleGetExpiredLoans(w http.ResponseWriter, r *http.Request) error {
	respondOk(w, h.loanService.GetExpiredLoans(requestRole(r)))
	return nil
}

func (h *handlers) handleGetUserLoans(w http.ResponseWriter, r *http.Request) error {
	userEmail := chi.URLParam(r, "userEmail")
	respondOk(w, h.loanService.GetUserLoans(userEmail, requestRole(r)))
	return nil
}

func (h *handlers) handleDeleteLoan(w http.ResponseWriter, r *http.Request) error {
	result, err := h.loanService.DeleteLoan(chi.URLParam(r, "loanId"))
	if err != nil {
		return err
	}

	respondOk(w, result)
	return nil
}
