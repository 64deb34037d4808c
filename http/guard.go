package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-secure-stdlib/strutil"

	"github.com/buysimply/buysimply/auth/token"
	"github.com/buysimply/buysimply/faults"
	"github.com/buysimply/buysimply/logger"
)

const unauthorizedMessage = "You are not Authorized to use this system"

// guarded wraps an endpoint handler with the authorization guard. A denial
// short-circuits straight to the classifier; the handler is never invoked.
func (h *handlers) guarded(endpointID string, fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authorized, err := h.authorize(r, endpointID)
		if err != nil {
			h.respondFault(w, r, err)
			return
		}
		if err := fn(w, authorized); err != nil {
			h.respondFault(w, authorized, err)
		}
	})
}

// authorize decides whether the request may proceed. The checks run in a
// fixed order: route policy lookup, public bypass, bearer header, signature
// and expiry, revocation, role. Signature comes before revocation because
// it is the cheap stateless check; role comes last because it needs an
// already-trusted principal.
func (h *handlers) authorize(r *http.Request, endpointID string) (*http.Request, error) {
	meta := h.routes.Lookup(endpointID)

	// Public endpoints skip every check, even with a malformed or absent
	// header.
	if meta.Public {
		return r, nil
	}

	tokenString := bearerToken(r)
	if tokenString == "" {
		return nil, faults.Unauthorized(unauthorizedMessage)
	}

	principal, err := h.verifier.Verify(tokenString)
	if err != nil {
		h.logger.Debug("token verification failed",
			logger.String("endpoint", endpointID),
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.Err(err))
		return nil, faults.Unauthorized(unauthorizedMessage)
	}

	// A revoked token is rejected even while its signature and expiry are
	// still valid.
	if h.revocations.IsRevoked(tokenString) {
		h.logger.Debug("revoked token rejected",
			logger.String("endpoint", endpointID),
			logger.String("request_id", middleware.GetReqID(r.Context())))
		return nil, faults.Unauthorized(unauthorizedMessage)
	}

	if len(meta.Roles) > 0 && !strutil.StrListContains(meta.Roles, principal.Role) {
		return nil, faults.Forbidden("Forbidden resource")
	}

	return r.WithContext(token.NewContext(r.Context(), principal)), nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Absent or malformed headers yield "".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, rest, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(rest)
}
