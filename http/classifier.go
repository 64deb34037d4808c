package http

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/buysimply/buysimply/faults"
	"github.com/buysimply/buysimply/logger"
)

// internalMessage is the generic string every unclassified failure responds
// with, regardless of environment.
const internalMessage = "Service Unavailable. Kindly contact support."

// ErrorEnvelope is the uniform shape of every non-2xx response. "fail"
// denotes a client-caused, classified condition; "error" an unclassified
// internal one. Stack is populated only outside production.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error"`
	Stack   string `json:"stack,omitempty"`
}

// respondFault is the single classification boundary. Any failure reaching
// the top of the request's call stack lands here exactly once and leaves as
// a normalized envelope with the correct status code.
func (h *handlers) respondFault(w http.ResponseWriter, r *http.Request, err error) {
	isProd := h.environment == "production"

	if !isProd {
		h.logger.Error("request failed",
			logger.String("request_id", middleware.GetReqID(r.Context())),
			logger.String("path", r.URL.Path),
			logger.Err(err))
	}

	var (
		fault *faults.Fault
		cast  *faults.CastFault
		dup   *faults.DuplicateKeyFault
	)

	switch {
	case errors.As(err, &fault):
		h.respondFail(w, fault, isProd)

	case errors.As(err, &cast):
		// A malformed identifier addressed to a field is a client error.
		h.respondFail(w, faults.BadRequest(cast.Error()), isProd)

	case errors.As(err, &dup):
		h.respondFail(w, faults.BadRequest(dup.Message()), isProd)

	default:
		envelope := &ErrorEnvelope{
			Status:  "error",
			Message: internalMessage,
			Error:   "Internal Server Error",
		}
		if !isProd {
			envelope.Error = err.Error()
			envelope.Stack = string(debug.Stack())
		}
		respondJSON(w, http.StatusInternalServerError, envelope)
	}
}

// respondFail writes the envelope of a classified, client-facing failure.
func (h *handlers) respondFail(w http.ResponseWriter, fault *faults.Fault, isProd bool) {
	envelope := &ErrorEnvelope{
		Status:  "fail",
		Message: fault.Message(),
		Error:   fault.Category,
	}
	if !isProd {
		envelope.Stack = string(debug.Stack())
	}
	respondJSON(w, fault.Status, envelope)
}

// recoveredError wraps a recovered panic value as an error for the
// unclassified branch of the classifier.
func recoveredError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", rec)
}
