package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buysimply/buysimply/faults"
)

func classify(t *testing.T, environment string, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	h := &handlers{
		logger:      testLogger(),
		environment: environment,
	}

	rec := httptest.NewRecorder()
	h.respondFault(rec, httptest.NewRequest(http.MethodGet, "/loans", nil), err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestClassifier_TaggedFault(t *testing.T) {
	rec, envelope := classify(t, "development", faults.Unauthorized("You are not Authorized to use this system"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "fail", envelope["status"])
	assert.Equal(t, "You are not Authorized to use this system", envelope["message"])
	assert.Equal(t, "Unauthorized", envelope["error"])
}

func TestClassifier_MultiPartMessageJoinsWithColon(t *testing.T) {
	fault := faults.BadRequest("email must be an email", "password should not be empty")
	_, envelope := classify(t, "development", fault)

	assert.Equal(t, "email must be an email:password should not be empty", envelope["message"])
}

func TestClassifier_CastFault(t *testing.T) {
	rec, envelope := classify(t, "development", &faults.CastFault{Field: "loanId", Value: "zzz"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", envelope["status"])
	assert.Equal(t, "Invalid loanId: zzz.", envelope["message"])
	assert.Equal(t, "Bad Request", envelope["error"])
}

func TestClassifier_DuplicateKeyFault(t *testing.T) {
	fault := &faults.DuplicateKeyFault{Keys: map[string]string{"email": "a@x.com"}}
	rec, envelope := classify(t, "development", fault)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", envelope["status"])
	assert.Equal(t, "duplicate email code a@x.com", envelope["message"])
}

func TestClassifier_UnclassifiedFailure(t *testing.T) {
	rec, envelope := classify(t, "development", errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, "Service Unavailable. Kindly contact support.", envelope["message"])
	// Outside production the raw failure and a stack trace are exposed.
	assert.Equal(t, "pq: connection reset", envelope["error"])
	assert.NotEmpty(t, envelope["stack"])
}

func TestClassifier_ProductionHidesInternals(t *testing.T) {
	_, envelope := classify(t, "production", errors.New("pq: connection reset"))

	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, "Internal Server Error", envelope["error"])
	assert.NotContains(t, envelope, "stack")
}

func TestClassifier_ProductionOmitsStackOnFailEnvelopes(t *testing.T) {
	_, envelope := classify(t, "production", faults.NotFound("Loan with ID 1 not found"))

	assert.Equal(t, "fail", envelope["status"])
	assert.NotContains(t, envelope, "stack")
}

func TestClassifier_DevelopmentIncludesStackOnFailEnvelopes(t *testing.T) {
	_, envelope := classify(t, "development", faults.NotFound("Loan with ID 1 not found"))

	assert.Contains(t, envelope, "stack")
}

func TestClassifier_WrappedFaultStillClassified(t *testing.T) {
	// Layers between origin and boundary may add context with %w; the
	// classifier still recognizes the tagged variant.
	err := fmt.Errorf("handling request: %w", faults.Forbidden("Forbidden resource"))
	rec, envelope := classify(t, "development", err)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", envelope["error"])
}
