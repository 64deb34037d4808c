package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottle_LimitsPerClient(t *testing.T) {
	ts := newTestServer(t, "development", &ThrottleConfig{
		Limit:  3,
		Window: time.Minute,
	})

	payload := map[string]string{
		"email":    "segun@buysimply.app",
		"password": "pass-admin",
	}

	for i := 0; i < 3; i++ {
		rec := ts.do(t, http.MethodPost, "/auth/login", "", payload)
		require.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	rec := ts.do(t, http.MethodPost, "/auth/login", "", payload)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "fail", envelope["status"])
	assert.Equal(t, "ThrottlerException: Too Many Requests", envelope["message"])
	assert.Equal(t, "Too Many Requests", envelope["error"])
}

func TestThrottle_SeparateClientsHaveSeparateBudgets(t *testing.T) {
	th := newThrottler(&ThrottleConfig{Limit: 1, Window: time.Minute})

	assert.True(t, th.allow("10.0.0.1"))
	assert.False(t, th.allow("10.0.0.1"))
	assert.True(t, th.allow("10.0.0.2"))
}
