package auth

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buysimply/buysimply/auth/revocation"
	"github.com/buysimply/buysimply/auth/token"
	"github.com/buysimply/buysimply/faults"
	"github.com/buysimply/buysimply/logger"
)

const staffFixture = `[
  {
    "id": "1",
    "name": "Nkechi Obi",
    "email": "nkechi@buysimply.app",
    "password": "pass-one",
    "role": "staff"
  },
  {
    "id": "2",
    "name": "Amina Yusuf",
    "email": "amina@buysimply.app",
    "password": "pass-two",
    "role": "superadmin"
  }
]`

func testLogger() logger.Logger {
	return logger.NewZerologLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Output: io.Discard,
	})
}

func newTestService(t *testing.T) (*Service, *token.Codec, *revocation.Store) {
	t.Helper()

	codec, err := token.NewCodec("test-secret", 10*time.Minute)
	require.NoError(t, err)

	revocations := revocation.NewStore()

	svc, err := NewService([]byte(staffFixture), codec, revocations, testLogger())
	require.NoError(t, err)
	return svc, codec, revocations
}

func TestService_LoginSuccess(t *testing.T) {
	svc, codec, _ := newTestService(t)

	result, err := svc.Login("nkechi@buysimply.app", "pass-one")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "1", result.User.ID)
	assert.Equal(t, "nkechi@buysimply.app", result.User.Email)
	assert.Equal(t, "Nkechi Obi", result.User.Name)
	assert.Equal(t, "staff", result.User.Role)

	// The issued token resolves back to the staff member's principal.
	principal, err := codec.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, token.Principal{UserID: "1", Role: "staff"}, principal)
}

func TestService_LoginFailureDoesNotLeakWhichFieldWasWrong(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := []struct {
		name            string
		email, password string
	}{
		{"wrong email", "unknown@buysimply.app", "pass-one"},
		{"wrong password", "nkechi@buysimply.app", "wrong"},
		{"both wrong", "unknown@buysimply.app", "wrong"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(tc.email, tc.password)
			require.Error(t, err)

			var fault *faults.Fault
			require.ErrorAs(t, err, &fault)
			assert.Equal(t, http.StatusBadRequest, fault.Status)
			assert.Equal(t, "User does not exist", fault.Message())
		})
	}
}

func TestService_Logout(t *testing.T) {
	svc, _, revocations := newTestService(t)

	result, err := svc.Logout("some-token")
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "Logout successful", result.Message)
	assert.True(t, revocations.IsRevoked("some-token"))
}

func TestService_LogoutWithoutToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Logout("")
	require.Error(t, err)

	var fault *faults.Fault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, http.StatusBadRequest, fault.Status)
	assert.Equal(t, "No token provided", fault.Message())
}
