package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEndpoints_SignupAndLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/auth/signup", "", payload{
		"email":        "ada@example.com",
		"password":     "correct-horse",
		"display_name": "Ada",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	}
	api.decode(rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.Equal(t, "Ada", created.DisplayName)

	rec = api.do(http.MethodPost, "/api/auth/login", "", payload{
		"email": "ada@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var session sessionResponse
	api.decode(rec, &session)
	assert.NotEmpty(t, session.Token)
	assert.False(t, session.ExpiresAt.IsZero())
}

func TestAuthEndpoints_SignupValidation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		body payload
	}{
		{"missing email", payload{"password": "correct-horse"}},
		{"malformed email", payload{"email": "not-an-email", "password": "correct-horse"}},
		{"short password", payload{"email": "ada@example.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthEndpoints_DuplicateSignup(t *testing.T) {
	api := newTestAPI(t)
	api.signUpAndLogin("ada@example.com", "correct-horse")

	rec := api.do(http.MethodPost, "/api/auth/signup", "", payload{
		"email": "ada@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthEndpoints_LoginWrongPassword(t *testing.T) {
	api := newTestAPI(t)
	api.signUpAndLogin("ada@example.com", "correct-horse")

	rec := api.do(http.MethodPost, "/api/auth/login", "", payload{
		"email": "ada@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEndpoints_Me(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")

	rec := api.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Email string `json:"email"`
	}
	api.decode(rec, &me)
	assert.Equal(t, "ada@example.com", me.Email)
}

func TestAuthEndpoints_MeWithoutToken(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEndpoints_InvalidTokenRejected(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/auth/me", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEndpoints_Logout(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")

	rec := api.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEndpoints_Refresh(t *testing.T) {
	api := newTestAPI(t)
	token := api.signUpAndLogin("ada@example.com", "correct-horse")

	rec := api.do(http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed sessionResponse
	api.decode(rec, &refreshed)
	require.NotEmpty(t, refreshed.Token)
	assert.NotEqual(t, token, refreshed.Token)

	// The old token is revoked by the refresh.
	rec = api.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/api/auth/me", refreshed.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthEndpoints_PasswordResetFlow(t *testing.T) {
	api := newTestAPI(t)
	api.signUpAndLogin("ada@example.com", "correct-horse")

	rec := api.do(http.MethodPost, "/api/auth/reset-request", "", payload{
		"email": "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var reset struct {
		Token string `json:"token"`
	}
	api.decode(rec, &reset)
	require.NotEmpty(t, reset.Token)

	rec = api.do(http.MethodPost, "/api/auth/reset", "", payload{
		"token": reset.Token, "password": "new-password-1",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login", "", payload{
		"email": "ada@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/login", "", payload{
		"email": "ada@example.com", "password": "new-password-1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthEndpoints_ResetTokenSingleUse(t *testing.T) {
	api := newTestAPI(t)
	api.signUpAndLogin("ada@example.com", "correct-horse")

	rec := api.do(http.MethodPost, "/api/auth/reset-request", "", payload{
		"email": "ada@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var reset struct {
		Token string `json:"token"`
	}
	api.decode(rec, &reset)

	rec = api.do(http.MethodPost, "/api/auth/reset", "", payload{
		"token": reset.Token, "password": "new-password-1",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = api.do(http.MethodPost, "/api/auth/reset", "", payload{
		"token": reset.Token, "password": "another-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
