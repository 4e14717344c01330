package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lightbridge/application"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestUser() *application.User {
	return &application.User{
		ID:           "user-1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$...",
		Roles:        []application.Role{{ID: "role-1", Name: "USER"}},
		CreatedAt:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRegister(t *testing.T) {
	mBridge := &MockBridgeService{}
	auth := &fakeAuthService{
		register: func(_ context.Context, input application.RegisterInput) (*application.User, error) {
			assert.Equal(t, "Alice", input.Name)
			assert.Equal(t, "alice@example.com", input.Email)
			return authTestUser(), nil
		},
	}
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Auth: auth})

	rec, body := doRequest(t, handler, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "user-1", body["id"])
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, []any{"USER"}, body["roles"])
	assert.Equal(t, "2024-06-01T12:00:00Z", body["created_at"])
}

func TestRegister_Validation(t *testing.T) {
	mBridge := &MockBridgeService{}
	auth := &fakeAuthService{
		register: func(_ context.Context, _ application.RegisterInput) (*application.User, error) {
			t.Fatal("register must not be called for invalid input")
			return nil, nil
		},
	}
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Auth: auth})

	testCases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"alice@example.com","password":"password123"}`},
		{"bad email", `{"name":"Alice","email":"not-an-email","password":"password123"}`},
		{"short password", `{"name":"Alice","email":"alice@example.com","password":"short"}`},
		{"long password", `{"name":"Alice","email":"alice@example.com","password":"way-too-long-password"}`},
		{"malformed body", `{`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := doRequest(t, handler, http.MethodPost, "/auth/register", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "error", body["status"])
		})
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	mBridge := &MockBridgeService{}
	auth := &fakeAuthService{
		register: func(_ context.Context, _ application.RegisterInput) (*application.User, error) {
			return nil, application.ErrEmailTaken
		},
	}
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Auth: auth})

	rec, body := doRequest(t, handler, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email already registered", body["message"])
}

func TestLogin(t *testing.T) {
	mBridge := &MockBridgeService{}
	auth := &fakeAuthService{
		login: func(_ context.Context, input application.LoginInput) (string, error) {
			assert.Equal(t, "alice@example.com", input.Email)
			return "signed.jwt.token", nil
		},
	}
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Auth: auth})

	rec, body := doRequest(t, handler, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "signed.jwt.token", body["access_token"])
}

func TestLogin_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown user", application.ErrUserNotFound, http.StatusNotFound},
		{"wrong password", application.ErrInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mBridge := &MockBridgeService{}
			auth := &fakeAuthService{
				login: func(_ context.Context, _ application.LoginInput) (string, error) {
					return "", tc.err
				},
			}
			handler := newTestServer(t, ServerParams{Bridge: mBridge, Auth: auth})

			rec, body := doRequest(t, handler, http.MethodPost, "/auth/login",
				`{"email":"alice@example.com","password":"password123"}`)
			require.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "error", body["status"])
		})
	}
}

func TestMe(t *testing.T) {
	mBridge := &MockBridgeService{}
	auth := &fakeAuthService{
		me: func(_ context.Context, token string) (*application.User, error) {
			assert.Equal(t, "signed.jwt.token", token)
			return authTestUser(), nil
		},
	}
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Auth: auth})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer signed.jwt.token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"alice@example.com"`)
}

func TestMe_MissingHeader(t *testing.T) {
	mBridge := &MockBridgeService{}
	auth := &fakeAuthService{}
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Auth: auth})

	rec, body := doRequest(t, handler, http.MethodGet, "/auth/me", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestMe_InvalidToken(t *testing.T) {
	mBridge := &MockBridgeService{}
	auth := &fakeAuthService{
		me: func(_ context.Context, _ string) (*application.User, error) {
			return nil, application.ErrTokenInvalid
		},
	}
	handler := newTestServer(t, ServerParams{Bridge: mBridge, Auth: auth})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
