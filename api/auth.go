package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"lightbridge/application"
)

const (
	passwordMinLen = 8
	passwordMaxLen = 16
)

type userResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"created_at"`
}

func toUserResponse(user *application.User) userResponse {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Roles:     roles,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !strings.Contains(body.Email, "@") {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}
	if len(body.Password) < passwordMinLen || len(body.Password) > passwordMaxLen {
		writeError(w, http.StatusBadRequest, "password must be 8 to 16 characters")
		return
	}

	user, err := s.params.Auth.Register(r.Context(), application.RegisterInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		s.log.Error().Err(err).Str("request_id", requestID(r)).Msg("register failed")
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.params.Auth.Login(r.Context(), application.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, application.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			s.log.Error().Err(err).Str("request_id", requestID(r)).Msg("login failed")
			writeError(w, http.StatusInternalServerError, "login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"access_token": token})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		writeError(w, http.StatusBadRequest, "authorization header is missing")
		return
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	user, err := s.params.Auth.Me(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrTokenInvalid):
			writeError(w, http.StatusUnauthorized, "token invalid")
		case errors.Is(err, application.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			s.log.Error().Err(err).Str("request_id", requestID(r)).Msg("me failed")
			writeError(w, http.StatusInternalServerError, "lookup failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoleName    string `json:"role_name"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.RoleName == "" {
		writeError(w, http.StatusBadRequest, "role_name is required")
		return
	}

	role := application.Role{Name: body.RoleName, Description: body.Description}
	if err := s.params.Roles.Create(r.Context(), &role); err != nil {
		s.log.Error().Err(err).Str("request_id", requestID(r)).Msg("create role failed")
		writeError(w, http.StatusInternalServerError, "role creation failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":          role.ID,
		"role_name":   role.Name,
		"description": role.Description,
	})
}
