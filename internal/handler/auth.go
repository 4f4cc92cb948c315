package handler

import (
	"log/slog"
	"net/http"

	"github.com/sathira/codewizard/internal/auth"
	"github.com/sathira/codewizard/internal/service"
)

// AuthHandler owns the account endpoints: register, login, profile lookup,
// the token-introspection /me route, and the password-reset stubs.
type AuthHandler struct {
	authSvc *service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger}
}

type registerRequest struct {
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	JobPosition  string   `json:"jobPosition"`
	Technologies []string `json:"technologies"`
	Password     string   `json:"password"`
}

// HandleRegister creates a new account.
//
// HTTP: POST /api/register
// 201 on success; 409 duplicate_key if the username or email is taken.
// The response never echoes any of the submitted data.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	err := h.authSvc.Register(r.Context(), service.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		JobPosition:  req.JobPosition,
		Technologies: req.Technologies,
		Password:     req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"msg": "User registered successfully"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a signed bearer token.
//
// HTTP: POST /api/login
// 200 {"token": "..."} or 400 invalid_credentials (uniform message).
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// HandleMe returns the email claim of the presented token.
//
// HTTP: GET /api/me (guarded)
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireAuth, kept as a guard.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"email": email})
}

// HandleGetUserByEmail returns a public profile.
//
// HTTP: GET /api/user/{email} (guarded)
// The password hash is excluded from the model's JSON encoding, so the full
// user struct is safe to write.
func (h *AuthHandler) HandleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	user, err := h.authSvc.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleForgotPassword is an acknowledged stub: the flow was never built.
//
// HTTP: POST /api/forgot-password → 501
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotImplemented, map[string]string{"msg": "Forgot password functionality is not implemented"})
}

// HandleResetPassword is an acknowledged stub, same as forgot-password.
//
// HTTP: POST /api/reset-password/{token} → 501
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotImplemented, map[string]string{"msg": "Reset password functionality is not implemented"})
}
