package http

import (
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tallysdk"
)

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	Sessions *service.SessionService
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register
//	@Description	Creates an account and opens a session for it.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tallysdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	tallysdk.AuthResponse		"user and token pair"
//	@Failure		400		{object}	tallysdk.ErrorResponse		"validation failed or user already exists"
//	@Failure		429		{object}	tallysdk.ErrorResponse
//	@Router			/api/auth/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.RegisterRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	res, err := h.Sessions.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse("User registered successfully", res))
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Login
//	@Description	Exchanges an email or username and password for a new token pair. Other sessions are left alone.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tallysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	tallysdk.AuthResponse
//	@Failure		400		{object}	tallysdk.ErrorResponse	"validation failed"
//	@Failure		401		{object}	tallysdk.ErrorResponse	"invalid credentials"
//	@Failure		429		{object}	tallysdk.ErrorResponse
//	@Router			/api/auth/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	res, err := h.Sessions.Login(r.Context(), service.LoginInput{
		EmailOrUsername: req.EmailOrUsername,
		Password:        req.Password,
	})
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAuthResponse("Login successful", res))
}

// HandleRefresh handles POST /auth/refresh
//
//	@Summary		Refresh
//	@Description	Rotates a refresh token. The presented token stops working as soon as this succeeds.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tallysdk.RefreshRequest	true	"Current refresh token"
//	@Success		200		{object}	tallysdk.AuthResponse	"user and new token pair"
//	@Failure		401		{object}	tallysdk.ErrorResponse	"missing, invalid or expired refresh token"
//	@Router			/api/auth/refresh [post]
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.RefreshRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	res, err := h.Sessions.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAuthResponse("", res))
}

// HandleLogout handles POST /auth/logout
//
//	@Summary		Logout
//	@Description	Revokes the given refresh token, or every refresh token of the caller when none is given.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tallysdk.LogoutRequest	false	"Refresh token to revoke"
//	@Success		200		{object}	tallysdk.MessageResponse
//	@Failure		401		{object}	tallysdk.ErrorResponse
//	@Router			/api/auth/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req tallysdk.LogoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}

	user, err := h.Sessions.GetCurrentUser(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	if err := h.Sessions.Logout(r.Context(), user.ID, req.RefreshToken); err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tallysdk.MessageResponse{Message: "Logged out successfully"})
}

// HandleMe handles GET /auth/me
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	tallysdk.UserResponse
//	@Failure		401	{object}	tallysdk.ErrorResponse
//	@Router			/api/auth/me [get]
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.Sessions.GetCurrentUser(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tallysdk.UserResponse{User: toUser(user)})
}
