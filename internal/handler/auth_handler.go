package handler

import (
	"context"
	"net/http"

	"eureka/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthService interface {
	SignUpWithEmail(ctx context.Context, req service.SignUpRequest) (uuid.UUID, error)
	ConfirmOTP(ctx context.Context, req service.OTPConfirmationRequest) (uuid.UUID, error)
	CompleteProfile(ctx context.Context, req service.CompleteProfileRequest) (*service.Session, error)
	SignIn(ctx context.Context, req service.SignInRequest) (*service.Session, error)
	SignInWithGoogle(ctx context.Context, req service.GoogleSignInRequest) (*service.Session, error)
	RequestPasswordReset(ctx context.Context, req service.ResetPasswordRequest) error
	ConfirmResetLink(ctx context.Context, req service.ResetLinkConfirmationRequest) (string, error)
	SetNewPassword(ctx context.Context, token string, req service.NewPasswordRequest) error
}

type AuthHandler struct {
	auth AuthService
}

func NewAuthHandler(auth AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type SessionIDResponse struct {
	SessionID string `json:"sessionId"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// SignUpWithEmail godoc
// @Summary      Start an email sign-up
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.SignUpRequest  true  "Email"
// @Success      200      {object}  Envelope{data=SessionIDResponse}
// @Failure      409      {object}  ErrorResponse
// @Router       /api/v1/auth/sign-up-email [post]
func (h *AuthHandler) SignUpWithEmail(c *gin.Context) {
	var req service.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sessionID, err := h.auth.SignUpWithEmail(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "auth.success", SessionIDResponse{SessionID: sessionID.String()})
}

// ConfirmOTP godoc
// @Summary      Confirm the sign-up code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.OTPConfirmationRequest  true  "Session and code"
// @Success      200      {object}  Envelope{data=SessionIDResponse}
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/auth/otp-confirmation [post]
func (h *AuthHandler) ConfirmOTP(c *gin.Context) {
	var req service.OTPConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	sessionID, err := h.auth.ConfirmOTP(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "auth.sign_up.otp.success", SessionIDResponse{SessionID: sessionID.String()})
}

// CompleteProfile godoc
// @Summary      Finish sign-up with a name and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.CompleteProfileRequest  true  "Profile"
// @Success      200      {object}  Envelope{data=SessionResponse}
// @Failure      401      {object}  ErrorResponse
// @Router       /api/v1/auth/complete-profile [post]
func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	var req service.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.auth.CompleteProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "auth.success", toSession(session))
}

// SignIn godoc
// @Summary      Sign in with email and password
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.SignInRequest  true  "Credentials"
// @Success      200      {object}  Envelope{data=SessionResponse}
// @Failure      401      {object}  ErrorResponse
// @Router       /api/v1/auth/sign-in-email [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req service.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "auth.success", toSession(session))
}

// SignInWithGoogle godoc
// @Summary      Sign in with a Google ID token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.GoogleSignInRequest  true  "Google ID token"
// @Success      200      {object}  Envelope{data=SessionResponse}
// @Failure      401      {object}  ErrorResponse
// @Router       /api/v1/auth/sign-in-google [post]
func (h *AuthHandler) SignInWithGoogle(c *gin.Context) {
	var req service.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.auth.SignInWithGoogle(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "auth.success", toSession(session))
}

// RequestPasswordReset godoc
// @Summary      Mail a password reset link
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.ResetPasswordRequest  true  "Email"
// @Success      200      {object}  Envelope
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/auth/request-reset-password [post]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req service.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "auth.success", nil)
}

// ConfirmResetLink godoc
// @Summary      Check a password reset token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      service.ResetLinkConfirmationRequest  true  "Reset token"
// @Success      200      {object}  Envelope{data=TokenResponse}
// @Failure      400      {object}  ErrorResponse
// @Router       /api/v1/auth/reset-password/confirm [post]
func (h *AuthHandler) ConfirmResetLink(c *gin.Context) {
	var req service.ResetLinkConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.auth.ConfirmResetLink(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "auth.success", TokenResponse{Token: token})
}

// SetNewPassword godoc
// @Summary      Set a new password with a reset token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token    path      string                      true  "Reset token"
// @Param        request  body      service.NewPasswordRequest  true  "New password"
// @Success      200      {object}  Envelope
// @Failure      404      {object}  ErrorResponse
// @Router       /api/v1/auth/reset-password/{token} [post]
func (h *AuthHandler) SetNewPassword(c *gin.Context) {
	var req service.NewPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.auth.SetNewPassword(c.Request.Context(), c.Param("token"), req); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "auth.success", nil)
}

func toSession(s *service.Session) SessionResponse {
	return SessionResponse{Token: s.Token, User: toUser(s.User)}
}
