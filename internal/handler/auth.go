package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/landhub/backoffice/internal/middleware"
	"github.com/landhub/backoffice/internal/service"
	"github.com/landhub/backoffice/pkg/response"
)

// AuthHandler handles staff authentication.
type AuthHandler struct {
	authService    service.AuthService
	tokenService   service.TokenService
	sessionService service.SessionService
	refreshExpiry  time.Duration
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(authSvc service.AuthService, tokenSvc service.TokenService, sessionSvc service.SessionService, refreshExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:    authSvc,
		tokenService:   tokenSvc,
		sessionService: sessionSvc,
		refreshExpiry:  refreshExpiry,
	}
}

// LoginRequest carries staff credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenResponse is the token pair issued on login/refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Login authenticates a staff account and issues tokens.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	staff, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountLocked):
			response.Error(c, response.CodeAccountLocked)
		case errors.Is(err, service.ErrAccountDisabled):
			response.Error(c, response.CodeAccountDisabled)
		default:
			response.Error(c, response.CodeInvalidCredentials)
		}
		return
	}

	accessToken, err := h.tokenService.GenerateAccessToken(c.Request.Context(), staff)
	if err != nil {
		response.Error(c, response.CodeServerError)
		return
	}
	refreshToken, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), staff)
	if err != nil {
		response.Error(c, response.CodeServerError)
		return
	}

	session := &service.Session{
		StaffID:   staff.ID,
		Position:  staff.Position,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := h.sessionService.Create(c.Request.Context(), session); err != nil {
		response.Error(c, response.CodeServerError)
		return
	}

	response.Success(c, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	})
}

// Refresh exchanges a valid, unrevoked refresh token for a new pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	claims, err := h.tokenService.ValidateToken(c.Request.Context(), req.RefreshToken)
	if err != nil || claims.Type != "refresh" {
		response.Error(c, response.CodeInvalidToken)
		return
	}

	revoked, err := h.sessionService.IsRefreshTokenRevoked(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, response.CodeServerError)
		return
	}
	if revoked {
		response.Error(c, response.CodeInvalidToken)
		return
	}

	staff, err := h.authService.GetStaff(c.Request.Context(), claims.StaffID)
	if err != nil {
		response.Error(c, response.CodeInvalidToken)
		return
	}
	if !staff.IsActive() {
		response.Error(c, response.CodeAccountDisabled)
		return
	}

	// Rotate: revoke the old refresh token for the rest of its lifetime.
	_ = h.sessionService.RevokeRefreshToken(c.Request.Context(), req.RefreshToken, time.Until(claims.ExpiresAt.Time))

	accessToken, err := h.tokenService.GenerateAccessToken(c.Request.Context(), staff)
	if err != nil {
		response.Error(c, response.CodeServerError)
		return
	}
	refreshToken, err := h.tokenService.GenerateRefreshToken(c.Request.Context(), staff)
	if err != nil {
		response.Error(c, response.CodeServerError)
		return
	}

	response.Success(c, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	})
}

// LogoutRequest optionally carries the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout drops the caller's sessions and revokes the supplied refresh token.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	staffID := middleware.StaffID(c)
	if err := h.sessionService.DeleteByStaffID(c.Request.Context(), staffID); err != nil {
		response.Error(c, response.CodeServerError)
		return
	}

	if req.RefreshToken != "" {
		if claims, err := h.tokenService.ValidateToken(c.Request.Context(), req.RefreshToken); err == nil && claims.Type == "refresh" {
			_ = h.sessionService.RevokeRefreshToken(c.Request.Context(), req.RefreshToken, time.Until(claims.ExpiresAt.Time))
		}
	}

	response.SuccessWithMsg(c, "logged out", nil)
}

// Me returns the authenticated staff account.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	staff, err := h.authService.GetStaff(c.Request.Context(), middleware.StaffID(c))
	if err != nil {
		response.Error(c, response.CodeStaffNotFound)
		return
	}
	response.Success(c, staff)
}

// ChangePasswordRequest changes the caller's password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword updates the caller's password.
// POST /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithMsg(c, response.CodeInvalidRequest, "invalid request body: "+err.Error())
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), middleware.StaffID(c), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, response.CodeInvalidCredentials)
			return
		}
		response.Error(c, response.CodeServerError)
		return
	}
	response.SuccessWithMsg(c, "password changed", nil)
}
