package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/muyik/smartschool/internal/domain/repository"
	"github.com/muyik/smartschool/pkg/helpers"
	"github.com/muyik/smartschool/pkg/response"
	"github.com/muyik/smartschool/pkg/validation"
)

type AuthHandler struct {
	Users    repository.UserRepository
	JWT      *helpers.JWTManager
	Sessions *helpers.SessionStore
	Cookies  *helpers.Manager
	Logger   *logrus.Logger
}

func NewAuthHandler(users repository.UserRepository, jwt *helpers.JWTManager, sessions *helpers.SessionStore, cookies *helpers.Manager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, JWT: jwt, Sessions: sessions, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Users.GetByUserName(c.Request.Context(), req.UserName)
	if err != nil || !helpers.CompareHashAndPassword(u.PasswordHash, req.Password) {
		// Same answer for unknown user and wrong password.
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	access, aexp, err := h.JWT.GenerateAccessToken(u.ID.String(), u.Role)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	refresh, rexp, err := h.JWT.GenerateRefreshToken(u.ID.String(), u.Role)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	if h.Sessions != nil {
		if err := h.Sessions.Save(c.Request.Context(), u.ID.String(), refresh, h.JWT.RefreshTTL); err != nil {
			h.Logger.WithError(err).Warn("session save failed")
		}
	}
	h.Cookies.SetPair(c, access, aexp, refresh, rexp)
	response.Success(c, http.StatusOK, gin.H{
		"id":       u.ID,
		"userName": u.UserName,
		"email":    u.Email,
		"role":     u.Role,
	}, "login successful", map[string]any{"access_expires_at": aexp, "refresh_expires_at": rexp})
}

// Refresh POST /api/auth/refresh rotates both tokens from the refresh cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	claims, err := h.JWT.ParseRefreshToken(refresh)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	if h.Sessions != nil {
		ok, err := h.Sessions.Validate(c.Request.Context(), claims.UserID, refresh)
		if err != nil || !ok {
			response.Error(c, http.StatusUnauthorized, "session revoked", nil)
			return
		}
	}

	access, aexp, err := h.JWT.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	newRefresh, rexp, err := h.JWT.GenerateRefreshToken(claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "token generation failed", nil)
		return
	}
	if h.Sessions != nil {
		if err := h.Sessions.Save(c.Request.Context(), claims.UserID, newRefresh, h.JWT.RefreshTTL); err != nil {
			h.Logger.WithError(err).Warn("session save failed")
		}
	}
	h.Cookies.SetPair(c, access, aexp, newRefresh, rexp)
	response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "token refreshed", map[string]any{"access_expires_at": aexp, "refresh_expires_at": rexp})
}

// Logout POST /api/auth/logout revokes the session and clears cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.Sessions != nil {
		if uid := c.GetString("userID"); uid != "" {
			_ = h.Sessions.Delete(c.Request.Context(), uid)
		}
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}
