package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pantry/internal/middlewares"
	"pantry/internal/models"
	"pantry/internal/responses"
	"pantry/internal/services"
	"pantry/internal/utils"
)

const RefreshTokenCookieName = "refresh_token"

type Authenticator interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.User, utils.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, utils.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (utils.TokenPair, error)
	Logout(ctx context.Context, access *utils.Claims, refreshToken string) error
}

type AuthHandler struct {
	authService   Authenticator
	secureCookies bool
}

func NewAuthHandler(authService Authenticator, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, pair utils.TokenPair) {
	maxAge := int(time.Until(pair.RefreshExpiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RefreshTokenCookieName, pair.RefreshToken, maxAge, "/", "", h.secureCookies, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(RefreshTokenCookieName, "", -1, "/", "", h.secureCookies, true)
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Please provide your email and password correctly")
		return
	}

	user, pair, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Could not register user")
		return
	}

	h.setRefreshCookie(c, pair)
	responses.Success(c, http.StatusCreated, gin.H{
		"user":         user,
		"access_token": pair.AccessToken,
	}, "New user registered successfully!")
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid Format")
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to login")
		return
	}

	h.setRefreshCookie(c, pair)
	responses.Success(c, http.StatusOK, gin.H{
		"user":         user,
		"access_token": pair.AccessToken,
	}, "User Login Successfully!")
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		responses.Fail(c, http.StatusUnauthorized, nil, "Missing refresh token")
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.clearRefreshCookie(c)
		respondError(c, err, "Invalid or expired refresh token")
		return
	}

	h.setRefreshCookie(c, pair)
	responses.Success(c, http.StatusOK, gin.H{
		"access_token": pair.AccessToken,
	}, "Access token refreshed successfully")
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var claims *utils.Claims
	if v, ok := c.Get(middlewares.ClaimsKey); ok {
		claims, _ = v.(*utils.Claims)
	}
	refreshToken, _ := c.Cookie(RefreshTokenCookieName)

	if err := h.authService.Logout(c.Request.Context(), claims, refreshToken); err != nil {
		respondError(c, err, "Could not revoke token")
		return
	}

	h.clearRefreshCookie(c)
	responses.Success(c, http.StatusOK, nil, "Logged out successfully")
}
