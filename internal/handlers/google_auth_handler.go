package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"pantry/internal/models"
	"pantry/internal/responses"
	"pantry/internal/utils"
)

const oauthStateCookieName = "oauth_state"

type GoogleAuthenticator interface {
	AuthCodeURL(state string) string
	Callback(ctx context.Context, code string) (*models.User, utils.TokenPair, error)
}

type GoogleAuthHandler struct {
	googleAuthService GoogleAuthenticator
	auth              *AuthHandler
}

func NewGoogleAuthHandler(googleAuthService GoogleAuthenticator, auth *AuthHandler) *GoogleAuthHandler {
	return &GoogleAuthHandler{googleAuthService: googleAuthService, auth: auth}
}

// Login handles GET /api/v1/auth/google/login
func (h *GoogleAuthHandler) Login(c *gin.Context) {
	state, err := utils.GenerateOAuthState()
	if err != nil {
		responses.Fail(c, http.StatusInternalServerError, nil, "Failed to generate state")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, 600, "/", "", h.auth.secureCookies, true)

	c.Redirect(http.StatusTemporaryRedirect, h.googleAuthService.AuthCodeURL(state))
}

// Callback handles GET /api/v1/auth/google/callback
func (h *GoogleAuthHandler) Callback(c *gin.Context) {
	queryState := c.Query("state")
	if queryState == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Missing state parameter")
		return
	}

	cookieState, err := c.Cookie(oauthStateCookieName)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Missing state cookie")
		return
	}
	if queryState != cookieState {
		responses.Fail(c, http.StatusForbidden, nil, "State mismatch")
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", h.auth.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Missing code")
		return
	}

	user, pair, err := h.googleAuthService.Callback(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "Google login failed")
		return
	}

	h.auth.setRefreshCookie(c, pair)
	responses.Success(c, http.StatusOK, gin.H{
		"user":         user,
		"access_token": pair.AccessToken,
	}, "User Login Successfully!")
}
