package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"pantry/internal/models"
	"pantry/internal/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrUnverifiedEmail = errors.New("email is not verified by Google")

type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

type GoogleAuthService struct {
	auth        *AuthService
	userRepo    UserStore
	oauthConfig *oauth2.Config
	userInfoURL string
}

func NewGoogleAuthService(auth *AuthService, userRepo UserStore, oauthConfig *oauth2.Config) *GoogleAuthService {
	return &GoogleAuthService{
		auth:        auth,
		userRepo:    userRepo,
		oauthConfig: oauthConfig,
		userInfoURL: googleUserInfoURL,
	}
}

func (s *GoogleAuthService) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state)
}

// Callback exchanges the authorization code, reads the Google profile and
// signs in the matching user, creating one on first login.
func (s *GoogleAuthService) Callback(ctx context.Context, code string) (*models.User, utils.TokenPair, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, utils.TokenPair{}, fmt.Errorf("token exchange failed: %w: %w", ErrInvalidCredentials, err)
	}

	profile, err := s.fetchProfile(ctx, token)
	if err != nil {
		return nil, utils.TokenPair{}, err
	}
	if !profile.VerifiedEmail {
		return nil, utils.TokenPair{}, ErrUnverifiedEmail
	}

	user, err := s.userRepo.FindUserByEmail(ctx, profile.Email)
	if err != nil {
		return nil, utils.TokenPair{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		user = &models.User{Email: profile.Email, Name: profile.Name}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, utils.TokenPair{}, fmt.Errorf("failed to create user: %w", err)
		}
		s.auth.log.Info("user registered via google", zap.String("user_id", user.ID.String()))
	}

	return s.auth.issue(ctx, user)
}

func (s *GoogleAuthService) fetchProfile(ctx context.Context, token *oauth2.Token) (*GoogleUser, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}

	resp, err := s.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var profile GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	return &profile, nil
}
