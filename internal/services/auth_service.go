package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pantry/internal/models"
	"pantry/internal/utils"
)

type AuthService struct {
	userRepo  UserStore
	blacklist TokenBlacklist
	tokens    *utils.TokenIssuer
	log       *zap.Logger
}

func NewAuthService(userRepo UserStore, blacklist TokenBlacklist, tokens *utils.TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		blacklist: blacklist,
		tokens:    tokens,
		log:       log,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"max=100"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, utils.TokenPair, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.TokenPair{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, utils.TokenPair{}, ErrUserExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, utils.TokenPair{}, fmt.Errorf("failed to save user: %w", err)
	}

	pair, err := s.tokens.GenerateTokens(user.ID)
	if err != nil {
		return nil, utils.TokenPair{}, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, pair, nil
}

// Login answers ErrInvalidCredentials for both unknown emails and wrong
// passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, utils.TokenPair, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, utils.TokenPair{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || user.PasswordHash == nil {
		return nil, utils.TokenPair{}, ErrInvalidCredentials
	}

	if err := utils.VerifyPassword(*user.PasswordHash, password); err != nil {
		return nil, utils.TokenPair{}, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*models.User, utils.TokenPair, error) {
	pair, err := s.tokens.GenerateTokens(user.ID)
	if err != nil {
		return nil, utils.TokenPair{}, err
	}
	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return user, pair, nil
}

// Refresh validates the refresh token, revokes it and issues a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (utils.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return utils.TokenPair{}, ErrInvalidToken
	}

	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return utils.TokenPair{}, fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return utils.TokenPair{}, ErrInvalidToken
	}

	userID, _ := claims.UserID()
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return utils.TokenPair{}, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return utils.TokenPair{}, ErrInvalidToken
	}

	if err := s.blacklist.Blacklist(ctx, claims.ID, claims.Remaining(time.Now())); err != nil {
		return utils.TokenPair{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.tokens.GenerateTokens(user.ID)
}

// Logout revokes the access token and, when present and valid, the
// refresh token.
func (s *AuthService) Logout(ctx context.Context, access *utils.Claims, refreshToken string) error {
	now := time.Now()
	if access != nil {
		if err := s.blacklist.Blacklist(ctx, access.ID, access.Remaining(now)); err != nil {
			return fmt.Errorf("failed to revoke access token: %w", err)
		}
	}
	if refreshToken == "" {
		return nil
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		// Nothing to revoke.
		return nil
	}
	return s.blacklist.Blacklist(ctx, claims.ID, claims.Remaining(now))
}
