package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pantry/internal/models"
)

type UserService struct {
	userRepo UserStore
}

func NewUserService(userRepo UserStore) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return user, nil
}

type UpdateUserRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Prepare()
	if user.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}
	if err := s.userRepo.UpdateName(ctx, id, user.Name); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
