package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pantry/internal/models"
	"pantry/internal/repositories"
)

type HouseService struct {
	houseRepo HouseStore
	userRepo  UserStore
}

func NewHouseService(houseRepo HouseStore, userRepo UserStore) *HouseService {
	return &HouseService{houseRepo: houseRepo, userRepo: userRepo}
}

type HouseRequest struct {
	Name      string   `json:"name" binding:"required,max=100"`
	Address   *string  `json:"address" binding:"omitempty,max=300"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
}

func (r HouseRequest) validate() error {
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be given together: %w", ErrInvalidInput)
	}
	return nil
}

// Bounds is a map viewport; houses are kept when they lie inside it.
type Bounds struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Contains handles viewports crossing the antimeridian (MinLng > MaxLng).
func (b Bounds) Contains(lat, lng float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if b.MinLng <= b.MaxLng {
		return lng >= b.MinLng && lng <= b.MaxLng
	}
	return lng >= b.MinLng || lng <= b.MaxLng
}

// FilterHousesWithin drops houses outside the bounds or without coordinates.
func FilterHousesWithin(houses []models.House, b Bounds) []models.House {
	out := make([]models.House, 0, len(houses))
	for _, h := range houses {
		if h.HasLocation() && b.Contains(*h.Latitude, *h.Longitude) {
			out = append(out, h)
		}
	}
	return out
}

func (s *HouseService) CreateHouse(ctx context.Context, userID uuid.UUID, req HouseRequest) (*models.House, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	house := &models.House{
		OwnerID:   userID,
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	house.Prepare()
	if house.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}

	if err := s.houseRepo.Create(ctx, house); err != nil {
		return nil, fmt.Errorf("failed to create house: %w", err)
	}
	house.Role = models.RoleOwner
	return house, nil
}

func (s *HouseService) ListHouses(ctx context.Context, userID uuid.UUID, bounds *Bounds) ([]models.House, error) {
	houses, err := s.houseRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}
	if bounds != nil {
		houses = FilterHousesWithin(houses, *bounds)
	}
	return houses, nil
}

// Membership returns the caller's membership. Non-members get ErrNotFound
// so house existence does not leak.
func (s *HouseService) Membership(ctx context.Context, houseID, userID uuid.UUID) (*models.HouseMember, error) {
	member, err := s.houseRepo.GetMember(ctx, houseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if member == nil {
		return nil, fmt.Errorf("house %s: %w", houseID, ErrNotFound)
	}
	return member, nil
}

func (s *HouseService) GetHouse(ctx context.Context, houseID, userID uuid.UUID) (*models.House, error) {
	member, err := s.Membership(ctx, houseID, userID)
	if err != nil {
		return nil, err
	}
	house, err := s.houseRepo.GetByID(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get house: %w", err)
	}
	if house == nil {
		return nil, fmt.Errorf("house %s: %w", houseID, ErrNotFound)
	}
	house.Role = member.Role
	return house, nil
}

func (s *HouseService) requireOwner(ctx context.Context, houseID, userID uuid.UUID) error {
	member, err := s.Membership(ctx, houseID, userID)
	if err != nil {
		return err
	}
	if member.Role != models.RoleOwner {
		return fmt.Errorf("only owners may do this: %w", ErrForbidden)
	}
	return nil
}

func (s *HouseService) UpdateHouse(ctx context.Context, houseID, userID uuid.UUID, req HouseRequest) (*models.House, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	house, err := s.GetHouse(ctx, houseID, userID)
	if err != nil {
		return nil, err
	}
	if house.Role != models.RoleOwner {
		return nil, fmt.Errorf("only owners may edit a house: %w", ErrForbidden)
	}
	house.Name = req.Name
	house.Address = req.Address
	house.Latitude = req.Latitude
	house.Longitude = req.Longitude
	house.Prepare()
	if house.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}

	if err := s.houseRepo.Update(ctx, house); err != nil {
		return nil, fmt.Errorf("failed to update house: %w", err)
	}
	return house, nil
}

func (s *HouseService) DeleteHouse(ctx context.Context, houseID, userID uuid.UUID) error {
	if err := s.requireOwner(ctx, houseID, userID); err != nil {
		return err
	}
	if err := s.houseRepo.Delete(ctx, houseID); err != nil {
		return fmt.Errorf("failed to delete house: %w", err)
	}
	return nil
}

func (s *HouseService) ListMembers(ctx context.Context, houseID, userID uuid.UUID) ([]models.HouseMember, error) {
	if _, err := s.Membership(ctx, houseID, userID); err != nil {
		return nil, err
	}
	members, err := s.houseRepo.ListMembers(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=owner member"`
}

func (s *HouseService) AddMember(ctx context.Context, houseID, userID uuid.UUID, req AddMemberRequest) (*models.HouseMember, error) {
	if err := s.requireOwner(ctx, houseID, userID); err != nil {
		return nil, err
	}

	invitee, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if invitee == nil {
		return nil, fmt.Errorf("no user with email %s: %w", req.Email, ErrNotFound)
	}

	existing, err := s.houseRepo.GetMember(ctx, houseID, invitee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user is already a member: %w", ErrConflict)
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	member := &models.HouseMember{
		HouseID: houseID,
		UserID:  invitee.ID,
		Role:    role,
		Email:   invitee.Email,
		Name:    invitee.Name,
	}
	if err := s.houseRepo.AddMember(ctx, member); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, fmt.Errorf("user is already a member: %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return member, nil
}

// RemoveMember lets owners remove anyone and members remove themselves.
// The last owner cannot leave; delete the house instead.
func (s *HouseService) RemoveMember(ctx context.Context, houseID, userID, targetID uuid.UUID) error {
	caller, err := s.Membership(ctx, houseID, userID)
	if err != nil {
		return err
	}
	if caller.Role != models.RoleOwner && userID != targetID {
		return fmt.Errorf("only owners may remove other members: %w", ErrForbidden)
	}

	target, err := s.houseRepo.GetMember(ctx, houseID, targetID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if target == nil {
		return fmt.Errorf("member %s: %w", targetID, ErrNotFound)
	}

	if target.Role == models.RoleOwner {
		owners, err := s.houseRepo.CountOwners(ctx, houseID)
		if err != nil {
			return fmt.Errorf("failed to count owners: %w", err)
		}
		if owners <= 1 {
			return fmt.Errorf("the last owner cannot leave the house: %w", ErrConflict)
		}
	}

	if err := s.houseRepo.RemoveMember(ctx, houseID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// HouseScope resolves which houses an inventory query covers: the given
// house when the caller belongs to it, otherwise all of the caller's.
func (s *HouseService) HouseScope(ctx context.Context, userID uuid.UUID, houseID *uuid.UUID) ([]uuid.UUID, error) {
	if houseID != nil {
		if _, err := s.Membership(ctx, *houseID, userID); err != nil {
			return nil, err
		}
		return []uuid.UUID{*houseID}, nil
	}
	ids, err := s.houseRepo.ListHouseIDsByMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list houses: %w", err)
	}
	return ids, nil
}
