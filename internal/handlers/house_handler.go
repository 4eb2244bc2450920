package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantry/internal/models"
	"pantry/internal/responses"
	"pantry/internal/services"
)

type HouseManager interface {
	CreateHouse(ctx context.Context, userID uuid.UUID, req services.HouseRequest) (*models.House, error)
	ListHouses(ctx context.Context, userID uuid.UUID, bounds *services.Bounds) ([]models.House, error)
	GetHouse(ctx context.Context, houseID, userID uuid.UUID) (*models.House, error)
	UpdateHouse(ctx context.Context, houseID, userID uuid.UUID, req services.HouseRequest) (*models.House, error)
	DeleteHouse(ctx context.Context, houseID, userID uuid.UUID) error
	ListMembers(ctx context.Context, houseID, userID uuid.UUID) ([]models.HouseMember, error)
	AddMember(ctx context.Context, houseID, userID uuid.UUID, req services.AddMemberRequest) (*models.HouseMember, error)
	RemoveMember(ctx context.Context, houseID, userID, targetID uuid.UUID) error
}

type HouseHandler struct {
	houseService HouseManager
}

func NewHouseHandler(houseService HouseManager) *HouseHandler {
	return &HouseHandler{houseService: houseService}
}

var errPartialBounds = errors.New("min_lat, max_lat, min_lng and max_lng must be given together")

// parseBounds reads the optional map viewport from the query string.
func parseBounds(c *gin.Context) (*services.Bounds, error) {
	keys := []string{"min_lat", "max_lat", "min_lng", "max_lng"}
	values := make([]float64, len(keys))
	given := 0
	for i, k := range keys {
		raw := c.Query(k)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("invalid " + k)
		}
		values[i] = v
		given++
	}
	switch given {
	case 0:
		return nil, nil
	case len(keys):
	default:
		return nil, errPartialBounds
	}

	b := &services.Bounds{MinLat: values[0], MaxLat: values[1], MinLng: values[2], MaxLng: values[3]}
	if b.MinLat > b.MaxLat || b.MinLat < -90 || b.MaxLat > 90 || b.MinLng < -180 || b.MaxLng > 180 {
		return nil, errors.New("bounding box out of range")
	}
	return b, nil
}

// CreateHouse handles POST /api/v1/houses
func (h *HouseHandler) CreateHouse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.HouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	house, err := h.houseService.CreateHouse(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create house")
		return
	}

	responses.Success(c, http.StatusCreated, house, "House created successfully")
}

// ListHouses handles GET /api/v1/houses
func (h *HouseHandler) ListHouses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	bounds, err := parseBounds(c)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid bounding box")
		return
	}

	houses, err := h.houseService.ListHouses(c.Request.Context(), userID, bounds)
	if err != nil {
		respondError(c, err, "Failed to retrieve houses")
		return
	}

	responses.Success(c, http.StatusOK, houses, "Houses retrieved successfully")
}

// GetHouse handles GET /api/v1/houses/:house_id
func (h *HouseHandler) GetHouse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := paramUUID(c, "house_id", "house")
	if !ok {
		return
	}

	house, err := h.houseService.GetHouse(c.Request.Context(), houseID, userID)
	if err != nil {
		respondError(c, err, "House not found")
		return
	}

	responses.Success(c, http.StatusOK, house, "House retrieved successfully")
}

// UpdateHouse handles PATCH /api/v1/houses/:house_id
func (h *HouseHandler) UpdateHouse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := paramUUID(c, "house_id", "house")
	if !ok {
		return
	}

	var req services.HouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	house, err := h.houseService.UpdateHouse(c.Request.Context(), houseID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to update house")
		return
	}

	responses.Success(c, http.StatusOK, house, "House updated successfully")
}

// DeleteHouse handles DELETE /api/v1/houses/:house_id
func (h *HouseHandler) DeleteHouse(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := paramUUID(c, "house_id", "house")
	if !ok {
		return
	}

	if err := h.houseService.DeleteHouse(c.Request.Context(), houseID, userID); err != nil {
		respondError(c, err, "Failed to delete house")
		return
	}

	responses.Success(c, http.StatusOK, nil, "House deleted successfully")
}

// ListMembers handles GET /api/v1/houses/:house_id/members
func (h *HouseHandler) ListMembers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := paramUUID(c, "house_id", "house")
	if !ok {
		return
	}

	members, err := h.houseService.ListMembers(c.Request.Context(), houseID, userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve members")
		return
	}

	responses.Success(c, http.StatusOK, members, "Members retrieved successfully")
}

// AddMember handles POST /api/v1/houses/:house_id/members
func (h *HouseHandler) AddMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := paramUUID(c, "house_id", "house")
	if !ok {
		return
	}

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	member, err := h.houseService.AddMember(c.Request.Context(), houseID, userID, req)
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	responses.Success(c, http.StatusCreated, member, "Member added successfully")
}

// RemoveMember handles DELETE /api/v1/houses/:house_id/members/:user_id
func (h *HouseHandler) RemoveMember(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	houseID, ok := paramUUID(c, "house_id", "house")
	if !ok {
		return
	}
	targetID, ok := paramUUID(c, "user_id", "user")
	if !ok {
		return
	}

	if err := h.houseService.RemoveMember(c.Request.Context(), houseID, userID, targetID); err != nil {
		respondError(c, err, "Failed to remove member")
		return
	}

	responses.Success(c, http.StatusOK, nil, "Member removed successfully")
}
