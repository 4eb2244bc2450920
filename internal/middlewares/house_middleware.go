package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantry/internal/models"
	"pantry/internal/responses"
	"pantry/internal/services"
)

type MembershipChecker interface {
	Membership(ctx context.Context, houseID, userID uuid.UUID) (*models.HouseMember, error)
}

// RequireHouseMember resolves :house_id and lets through members only.
// Houses the caller cannot see answer 404 whether they exist or not.
// Must run after Authenticate.
func RequireHouseMember(houses MembershipChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		houseID, err := uuid.Parse(c.Param("house_id"))
		if err != nil {
			responses.Abort(c, http.StatusBadRequest, nil, "Invalid house ID format")
			return
		}

		userID, ok := c.Get(UserIDKey)
		if !ok {
			responses.Abort(c, http.StatusUnauthorized, nil, "Unauthorized")
			return
		}

		member, err := houses.Membership(c.Request.Context(), houseID, userID.(uuid.UUID))
		if errors.Is(err, services.ErrNotFound) {
			responses.Abort(c, http.StatusNotFound, nil, "House not found")
			return
		}
		if err != nil {
			_ = c.Error(err)
			responses.Abort(c, http.StatusInternalServerError, nil, "Failed to check house membership")
			return
		}

		c.Set(HouseIDKey, houseID)
		c.Set(HouseRoleKey, member.Role)
		c.Next()
	}
}
