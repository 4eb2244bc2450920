package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pantry/internal/middlewares"
	"pantry/internal/responses"
	"pantry/internal/services"
)

// currentUserID returns the id set by Authenticate. It writes a 401 and
// returns false when the request is not authenticated.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middlewares.UserIDKey)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

// currentHouseID returns the house resolved by RequireHouseMember.
func currentHouseID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middlewares.HouseIDKey)
	if !ok {
		responses.Fail(c, http.StatusNotFound, nil, "House not found")
		return uuid.Nil, false
	}
	return v.(uuid.UUID), true
}

func paramUUID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// optionalQueryUUID parses an optional uuid query parameter.
func optionalQueryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, nil, "Invalid "+name)
		return nil, false
	}
	return &id, true
}

// respondError maps service errors onto status codes. Unexpected errors
// are attached to the context for the request logger and not echoed.
func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		responses.Fail(c, http.StatusBadRequest, err, message)
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		responses.Fail(c, http.StatusUnauthorized, err, message)
	case errors.Is(err, services.ErrForbidden), errors.Is(err, services.ErrUnverifiedEmail):
		responses.Fail(c, http.StatusForbidden, err, message)
	case errors.Is(err, services.ErrNotFound):
		responses.Fail(c, http.StatusNotFound, err, message)
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrUserExists):
		responses.Fail(c, http.StatusConflict, err, message)
	default:
		_ = c.Error(err)
		responses.Fail(c, http.StatusInternalServerError, nil, message)
	}
}
