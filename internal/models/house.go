package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

type House struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Role of the requesting user; filled on listings.
	Role string `json:"role,omitempty"`
}

func (h *House) Prepare() {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.Name = strings.TrimSpace(h.Name)
}

// HasLocation reports whether both coordinates are set.
func (h *House) HasLocation() bool {
	return h.Latitude != nil && h.Longitude != nil
}

type HouseMember struct {
	HouseID   uuid.UUID `json:"house_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
