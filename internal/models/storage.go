package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StorageKindFridge  = "fridge"
	StorageKindFreezer = "freezer"
	StorageKindPantry  = "pantry"
	StorageKindCellar  = "cellar"
	StorageKindOther   = "other"
)

// StorageKinds lists every accepted Storage.Kind value.
var StorageKinds = []string{
	StorageKindFridge,
	StorageKindFreezer,
	StorageKindPantry,
	StorageKindCellar,
	StorageKindOther,
}

// Storage is a sub-location of a house such as a fridge or a pantry shelf.
type Storage struct {
	ID        uuid.UUID `json:"id"`
	HouseID   uuid.UUID `json:"house_id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Storage) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.Name = strings.TrimSpace(s.Name)
	if s.Kind == "" {
		s.Kind = StorageKindOther
	}
}
