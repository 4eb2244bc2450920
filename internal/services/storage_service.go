package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pantry/internal/models"
)

// StorageService manages the storages of a house. Callers are expected to
// have checked house membership already.
type StorageService struct {
	storageRepo StorageStore
}

func NewStorageService(storageRepo StorageStore) *StorageService {
	return &StorageService{storageRepo: storageRepo}
}

type StorageRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Kind string `json:"kind" binding:"omitempty,storage_kind"`
}

func (s *StorageService) ListStorages(ctx context.Context, houseID uuid.UUID) ([]models.Storage, error) {
	storages, err := s.storageRepo.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list storages: %w", err)
	}
	return storages, nil
}

func (s *StorageService) CreateStorage(ctx context.Context, houseID uuid.UUID, req StorageRequest) (*models.Storage, error) {
	storage := &models.Storage{HouseID: houseID, Name: req.Name, Kind: req.Kind}
	storage.Prepare()
	if storage.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}
	if err := s.storageRepo.Create(ctx, storage); err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	return storage, nil
}

func (s *StorageService) GetStorage(ctx context.Context, houseID, storageID uuid.UUID) (*models.Storage, error) {
	storage, err := s.storageRepo.GetByID(ctx, houseID, storageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage: %w", err)
	}
	if storage == nil {
		return nil, fmt.Errorf("storage %s: %w", storageID, ErrNotFound)
	}
	return storage, nil
}

func (s *StorageService) UpdateStorage(ctx context.Context, houseID, storageID uuid.UUID, req StorageRequest) (*models.Storage, error) {
	storage, err := s.GetStorage(ctx, houseID, storageID)
	if err != nil {
		return nil, err
	}
	storage.Name = req.Name
	if req.Kind != "" {
		storage.Kind = req.Kind
	}
	storage.Prepare()
	if storage.Name == "" {
		return nil, fmt.Errorf("name must not be blank: %w", ErrInvalidInput)
	}
	if err := s.storageRepo.Update(ctx, storage); err != nil {
		return nil, fmt.Errorf("failed to update storage: %w", err)
	}
	return storage, nil
}

// DeleteStorage removes the storage together with its stock.
func (s *StorageService) DeleteStorage(ctx context.Context, houseID, storageID uuid.UUID) error {
	if _, err := s.GetStorage(ctx, houseID, storageID); err != nil {
		return err
	}
	if err := s.storageRepo.Delete(ctx, houseID, storageID); err != nil {
		return fmt.Errorf("failed to delete storage: %w", err)
	}
	return nil
}

func (s *StorageService) ReorderStorages(ctx context.Context, houseID uuid.UUID, ids []uuid.UUID) ([]models.Storage, error) {
	storages, err := s.ListStorages(ctx, houseID)
	if err != nil {
		return nil, err
	}

	existing := make([]uuid.UUID, len(storages))
	for i, st := range storages {
		existing[i] = st.ID
	}
	if err := validateOrder(existing, ids); err != nil {
		return nil, err
	}

	if err := s.storageRepo.Reorder(ctx, houseID, ids); err != nil {
		return nil, fmt.Errorf("failed to reorder storages: %w", err)
	}
	return s.ListStorages(ctx, houseID)
}
