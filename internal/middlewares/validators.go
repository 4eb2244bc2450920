package middlewares

import (
	"errors"
	"slices"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"pantry/internal/models"
)

// RegisterValidators adds the domain tags used in request binding.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	if err := v.RegisterValidation("storage_kind", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.StorageKinds, fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("stock_status", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.StockStatuses, fl.Field().String())
	})
}
