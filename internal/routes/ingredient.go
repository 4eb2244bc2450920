package routes

import (
	"github.com/gin-gonic/gin"

	"pantry/internal/handlers"
)

type IngredientRoutes struct {
	handler *handlers.IngredientHandler
	guards  Guards
}

func NewIngredientRoutes(handler *handlers.IngredientHandler, guards Guards) *IngredientRoutes {
	return &IngredientRoutes{handler: handler, guards: guards}
}

func (r *IngredientRoutes) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	ingredients.Use(r.guards.Authenticate)
	{
		ingredients.GET("", r.handler.ListIngredients)
		ingredients.POST("", r.handler.CreateIngredient)
		ingredients.GET("/:id", r.handler.GetIngredient)
		ingredients.PATCH("/:id", r.handler.UpdateIngredient)
		ingredients.DELETE("/:id", r.handler.DeleteIngredient)
	}
}
