package routes

import (
	"github.com/gin-gonic/gin"

	"pantry/internal/handlers"
)

type RecipeRoutes struct {
	handler *handlers.RecipeHandler
	guards  Guards
}

func NewRecipeRoutes(handler *handlers.RecipeHandler, guards Guards) *RecipeRoutes {
	return &RecipeRoutes{handler: handler, guards: guards}
}

func (r *RecipeRoutes) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(r.guards.Authenticate)
	{
		recipes.GET("", r.handler.ListRecipes)
		recipes.POST("", r.handler.CreateRecipe)
		recipes.GET("/matches", r.handler.ListMatches)
		recipes.GET("/:id", r.handler.GetRecipe)
		recipes.PUT("/:id", r.handler.UpdateRecipe)
		recipes.DELETE("/:id", r.handler.DeleteRecipe)
		recipes.GET("/:id/match", r.handler.GetMatch)
		recipes.POST("/:id/shopping-list", r.handler.AddMissingToShoppingList)
	}
}
