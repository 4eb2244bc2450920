package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pantry/internal/handlers"
)

// Handlers groups everything RegisterRoutes mounts. GoogleAuth is nil when
// Google login is not configured.
type Handlers struct {
	Auth         *handlers.AuthHandler
	GoogleAuth   *handlers.GoogleAuthHandler
	User         *handlers.UserHandler
	House        *handlers.HouseHandler
	Storage      *handlers.StorageHandler
	Stock        *handlers.StockHandler
	Ingredient   *handlers.IngredientHandler
	Recipe       *handlers.RecipeHandler
	ShoppingList *handlers.ShoppingListHandler
	Health       gin.HandlerFunc
}

// Guards are the middlewares protected routes run behind.
type Guards struct {
	Authenticate gin.HandlerFunc
	HouseMember  gin.HandlerFunc
}

func RegisterRoutes(router *gin.Engine, h Handlers, g Guards) {
	api := router.Group("/api/v1")

	NewAuthRoutes(h.Auth, h.GoogleAuth, g).RegisterRoutes(api)
	NewUserRoutes(h.User, g).RegisterRoutes(api)
	NewHouseRoutes(h, g).RegisterRoutes(api)
	NewIngredientRoutes(h.Ingredient, g).RegisterRoutes(api)
	NewRecipeRoutes(h.Recipe, g).RegisterRoutes(api)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	router.GET("/healthz", h.Health)
}
