package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pantry/internal/config"
	"pantry/internal/handlers"
	"pantry/internal/middlewares"
	"pantry/internal/repositories"
	"pantry/internal/routes"
	"pantry/internal/services"
	"pantry/internal/utils"
)

// New wires repositories, services and handlers into an *http.Server.
func New(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log *zap.Logger) (*http.Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middlewares.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	// Dependency injection
	userRepo := repositories.NewUserRepository(pool)
	redisRepo := repositories.NewRedisRepository(rdb)
	houseRepo := repositories.NewHouseRepository(pool)
	storageRepo := repositories.NewStorageRepository(pool)
	ingredientRepo := repositories.NewIngredientRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	recipeRepo := repositories.NewRecipeRepository(pool)
	listRepo := repositories.NewShoppingListRepository(pool)

	tokens := utils.NewTokenIssuer(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	authService := services.NewAuthService(userRepo, redisRepo, tokens, log)
	userService := services.NewUserService(userRepo)
	houseService := services.NewHouseService(houseRepo, userRepo)
	storageService := services.NewStorageService(storageRepo)
	ingredientService := services.NewIngredientService(ingredientRepo)
	stockService := services.NewStockService(stockRepo, storageService, ingredientService)
	recipeService := services.NewRecipeService(recipeRepo, ingredientService)
	matchService := services.NewMatchService(recipeRepo, stockRepo, houseService)
	listService := services.NewShoppingListService(listRepo, stockRepo, ingredientService, stockService, matchService, log)

	authHandler := handlers.NewAuthHandler(authService, cfg.Auth.SecureCookies)
	h := routes.Handlers{
		Auth:         authHandler,
		User:         handlers.NewUserHandler(userService),
		House:        handlers.NewHouseHandler(houseService),
		Storage:      handlers.NewStorageHandler(storageService),
		Stock:        handlers.NewStockHandler(stockService),
		Ingredient:   handlers.NewIngredientHandler(ingredientService),
		Recipe:       handlers.NewRecipeHandler(recipeService, matchService, listService),
		ShoppingList: handlers.NewShoppingListHandler(listService),
		Health:       healthCheck(pool, redisRepo),
	}
	if cfg.Google.Enabled() {
		googleService := services.NewGoogleAuthService(authService, userRepo, config.OAuthConfig(cfg.Google))
		h.GoogleAuth = handlers.NewGoogleAuthHandler(googleService, authHandler)
	} else {
		log.Info("google login disabled")
	}

	router := gin.New()
	router.Use(
		middlewares.RequestLogger(log),
		middlewares.Recovery(log),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	routes.RegisterRoutes(router, h, routes.Guards{
		Authenticate: middlewares.Authenticate(tokens, redisRepo),
		HouseMember:  middlewares.RequireHouseMember(houseService),
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthCheck pings postgres and redis in parallel.
func healthCheck(db, cache pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok", "redis": "ok"}
		var g errgroup.Group
		var dbErr, cacheErr error
		g.Go(func() error { dbErr = db.Ping(ctx); return nil })
		g.Go(func() error { cacheErr = cache.Ping(ctx); return nil })
		_ = g.Wait()

		code := http.StatusOK
		if dbErr != nil {
			status["database"] = dbErr.Error()
			code = http.StatusServiceUnavailable
		}
		if cacheErr != nil {
			status["redis"] = cacheErr.Error()
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
