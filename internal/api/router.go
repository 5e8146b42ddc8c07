package api

import (
	"github.com/gin-gonic/gin"

	"github.com/tastebase/backend-go/internal/config"
	"github.com/tastebase/backend-go/internal/handler"
	"github.com/tastebase/backend-go/internal/middleware"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.AttributeHandler,
	ingredientHandler *handler.AttributeHandler,
	authMiddleware *middleware.AuthMiddleware,
	throttle gin.HandlerFunc,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)
	r.HandleMethodNotAllowed = true

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Uploaded recipe images
	r.Static("/media", cfg.MediaDir)

	api := r.Group("/api/v1")

	// User routes (registration and token issuance are public, throttled)
	userGroup := api.Group("/user")
	{
		userGroup.POST("/create", throttle, authHandler.CreateUser)
		userGroup.POST("/token", throttle, authHandler.Token)

		me := userGroup.Group("/me")
		me.Use(authMiddleware.RequireAuth())
		{
			me.GET("", userHandler.Me)
			me.PUT("", userHandler.UpdateMe)
			me.PATCH("", userHandler.UpdateMe)
		}
	}

	// Recipe domain routes (all owner-scoped behind the token middleware)
	recipeGroup := api.Group("/recipe")
	recipeGroup.Use(authMiddleware.RequireAuth())
	{
		recipeGroup.GET("/recipes", recipeHandler.List)
		recipeGroup.POST("/recipes", recipeHandler.Create)
		recipeGroup.GET("/recipes/:id", recipeHandler.Get)
		recipeGroup.PUT("/recipes/:id", recipeHandler.Update)
		recipeGroup.PATCH("/recipes/:id", recipeHandler.Update)
		recipeGroup.DELETE("/recipes/:id", recipeHandler.Delete)
		recipeGroup.POST("/recipes/:id/upload-image", recipeHandler.UploadImage)

		recipeGroup.GET("/tags", tagHandler.List)
		recipeGroup.PUT("/tags/:id", tagHandler.Update)
		recipeGroup.PATCH("/tags/:id", tagHandler.Update)
		recipeGroup.DELETE("/tags/:id", tagHandler.Delete)

		recipeGroup.GET("/ingredients", ingredientHandler.List)
		recipeGroup.PUT("/ingredients/:id", ingredientHandler.Update)
		recipeGroup.PATCH("/ingredients/:id", ingredientHandler.Update)
		recipeGroup.DELETE("/ingredients/:id", ingredientHandler.Delete)
	}

	return r
}
