package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mlarina/foodgram-backend/config"
	"github.com/mlarina/foodgram-backend/internal/app/controller"
	"github.com/mlarina/foodgram-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	userController       *controller.UserController
	ingredientController *controller.IngredientController
	tagController        *controller.TagController
	recipeController     *controller.RecipeController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	ingredientController *controller.IngredientController,
	tagController *controller.TagController,
	recipeController *controller.RecipeController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		userController:       userController,
		ingredientController: ingredientController,
		tagController:        tagController,
		recipeController:     recipeController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Foodgram API is running",
		})
	})

	// Locally stored recipe images
	if r.config.Storage.Driver == "local" {
		router.Static(r.config.Storage.BaseURL, r.config.Storage.LocalDir)
	}

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)
		}

		users := v1.Group("/users")
		{
			users.GET("/me", r.authMiddleware.Authenticate(), r.userController.GetMe)
			users.PATCH("/me", r.authMiddleware.Authenticate(), r.userController.UpdateMe)
			users.POST("/set_password", r.authMiddleware.Authenticate(), r.authController.ChangePassword)
			users.GET("/subscriptions", r.authMiddleware.Authenticate(), r.userController.ListSubscriptions)
			users.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.userController.GetUser)
			users.POST("/:id/subscribe", r.authMiddleware.Authenticate(), r.userController.Subscribe)
			users.DELETE("/:id/subscribe", r.authMiddleware.Authenticate(), r.userController.Unsubscribe)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", r.ingredientController.ListIngredients)
			ingredients.GET("/:id", r.ingredientController.GetIngredient)
		}

		tags := v1.Group("/tags")
		{
			tags.GET("", r.tagController.ListTags)
			tags.GET("/:id", r.tagController.GetTag)
			tags.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("admin"),
				r.tagController.CreateTag,
			)
		}

		recipes := v1.Group("/recipes")
		{
			recipes.GET("", r.authMiddleware.OptionalAuthenticate(), r.recipeController.ListRecipes)
			recipes.GET("/download_shopping_cart", r.authMiddleware.Authenticate(), r.recipeController.DownloadShoppingCart)
			recipes.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.recipeController.GetRecipe)
			recipes.POST("", r.authMiddleware.Authenticate(), r.recipeController.CreateRecipe)
			recipes.PATCH("/:id", r.authMiddleware.Authenticate(), r.recipeController.UpdateRecipe)
			recipes.DELETE("/:id", r.authMiddleware.Authenticate(), r.recipeController.DeleteRecipe)

			recipes.POST("/:id/favorite", r.authMiddleware.Authenticate(), r.recipeController.AddFavorite)
			recipes.DELETE("/:id/favorite", r.authMiddleware.Authenticate(), r.recipeController.RemoveFavorite)
			recipes.POST("/:id/shopping_cart", r.authMiddleware.Authenticate(), r.recipeController.AddToShoppingCart)
			recipes.DELETE("/:id/shopping_cart", r.authMiddleware.Authenticate(), r.recipeController.RemoveFromShoppingCart)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
