package routes

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/JerishBovas/ScavengerHunt-API/controllers"
	"github.com/JerishBovas/ScavengerHunt-API/middleware"
	"github.com/JerishBovas/ScavengerHunt-API/services"
	"github.com/JerishBovas/ScavengerHunt-API/services/blob"
	"github.com/JerishBovas/ScavengerHunt-API/services/redis"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient, logger *zap.Logger) {
	imageDir := os.Getenv("IMAGE_DIR")
	if imageDir == "" {
		imageDir = "images"
	}
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	store, err := blob.NewDiskStore(imageDir, baseURL)
	if err != nil {
		log.Fatalf("Error setting up image store: %v", err)
	}

	gameService := services.NewGameService(db, store, redisClient, logger)

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Uploaded images are served straight from disk
	router.Static("/images", imageDir)

	// API routes group
	api := router.Group("/api/v1")

	api.GET("/ping", controllers.Ping)

	// Routes that require authentication
	games := api.Group("/games")
	games.Use(middleware.AuthRequired)
	{
		games.GET("", controllers.ListGames(gameService))
		games.POST("", controllers.CreateGame(gameService))
		games.PUT("/image", controllers.UploadGameImage(gameService))
		games.GET("/:id", controllers.GetGame(gameService))
		games.PUT("/:id", controllers.UpdateGame(gameService))
		games.DELETE("/:id", controllers.DeleteGame(gameService))
	}
}
