package handlers

import (
	"time"

	"gameplatform/pkg/logger"
	"gameplatform/services/api-gateway/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(pathHandler *PathHandler, limiter *middleware.RateLimiter, tokens middleware.TokenValidator, origins []string, lg *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(lg))

	config := cors.DefaultConfig()
	if len(origins) > 0 {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(tokens))
	{
		api.GET("/learning-paths/:categoryId", pathHandler.LearningPath)
		api.GET("/recommendations", pathHandler.Recommendations)
		api.GET("/recommendations/nlp", pathHandler.NLPRecommendations)
		api.POST("/difficulty/adjust", pathHandler.AdjustDifficulty)
		api.GET("/difficulty/:categoryId", pathHandler.RecommendedDifficulty)
		api.GET("/quizzes/:contentId", pathHandler.Quiz)
		api.POST("/content/generate", limiter.Limit("content_generate", 10, 1*time.Minute), pathHandler.GenerateContent)
		api.POST("/progress", pathHandler.RecordProgress)
		api.GET("/progress", pathHandler.Progress)
	}

	return r
}
