package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/isisteel/yard-turnaround/internal/http/middleware"
)

func NewRouter(handler *Handler, authMiddleware gin.HandlerFunc, environment string, log zerolog.Logger) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowMethods("GET", "POST", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler.Register(router, authMiddleware)
	return router
}
