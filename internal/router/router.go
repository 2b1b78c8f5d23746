package router

import (
	"github.com/gin-gonic/gin"

	"github.com/dkim/authapi-backend/config"
	"github.com/dkim/authapi-backend/internal/app/controller"
	"github.com/dkim/authapi-backend/internal/middleware"
)

type Router struct {
	authController *controller.AuthController
	authMiddleware *middleware.AuthMiddleware
	loginLimiter   *middleware.RateLimiter
	resetLimiter   *middleware.RateLimiter
	config         *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	authMiddleware *middleware.AuthMiddleware,
	loginLimiter *middleware.RateLimiter,
	resetLimiter *middleware.RateLimiter,
	cfg *config.Config,
) *Router {
	return &Router{
		authController: authController,
		authMiddleware: authMiddleware,
		loginLimiter:   loginLimiter,
		resetLimiter:   resetLimiter,
		config:         cfg,
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
			"message": "Auth Service API is running",
		})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", r.loginLimiter.Middleware(), r.authController.Register)
		auth.POST("/login", r.loginLimiter.Middleware(), r.authController.Login)
		auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		auth.POST("/forgot-password", r.resetLimiter.Middleware(), r.authController.ForgotPassword)
		auth.POST("/reset-password", r.resetLimiter.Middleware(), r.authController.ResetPassword)
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
