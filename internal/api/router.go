// Package api contains the HTTP handlers and routing for the payment service.
package api

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin router with all routes and middleware.
func SetupRouter(handler *Handler, ginMode string, logger *slog.Logger) *gin.Engine {
	gin.SetMode(ginMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
	}))

	router.GET("/health", handler.Health)

	payment := router.Group("/payment")
	{
		payment.POST("/create_preference", handler.CreatePreference)
		payment.POST("/create_membership", handler.CreateMembership)

		// Redirect callbacks followed by the customer's browser.
		payment.GET("/success", handler.PaymentSuccess)
		payment.GET("/failure", handler.PaymentFailure)
		payment.GET("/pending", handler.PaymentPending)

		// Server-to-server notifications from Mercado Pago.
		payment.POST("/webhook", handler.HandleWebhook)
	}

	return router
}
