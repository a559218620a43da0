// Package router wires the HTTP routes for the dashboard API.
package router

import (
	"time"

	"portfolio_backend/internal/feature/auth/domain/entity"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	holdingshandler "portfolio_backend/internal/feature/holdings/transport/handler"
	platformhandler "portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine with all dashboard routes.
func NewRouter(auth *authhandler.AuthHandler, holdings *holdingshandler.HoldingsHandler, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Unauthenticated routes
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.POST("/login", auth.Login)
	// Refresh authenticates via the refresh token itself, so the access
	// token may already be expired.
	r.POST("/refresh", auth.Refresh)
	r.POST("/logout", auth.Logout)

	// Routes requiring a valid access token
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired())
	{
		protected.GET("/holdings", holdings.List)
		protected.GET("/accounts", holdings.Accounts)
		protected.GET("/summary", holdings.Summary)
		protected.GET("/allocation", holdings.Allocation)

		// Admin-only session management
		admin := protected.Group("/")
		admin.Use(jwtmw.RoleRequired(entity.RoleAdmin))
		{
			admin.POST("/logout/all", auth.LogoutAll)
		}
	}

	return r
}
