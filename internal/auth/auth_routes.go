package auth

import (
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts login, refresh and logout on public and /auth/me on
// protected, which must already run the auth middleware.
func RegisterRoutes(public, protected *gin.RouterGroup, h *Handler) {
	auth := public.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), h.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(0.5, 5), h.RefreshToken)
		auth.POST("/logout", h.Logout)
	}

	protected.GET("/auth/me", middleware.RateLimitByUser(2, 5), h.Me)
}
