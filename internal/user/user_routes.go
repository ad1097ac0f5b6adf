package user

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	users := r.Group("/users")
	{
		users.PUT("/me/password", middleware.RateLimitByUser(0.2, 3), h.ChangePassword)

		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionRead),
			h.GetAll,
		)
		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionRead),
			h.GetByID,
		)
		users.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionCreate),
			h.Create,
		)
		users.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionUpdate),
			h.ToggleStatus,
		)
		users.POST("/:id/reset-password",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceUser, domain.ActionUpdate),
			h.ResetPassword,
		)
	}
}
