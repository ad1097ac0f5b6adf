package salary

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	adjustments := r.Group("/salary-adjustments")
	{
		adjustments.POST("/preview",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionRead),
			h.Preview,
		)
		adjustments.POST("",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceSalary, domain.ActionUpdate),
			middleware.Idempotency(h.rdb),
			h.Apply,
		)
	}
}
