package audit

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	r.GET("/audit-logs",
		middleware.RoleMiddleware(domain.RoleHRAdmin),
		middleware.RateLimitByUser(2, 5),
		middleware.RBACAuthorize(rbacService, domain.ResourceAudit, domain.ActionRead),
		h.List,
	)
}
