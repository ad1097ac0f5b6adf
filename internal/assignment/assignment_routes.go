package assignment

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already run the auth middleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	assignments := r.Group("/employees/:id/assignments")
	{
		assignments.GET("",
			middleware.RBACAuthorize(rbacService, domain.ResourceAssignment, domain.ActionReadSelf),
			handler.History,
		)
		assignments.POST("/division",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceAssignment, domain.ActionUpdate),
			handler.AssignDivision,
		)
		assignments.POST("/job-title",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceAssignment, domain.ActionUpdate),
			handler.AssignJobTitle,
		)
	}
}
