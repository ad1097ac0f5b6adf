package employee

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already run the auth middleware.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
			handler.GetAll,
		)

		employees.GET("/me",
			middleware.RequireEmployeeLink(),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionReadSelf),
			handler.Me,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionReadSelf),
			handler.GetByID,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionCreate),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionUpdate),
			handler.Update,
		)

		employees.POST("/:id/terminate",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionDelete),
			handler.Terminate,
		)
	}
}
