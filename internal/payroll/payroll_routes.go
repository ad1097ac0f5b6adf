package payroll

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already run the auth middleware. Ownership of
// a record is checked by the service; the route only gates on read_self.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	readSelf := middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionReadSelf)

	r.GET("/employees/:id/payroll", middleware.RateLimitByUser(3, 10), readSelf, h.EmployeeHistory)

	payroll := r.Group("/payroll")
	{
		payroll.GET("/me", middleware.RequireEmployeeLink(), readSelf, h.MyHistory)
		payroll.GET("/:id", readSelf, h.GetByID)
		payroll.GET("/:id/statement", middleware.RateLimitByUser(1, 3), readSelf, h.DownloadStatement)
		payroll.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionCreate),
			middleware.Idempotency(h.rdb),
			h.Create,
		)
	}
}
