package report

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	reports := r.Group("/reports",
		middleware.RoleMiddleware(domain.RoleHRAdmin),
		middleware.RateLimitByUser(1, 5),
		middleware.RBACAuthorize(rbacService, domain.ResourceReport, domain.ActionRead),
	)
	{
		reports.GET("/hiring", h.Hiring)
		reports.GET("/monthly-pay/divisions", h.MonthlyPayByDivision)
		reports.GET("/monthly-pay/job-titles", h.MonthlyPayByJobTitle)
	}
}
