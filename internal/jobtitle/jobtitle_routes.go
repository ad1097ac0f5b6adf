package jobtitle

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	titles := r.Group("/job-titles")
	{
		titles.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionRead), h.GetAll)
		titles.GET("/options", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionRead), h.GetOptions)
		titles.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionCreate), h.Create)
		titles.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionRead), h.GetByID)
		titles.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionUpdate), h.Update)
		titles.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionDelete), h.Delete)
	}
}
