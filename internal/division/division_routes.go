package division

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	divisions := r.Group("/divisions")
	{
		divisions.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionRead), h.GetAll)
		divisions.GET("/options", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionRead), h.GetOptions)
		divisions.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionCreate), h.Create)
		divisions.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionRead), h.GetByID)
		divisions.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionUpdate), h.Update)
		divisions.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionDelete), h.Delete)
	}
}
