package location

import (
	"go-ems/internal/domain"
	"go-ems/internal/middleware"
	"go-ems/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	read := middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionRead)
	create := middleware.RBACAuthorize(rbacService, domain.ResourceLookup, domain.ActionCreate)

	states := r.Group("/states")
	{
		states.GET("", read, h.ListStates)
		states.POST("", create, h.CreateState)
		states.GET("/:id/cities", read, h.ListCities)
		states.POST("/:id/cities", create, h.CreateCity)
	}
	r.GET("/cities", read, h.ListCities)
}
