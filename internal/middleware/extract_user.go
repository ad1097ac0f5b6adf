package middleware

import (
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireEmployeeLink rejects accounts that are not linked to an employee
// record. Self-service routes under /me depend on it.
func RequireEmployeeLink() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := contextutil.GetPrincipal(c.Request.Context())
		if !ok {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}
		if principal.EmployeeID == nil {
			response.Error(c, apperror.ErrForbidden.HTTPStatus, apperror.ErrForbidden.Code,
				"Account is not linked to an employee", nil)
			c.Abort()
			return
		}

		c.Set(ContextEmployeeID, *principal.EmployeeID)
		c.Next()
	}
}
