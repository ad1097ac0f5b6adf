package middleware

import (
	"errors"
	"strconv"
	"strings"

	autherrors "go-ems/internal/auth/errors"
	"go-ems/internal/auth/token"
	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID     = "user_id"
	ContextEmployeeID = "employee_id"
	ContextRole       = "role"
	AccessTokenCookie = "access_token"
)

// AuthMiddleware resolves the caller from a bearer token or the access
// cookie and stores it as a domain.Principal on the request context.
func AuthMiddleware(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		principal, err := issuer.Parse(tokenString, token.Access)
		if err != nil {
			abortWith(c, err)
			return
		}

		uid := strconv.FormatInt(principal.UserID, 10)
		c.Set(ContextUserID, uid)
		c.Set(ContextRole, string(principal.Role))
		if principal.EmployeeID != nil {
			c.Set(ContextEmployeeID, *principal.EmployeeID)
		}
		ctx := contextutil.WithUserID(c.Request.Context(), uid)
		c.Request = c.Request.WithContext(contextutil.WithPrincipal(ctx, principal))

		c.Next()
	}
}

// RoleMiddleware is a coarse gate in front of handlers; services still
// authorize every call themselves.
func RoleMiddleware(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := contextutil.GetPrincipal(c.Request.Context())
		if !ok {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		for _, role := range allowedRoles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		abortWith(c, apperror.ErrForbidden)
	}
}

func abortWith(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = autherrors.ErrInvalidToken
	}
	response.Error(c, appErr.HTTPStatus, appErr.Code, appErr.Message, nil)
	c.Abort()
}
