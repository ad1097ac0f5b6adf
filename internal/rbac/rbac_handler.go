package rbac

import (
	"net/http"
	"strings"

	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
		logger:  zap.L().Named("rbac.handler"),
	}
}

// Enforce lets a client ask whether the caller's role may perform an action,
// so screens can hide controls the server would reject anyway.
func (h *Handler) Enforce(c *gin.Context) {
	actor, ok := contextutil.GetPrincipal(c.Request.Context())
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	var req EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.MapValidationError(err))
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Role:     actor.Role,
		Resource: strings.TrimSpace(req.Resource),
		Action:   strings.TrimSpace(req.Action),
	})
	if err != nil {
		contextutil.GetLogger(c.Request.Context(), h.logger).Error("enforce failed", zap.Error(err))
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) Permissions(c *gin.Context) {
	actor, ok := contextutil.GetPrincipal(c.Request.Context())
	if !ok {
		writeError(c, apperror.ErrUnauthorized)
		return
	}

	perms, err := h.service.Permissions(actor.Role)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, PermissionsResponse{
		Role:        string(actor.Role),
		Permissions: perms,
	}, nil)
}

func writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
