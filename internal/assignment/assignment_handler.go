package assignment

import (
	"context"
	"net/http"
	"strconv"

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

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("assignment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("assignment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func employeeIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidField("Employee ID")
	}
	return id, nil
}

func (h *Handler) History(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	id, err := employeeIDParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.History(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AssignDivision(c *gin.Context) {
	h.assign(c, h.service.AssignDivision)
}

func (h *Handler) AssignJobTitle(c *gin.Context) {
	h.assign(c, h.service.AssignJobTitle)
}

type assignFunc func(ctx context.Context, actor domain.Principal, employeeID int64, req AssignRequest) (AssignmentResponse, error)

func (h *Handler) assign(c *gin.Context, fn assignFunc) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	id, err := employeeIDParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := fn(c.Request.Context(), actor, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}
