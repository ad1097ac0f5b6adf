package location

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("location.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("location.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("location request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func stateIDParam(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("state_id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidField("State ID")
	}
	return id, nil
}

func (h *Handler) ListStates(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	resp, err := h.service.ListStates(c.Request.Context(), actor)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// ListCities serves both /states/:id/cities and /cities?state_id=.
func (h *Handler) ListCities(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	stateID, err := stateIDParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.ListCities(c.Request.Context(), actor, stateID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateState(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	var req CreateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateState(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CreateCity(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	stateID, err := stateIDParam(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	var req CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateCity(c.Request.Context(), actor, stateID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}
