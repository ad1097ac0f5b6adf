package payroll

import (
	"fmt"
	"net/http"
	"strconv"

	"go-ems/internal/middleware"
	payrollerrors "go-ems/internal/payroll/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// EmployeeHistory serves /employees/:id/payroll. Supplying start or end
// switches to the date-range query.
func (h *Handler) EmployeeHistory(c *gin.Context) {
	employeeID, ok := int64Param(c, "id")
	if !ok {
		h.writeServiceError(c, apperror.InvalidField("Employee ID"))
		return
	}
	h.history(c, employeeID)
}

func (h *Handler) MyHistory(c *gin.Context) {
	h.history(c, c.GetInt64(middleware.ContextEmployeeID))
}

func (h *Handler) history(c *gin.Context, employeeID int64) {
	ctx := c.Request.Context()
	actor, _ := contextutil.GetPrincipal(ctx)

	var filter HistoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	var (
		resp []PayrollResponse
		err  error
	)
	if filter.Start != "" || filter.End != "" {
		resp, err = h.service.GetPayHistoryByDateRange(ctx, actor, employeeID, filter.Start, filter.End)
	} else {
		resp, err = h.service.GetPayHistory(ctx, actor, employeeID)
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(int64(len(resp)), 1, len(resp))
	response.Success(c, http.StatusOK, resp, &meta)
}

func (h *Handler) GetByID(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	id, ok := int64Param(c, "id")
	if !ok {
		h.writeServiceError(c, payrollerrors.ErrInvalidPayrollID)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	var req CreatePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	middleware.StoreIdempotentResult(c, h.rdb, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) DownloadStatement(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	id, ok := int64Param(c, "id")
	if !ok {
		h.writeServiceError(c, payrollerrors.ErrInvalidPayrollID)
		return
	}

	pdf, err := h.service.GeneratePayStatement(c.Request.Context(), actor, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Attachment(c, "application/pdf", fmt.Sprintf("pay-statement-%d.pdf", id), pdf)
}
