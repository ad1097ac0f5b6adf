package report

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go-ems/internal/domain"
	reporterrors "go-ems/internal/report/errors"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service  Service
	exporter Exporter
	logger   *zap.Logger
}

func NewHandler(service Service, exporter Exporter, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, exporter: exporter, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("report request failed",
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// wantsXLSX reports whether ?format=xlsx was requested; anything other than
// json, xlsx or empty is rejected.
func wantsXLSX(format string) (bool, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return false, nil
	case "xlsx":
		return true, nil
	}
	return false, reporterrors.ErrInvalidFormat
}

func (h *Handler) Hiring(c *gin.Context) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	var q HiringQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	xlsx, err := wantsXLSX(q.Format)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rep, err := h.service.HiringByDateRange(c.Request.Context(), actor, q.Start, q.End)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if !xlsx {
		response.Success(c, http.StatusOK, rep, nil)
		return
	}
	data, err := h.exporter.Hiring(rep)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Attachment(c, xlsxContentType, "hiring-"+rep.Start+"-"+rep.End+".xlsx", data)
}

func (h *Handler) MonthlyPayByDivision(c *gin.Context) {
	h.monthlyPay(c, h.service.MonthlyPayByDivision)
}

func (h *Handler) MonthlyPayByJobTitle(c *gin.Context) {
	h.monthlyPay(c, h.service.MonthlyPayByJobTitle)
}

type monthlyPayFunc func(ctx context.Context, actor domain.Principal, month string) (MonthlyPayReport, error)

func (h *Handler) monthlyPay(c *gin.Context, run monthlyPayFunc) {
	actor, _ := contextutil.GetPrincipal(c.Request.Context())
	var q MonthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	xlsx, err := wantsXLSX(q.Format)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	rep, err := run(c.Request.Context(), actor, q.Month)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if !xlsx {
		response.Success(c, http.StatusOK, rep, nil)
		return
	}
	data, err := h.exporter.MonthlyPay(rep)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Attachment(c, xlsxContentType, fmt.Sprintf("monthly-pay-%s-%s.xlsx", rep.GroupBy, rep.Month), data)
}
