package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/domain"
	"go-ems/internal/rbac"
	"go-ems/internal/report"
	reporterrors "go-ems/internal/report/errors"
	"go-ems/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportService struct {
	hiringFn   func(ctx context.Context, actor domain.Principal, start, end string) (report.HiringReport, error)
	divisionFn func(ctx context.Context, actor domain.Principal, month string) (report.MonthlyPayReport, error)
	jobTitleFn func(ctx context.Context, actor domain.Principal, month string) (report.MonthlyPayReport, error)
}

func (f *fakeReportService) HiringByDateRange(ctx context.Context, actor domain.Principal, start, end string) (report.HiringReport, error) {
	return f.hiringFn(ctx, actor, start, end)
}

func (f *fakeReportService) MonthlyPayByDivision(ctx context.Context, actor domain.Principal, month string) (report.MonthlyPayReport, error) {
	return f.divisionFn(ctx, actor, month)
}

func (f *fakeReportService) MonthlyPayByJobTitle(ctx context.Context, actor domain.Principal, month string) (report.MonthlyPayReport, error) {
	return f.jobTitleFn(ctx, actor, month)
}

func setupRouter(t *testing.T, svc report.Service, p domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rbacService, err := rbac.NewDefaultService()
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), p))
		c.Next()
	})
	report.RegisterRoutes(api, report.NewHandler(svc, report.NewExporter()), rbacService)
	return r
}

func TestReportHandler_Hiring(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		svc := &fakeReportService{
			hiringFn: func(_ context.Context, _ domain.Principal, start, end string) (report.HiringReport, error) {
				assert.Equal(t, "2024-01-01", start)
				assert.Equal(t, "2024-03-31", end)
				return report.HiringReport{Start: start, End: end, Rows: []report.HiringRow{{Name: "John Smith"}}}, nil
			},
		}
		r := setupRouter(t, svc, admin)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/hiring?start=2024-01-01&end=2024-03-31", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"John Smith"`)
	})

	t.Run("xlsx", func(t *testing.T) {
		svc := &fakeReportService{
			hiringFn: func(_ context.Context, _ domain.Principal, start, end string) (report.HiringReport, error) {
				return report.HiringReport{Start: start, End: end}, nil
			},
		}
		r := setupRouter(t, svc, admin)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/hiring?start=2024-01-01&end=2024-03-31&format=xlsx", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "hiring-2024-01-01-2024-03-31.xlsx")
		assert.NotEmpty(t, w.Body.Bytes())
	})

	t.Run("service validation error", func(t *testing.T) {
		svc := &fakeReportService{
			hiringFn: func(context.Context, domain.Principal, string, string) (report.HiringReport, error) {
				return report.HiringReport{}, reporterrors.ErrInvalidDateRange
			},
		}
		r := setupRouter(t, svc, admin)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/hiring?start=2024-03-31&end=2024-01-01", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "End Date must not be before Start Date")
	})

	t.Run("employee is forbidden", func(t *testing.T) {
		r := setupRouter(t, &fakeReportService{}, employee)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/hiring?start=2024-01-01&end=2024-03-31", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestReportHandler_MonthlyPay(t *testing.T) {
	t.Run("job titles", func(t *testing.T) {
		svc := &fakeReportService{
			jobTitleFn: func(_ context.Context, _ domain.Principal, month string) (report.MonthlyPayReport, error) {
				assert.Equal(t, "2024-02", month)
				return report.MonthlyPayReport{Month: month, GroupBy: report.ByJobTitle, TotalGross: "0.00", TotalNet: "0.00"}, nil
			},
		}
		r := setupRouter(t, svc, admin)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly-pay/job-titles?month=2024-02", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"group_by":"job_title"`)
	})

	t.Run("unsupported format", func(t *testing.T) {
		r := setupRouter(t, &fakeReportService{}, admin)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly-pay/divisions?month=2024-02&format=pdf", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Format must be json or xlsx")
	})
}
