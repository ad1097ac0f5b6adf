package payroll_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/domain"
	"go-ems/internal/payroll"
	payrollerrors "go-ems/internal/payroll/errors"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	historyFn   func(ctx context.Context, actor domain.Principal, employeeID int64) ([]payroll.PayrollResponse, error)
	rangeFn     func(ctx context.Context, actor domain.Principal, employeeID int64, start, end string) ([]payroll.PayrollResponse, error)
	getByIDFn   func(ctx context.Context, actor domain.Principal, id int64) (payroll.PayrollResponse, error)
	createFn    func(ctx context.Context, actor domain.Principal, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error)
	statementFn func(ctx context.Context, actor domain.Principal, id int64) ([]byte, error)
}

func (f *fakePayrollService) GetPayHistory(ctx context.Context, actor domain.Principal, employeeID int64) ([]payroll.PayrollResponse, error) {
	return f.historyFn(ctx, actor, employeeID)
}

func (f *fakePayrollService) GetPayHistoryByDateRange(ctx context.Context, actor domain.Principal, employeeID int64, start, end string) ([]payroll.PayrollResponse, error) {
	return f.rangeFn(ctx, actor, employeeID, start, end)
}

func (f *fakePayrollService) GetByID(ctx context.Context, actor domain.Principal, id int64) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, actor, id)
}

func (f *fakePayrollService) Create(ctx context.Context, actor domain.Principal, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakePayrollService) GeneratePayStatement(ctx context.Context, actor domain.Principal, id int64) ([]byte, error) {
	return f.statementFn(ctx, actor, id)
}

func setupRouter(t *testing.T, svc payroll.Service, p domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rbacService, err := rbac.NewDefaultService()
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), p))
		c.Next()
	})
	payroll.RegisterRoutes(api, payroll.NewHandler(svc, nil), rbacService)
	return r
}

func TestPayrollHandler_EmployeeHistory(t *testing.T) {
	t.Run("date range query", func(t *testing.T) {
		svc := &fakePayrollService{
			rangeFn: func(_ context.Context, _ domain.Principal, employeeID int64, start, end string) ([]payroll.PayrollResponse, error) {
				assert.Equal(t, int64(1), employeeID)
				assert.Equal(t, "2024-01-01", start)
				assert.Equal(t, "2024-02-29", end)
				return []payroll.PayrollResponse{{ID: 1}, {ID: 2}}, nil
			},
		}
		r := setupRouter(t, svc, admin)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/1/payroll?start=2024-01-01&end=2024-02-29", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":2`)
	})

	t.Run("reversed range is a bad request", func(t *testing.T) {
		svc := &fakePayrollService{
			rangeFn: func(context.Context, domain.Principal, int64, string, string) ([]payroll.PayrollResponse, error) {
				return nil, payrollerrors.ErrInvalidDateRange
			},
		}
		r := setupRouter(t, svc, admin)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/1/payroll?start=2024-03-01&end=2024-02-01", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "End Date must not be before Start Date")
	})

	t.Run("service denies another employee", func(t *testing.T) {
		svc := &fakePayrollService{
			historyFn: func(context.Context, domain.Principal, int64) ([]payroll.PayrollResponse, error) {
				return nil, apperror.ErrForbidden
			},
		}
		r := setupRouter(t, svc, employeePrincipal(2))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/1/payroll", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotContains(t, w.Body.String(), "gross_pay")
	})
}

func TestPayrollHandler_MyHistory(t *testing.T) {
	svc := &fakePayrollService{
		historyFn: func(_ context.Context, _ domain.Principal, employeeID int64) ([]payroll.PayrollResponse, error) {
			assert.Equal(t, int64(6), employeeID)
			return []payroll.PayrollResponse{}, nil
		},
	}
	r := setupRouter(t, svc, employeePrincipal(6))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPayrollHandler_DownloadStatement(t *testing.T) {
	svc := &fakePayrollService{
		statementFn: func(_ context.Context, _ domain.Principal, id int64) ([]byte, error) {
			assert.Equal(t, int64(12), id)
			return []byte("%PDF-1.4\n"), nil
		},
	}
	r := setupRouter(t, svc, employeePrincipal(1))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/12/statement", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "pay-statement-12.pdf")
}

func TestPayrollHandler_Create_EmployeeRejectedByRoute(t *testing.T) {
	svc := &fakePayrollService{}
	r := setupRouter(t, svc, employeePrincipal(1))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payroll", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
