package audit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-ems/internal/audit"
	"go-ems/internal/domain"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditService struct {
	listFn func(ctx context.Context, actor domain.Principal, filter audit.ListFilter) ([]audit.AuditLogResponse, error)
}

func (f *fakeAuditService) Record(context.Context, audit.RecordRequest) error { return nil }

func (f *fakeAuditService) List(ctx context.Context, actor domain.Principal, filter audit.ListFilter) ([]audit.AuditLogResponse, error) {
	return f.listFn(ctx, actor, filter)
}

func setupRouter(t *testing.T, svc audit.Service, p domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rbacService, err := rbac.NewDefaultService()
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), p))
		c.Next()
	})
	audit.RegisterRoutes(api, audit.NewHandler(svc), rbacService)
	return r
}

func TestAuditHandler_List(t *testing.T) {
	t.Run("query binding", func(t *testing.T) {
		svc := &fakeAuditService{
			listFn: func(_ context.Context, _ domain.Principal, f audit.ListFilter) ([]audit.AuditLogResponse, error) {
				assert.Equal(t, "payroll", f.EntityType)
				assert.Equal(t, 20, f.Limit)
				return []audit.AuditLogResponse{{ID: 1, Action: "payroll.recorded"}}, nil
			},
		}
		r := setupRouter(t, svc, admin)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs?entity_type=payroll&limit=20", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "payroll.recorded")
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		r := setupRouter(t, &fakeAuditService{}, admin)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs?limit=all", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("employee forbidden", func(t *testing.T) {
		r := setupRouter(t, &fakeAuditService{}, employee)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/audit-logs", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
