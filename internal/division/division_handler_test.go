package division_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ems/internal/division"
	divisionerrors "go-ems/internal/division/errors"
	"go-ems/internal/domain"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDivisionService struct {
	CreateFn     func(ctx context.Context, actor domain.Principal, req division.CreateDivisionRequest) (division.DivisionResponse, error)
	GetAllFn     func(ctx context.Context, actor domain.Principal) ([]division.DivisionResponse, error)
	GetOptionsFn func(ctx context.Context, actor domain.Principal) ([]division.OptionResponse, error)
	GetByIDFn    func(ctx context.Context, actor domain.Principal, id int64) (division.DivisionResponse, error)
	UpdateFn     func(ctx context.Context, actor domain.Principal, id int64, req division.UpdateDivisionRequest) (division.DivisionResponse, error)
	DeleteFn     func(ctx context.Context, actor domain.Principal, id int64) error
}

func (f *fakeDivisionService) Create(ctx context.Context, actor domain.Principal, req division.CreateDivisionRequest) (division.DivisionResponse, error) {
	return f.CreateFn(ctx, actor, req)
}
func (f *fakeDivisionService) GetAll(ctx context.Context, actor domain.Principal) ([]division.DivisionResponse, error) {
	return f.GetAllFn(ctx, actor)
}
func (f *fakeDivisionService) GetOptions(ctx context.Context, actor domain.Principal) ([]division.OptionResponse, error) {
	return f.GetOptionsFn(ctx, actor)
}
func (f *fakeDivisionService) GetByID(ctx context.Context, actor domain.Principal, id int64) (division.DivisionResponse, error) {
	return f.GetByIDFn(ctx, actor, id)
}
func (f *fakeDivisionService) Update(ctx context.Context, actor domain.Principal, id int64, req division.UpdateDivisionRequest) (division.DivisionResponse, error) {
	return f.UpdateFn(ctx, actor, id, req)
}
func (f *fakeDivisionService) Delete(ctx context.Context, actor domain.Principal, id int64) error {
	return f.DeleteFn(ctx, actor, id)
}

func setupRouter(t *testing.T, svc division.Service, p domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rbacService, err := rbac.NewDefaultService()
	require.NoError(t, err)

	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Request = c.Request.WithContext(contextutil.WithPrincipal(c.Request.Context(), p))
		c.Next()
	})
	division.RegisterRoutes(api, division.NewHandler(svc), rbacService)
	return r
}

func TestDivisionHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDivisionService{
			CreateFn: func(_ context.Context, _ domain.Principal, req division.CreateDivisionRequest) (division.DivisionResponse, error) {
				return division.DivisionResponse{ID: 4, Name: req.Name}, nil
			},
		}
		r := setupRouter(t, svc, admin)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/divisions", strings.NewReader(`{"name":"Finance"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Finance")
	})

	t.Run("missing name", func(t *testing.T) {
		r := setupRouter(t, &fakeDivisionService{}, admin)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/divisions", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Name is required")
	})

	t.Run("employee role is rejected", func(t *testing.T) {
		r := setupRouter(t, &fakeDivisionService{}, employee)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/divisions", strings.NewReader(`{"name":"Finance"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestDivisionHandler_GetOptions(t *testing.T) {
	svc := &fakeDivisionService{
		GetOptionsFn: func(context.Context, domain.Principal) ([]division.OptionResponse, error) {
			return []division.OptionResponse{{ID: 1, Name: "Technology"}}, nil
		},
	}
	r := setupRouter(t, svc, employee)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/divisions/options", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Technology")
}

func TestDivisionHandler_Delete(t *testing.T) {
	t.Run("in use", func(t *testing.T) {
		svc := &fakeDivisionService{
			DeleteFn: func(context.Context, domain.Principal, int64) error {
				return divisionerrors.ErrDivisionInUse
			},
		}
		r := setupRouter(t, svc, admin)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/divisions/1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		r := setupRouter(t, &fakeDivisionService{}, admin)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/divisions/x", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
