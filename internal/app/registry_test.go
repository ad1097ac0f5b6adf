package app

import (
	"testing"

	"go-ems/internal/shared/config"
	"go-ems/internal/shared/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterModules_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _ := dbtest.New(t)
	router := gin.New()

	m, err := registerModules(router, &config.Config{JWTSecret: "test"}, db, nil)
	require.NoError(t, err)
	assert.NotNil(t, m.audit)

	registered := map[string]bool{}
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"POST /api/v1/auth/login",
		"GET /api/v1/auth/me",
		"GET /api/v1/employees",
		"POST /api/v1/employees",
		"GET /api/v1/employees/:id/assignments",
		"GET /api/v1/divisions",
		"GET /api/v1/job-titles",
		"GET /api/v1/states",
		"POST /api/v1/salary-adjustments/preview",
		"GET /api/v1/employees/:id/payroll",
		"GET /api/v1/reports/hiring",
		"GET /api/v1/reports/monthly-pay/divisions",
		"GET /api/v1/reports/monthly-pay/job-titles",
		"GET /api/v1/audit-logs",
		"GET /api/v1/users",
		"GET /api/v1/rbac/permissions",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}
