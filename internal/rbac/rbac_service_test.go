package rbac_test

import (
	"errors"
	"testing"

	"go-ems/internal/domain"
	"go-ems/internal/rbac"
	"go-ems/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	svc, err := rbac.NewDefaultService()
	require.NoError(t, err)
	return svc
}

func employeePrincipal(employeeID int64) domain.Principal {
	return domain.Principal{UserID: 7, Username: "jsmith", Role: domain.RoleEmployee, EmployeeID: &employeeID}
}

var admin = domain.Principal{UserID: 1, Username: "admin", Role: domain.RoleHRAdmin}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		name     string
		role     domain.Role
		resource string
		action   string
		want     bool
	}{
		{"admin any resource", domain.RoleHRAdmin, domain.ResourceSalary, domain.ActionUpdate, true},
		{"admin reports", domain.RoleHRAdmin, domain.ResourceReport, domain.ActionRead, true},
		{"employee self read", domain.RoleEmployee, domain.ResourcePayroll, domain.ActionReadSelf, true},
		{"employee lookups", domain.RoleEmployee, domain.ResourceLookup, domain.ActionRead, true},
		{"employee full read denied", domain.RoleEmployee, domain.ResourceEmployee, domain.ActionRead, false},
		{"employee reports denied", domain.RoleEmployee, domain.ResourceReport, domain.ActionRead, false},
		{"employee salary denied", domain.RoleEmployee, domain.ResourceSalary, domain.ActionUpdate, false},
		{"unknown role denied", domain.Role("GUEST"), domain.ResourceLookup, domain.ActionRead, false},
		{"anonymous denied", "", domain.ResourceLookup, domain.ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{Role: tt.role, Resource: tt.resource, Action: tt.action})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, allowed)
		})
	}
}

func TestService_Authorize(t *testing.T) {
	svc := newService(t)

	assert.NoError(t, svc.Authorize(admin, domain.ResourceEmployee, domain.ActionCreate))

	err := svc.Authorize(employeePrincipal(1), domain.ResourceEmployee, domain.ActionCreate)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
}

func TestService_AuthorizeOwn(t *testing.T) {
	svc := newService(t)

	t.Run("admin reads anyone", func(t *testing.T) {
		assert.NoError(t, svc.AuthorizeOwn(admin, domain.ResourcePayroll, 3))
	})

	t.Run("employee reads self", func(t *testing.T) {
		assert.NoError(t, svc.AuthorizeOwn(employeePrincipal(1), domain.ResourcePayroll, 1))
	})

	t.Run("employee cannot read another employee", func(t *testing.T) {
		err := svc.AuthorizeOwn(employeePrincipal(1), domain.ResourcePayroll, 3)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("unlinked account is denied", func(t *testing.T) {
		p := domain.Principal{UserID: 9, Role: domain.RoleEmployee}
		err := svc.AuthorizeOwn(p, domain.ResourceEmployee, 1)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})

	t.Run("self read not granted for reports", func(t *testing.T) {
		err := svc.AuthorizeOwn(employeePrincipal(1), domain.ResourceReport, 1)
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestService_Permissions(t *testing.T) {
	svc := newService(t)

	perms, err := svc.Permissions(domain.RoleEmployee)
	require.NoError(t, err)
	assert.Contains(t, perms, rbac.PermissionResponse{Resource: domain.ResourcePayroll, Action: domain.ActionReadSelf})
	assert.NotContains(t, perms, rbac.PermissionResponse{Resource: "*", Action: "*"})
}
