package employee

import (
	"errors"
	"strings"

	employeeerrors "go-ems/internal/employee/errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

var constraintErrors = map[string]error{
	"uq_employee_number": employeeerrors.ErrEmployeeNumberExists,
	"uq_employee_email":  employeeerrors.ErrEmailExists,
	"uq_employee_ssn":    employeeerrors.ErrSSNExists,
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		// "Duplicate entry 'x' for key 'employees.uq_employee_email'"
		if mapped := matchConstraint(myErr.Message); mapped != nil {
			return mapped
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
	}

	return err
}

func matchConstraint(msg string) error {
	for name, mapped := range constraintErrors {
		if strings.Contains(msg, name) {
			return mapped
		}
	}
	return nil
}
