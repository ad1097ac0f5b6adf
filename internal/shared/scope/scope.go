package scope

import (
	"time"

	"gorm.io/gorm"
)

// EmployeeID restricts a query to rows owned by one employee.
func EmployeeID(id int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", id)
	}
}

// DateBetween filters column to the inclusive calendar range [start, end].
func DateBetween(column string, start, end time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" BETWEEN ? AND ?", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
}

// Status filters employees by employment status; empty means any.
func Status(status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}
}

// Current keeps only the current row of an assignment history table. alias
// qualifies the column when the table is joined; empty leaves it bare.
func Current(alias string) func(db *gorm.DB) *gorm.DB {
	column := "is_current"
	if alias != "" {
		column = alias + "." + column
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", true)
	}
}
