package report

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	HiringByDateRange(ctx context.Context, start, end time.Time) ([]HiringRecord, error)
	MonthlyPay(ctx context.Context, by GroupBy, start, end time.Time) ([]PayGroup, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const hiringQuery = `
SELECT e.id AS employee_id, e.employee_number, e.first_name, e.last_name, e.email,
       e.hire_date, e.status, d.name AS division, jt.title AS job_title
FROM employees e
LEFT JOIN employee_division ed ON ed.employee_id = e.id AND ed.is_current = 1
LEFT JOIN division d ON d.id = ed.division_id
LEFT JOIN employee_job_titles ej ON ej.employee_id = e.id AND ej.is_current = 1
LEFT JOIN job_titles jt ON jt.id = ej.job_title_id
WHERE e.hire_date BETWEEN ? AND ?
ORDER BY e.hire_date ASC, e.id ASC`

func (r *repository) HiringByDateRange(ctx context.Context, start, end time.Time) ([]HiringRecord, error) {
	var rows []HiringRecord
	err := r.db.WithContext(ctx).
		Raw(hiringQuery, start.Format(time.DateOnly), end.Format(time.DateOnly)).
		Scan(&rows).Error
	return rows, err
}

type grouping struct {
	history string
	fk      string
	target  string
	label   string
}

var groupings = map[GroupBy]grouping{
	ByDivision: {history: "employee_division", fk: "division_id", target: "division", label: "name"},
	ByJobTitle: {history: "employee_job_titles", fk: "job_title_id", target: "job_titles", label: "title"},
}

// monthlyPayQuery attributes each payroll row to the assignment that was
// active on its pay date, falling back to the unassigned group.
const monthlyPayQuery = `
SELECT COALESCE(g.%[4]s, '%[5]s') AS group_name,
       COUNT(DISTINCT p.employee_id) AS employees,
       SUM(p.gross_pay) AS gross_pay,
       SUM(p.net_pay) AS net_pay
FROM payroll p
LEFT JOIN %[1]s h ON h.employee_id = p.employee_id
     AND h.start_date <= p.pay_date
     AND (h.end_date IS NULL OR h.end_date >= p.pay_date)
LEFT JOIN %[3]s g ON g.id = h.%[2]s
WHERE p.pay_date BETWEEN ? AND ?
GROUP BY COALESCE(g.%[4]s, '%[5]s')
ORDER BY group_name ASC`

func (r *repository) MonthlyPay(ctx context.Context, by GroupBy, start, end time.Time) ([]PayGroup, error) {
	g, ok := groupings[by]
	if !ok {
		return nil, fmt.Errorf("unknown report grouping %q", by)
	}

	query := fmt.Sprintf(monthlyPayQuery, g.history, g.fk, g.target, g.label, UnassignedGroup)
	var rows []PayGroup
	err := r.db.WithContext(ctx).
		Raw(query, start.Format(time.DateOnly), end.Format(time.DateOnly)).
		Scan(&rows).Error
	return rows, err
}
