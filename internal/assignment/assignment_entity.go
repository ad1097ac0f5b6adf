package assignment

import "time"

// Kind selects which history table an assignment lives in.
type Kind string

const (
	KindDivision Kind = "division"
	KindJobTitle Kind = "job_title"
)

type kindSpec struct {
	table        string
	column       string
	lookupTable  string
	lookupColumn string
}

var specs = map[Kind]kindSpec{
	KindDivision: {table: "employee_division", column: "division_id", lookupTable: "division", lookupColumn: "name"},
	KindJobTitle: {table: "employee_job_titles", column: "job_title_id", lookupTable: "job_titles", lookupColumn: "title"},
}

// Assignment is one row of employee_division or employee_job_titles with
// the referenced division name or job title joined in.
type Assignment struct {
	EmployeeID int64
	TargetID   int64
	TargetName string
	StartDate  time.Time
	EndDate    *time.Time
	IsCurrent  bool
}
