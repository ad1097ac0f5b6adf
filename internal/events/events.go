// Package events defines the payloads written to the outbox and published
// to Kafka. The audit consumer decodes Meta from every payload.
package events

import "time"

const (
	EmployeeLifecycleTopic = "ems.employee.lifecycle.v1"
	AssignmentChangedTopic = "ems.employee.assignment.v1"
	SalaryAdjustedTopic    = "ems.salary.adjusted.v1"
	PayrollRecordedTopic   = "ems.payroll.recorded.v1"
	AccountTopic           = "ems.account.v1"
)

const (
	EmployeeCreated    = "employee.created"
	EmployeeUpdated    = "employee.updated"
	EmployeeTerminated = "employee.terminated"
	DivisionAssigned   = "assignment.division"
	JobTitleAssigned   = "assignment.job_title"
	SalaryAdjusted     = "salary.adjusted"
	PayrollRecorded    = "payroll.recorded"
	AccountCreated     = "account.created"
	AccountUpdated     = "account.updated"
)

// Topics lists every topic the audit consumer subscribes to.
func Topics() []string {
	return []string{
		EmployeeLifecycleTopic,
		AssignmentChangedTopic,
		SalaryAdjustedTopic,
		PayrollRecordedTopic,
		AccountTopic,
	}
}

// Meta is embedded in every event so consumers can attribute it.
type Meta struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	ActorUserID int64     `json:"actor_user_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewMeta(eventType, requestID string, actorUserID int64) Meta {
	return Meta{
		EventType:   eventType,
		RequestID:   requestID,
		ActorUserID: actorUserID,
		OccurredAt:  time.Now().UTC(),
	}
}
