package audit

type RecordRequest struct {
	UserID     *int64
	Action     string
	EntityType string
	EntityID   string
	Details    string
	RequestID  string
}

type ListFilter struct {
	EntityType string `form:"entity_type"`
	EntityID   string `form:"entity_id"`
	Action     string `form:"action"`
	From       string `form:"from"`
	To         string `form:"to"`
	Limit      int    `form:"limit"`
}

type AuditLogResponse struct {
	ID         int64  `json:"id"`
	UserID     *int64 `json:"user_id,omitempty"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Details    string `json:"details,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	CreatedAt  string `json:"created_at"`
}
