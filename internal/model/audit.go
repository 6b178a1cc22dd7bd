package model

import "time"

// AuditActor identifies who performed an audited action.
type AuditActor struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	IP     string `json:"ip,omitempty"`
}

// AuditEntry is one row of the security/change trail.
type AuditEntry struct {
	Action     string     `json:"action"`
	OccurredAt time.Time  `json:"occurred_at"`
	Actor      AuditActor `json:"actor"`
	Status     string     `json:"status"`
	Entity     string     `json:"entity,omitempty"`
	EntityID   string     `json:"entity_id,omitempty"`
	Detail     any        `json:"detail,omitempty"`
	Error      string     `json:"error,omitempty"`
}

const (
	AuditOK     = "ok"
	AuditDenied = "denied"
	AuditFailed = "failed"
)

// AuditQuery narrows and pages an audit listing.
type AuditQuery struct {
	Action  string
	ActorID string
	Status  string
	Entity  string
	From    string
	To      string
	Page    int
	Limit   int
}
