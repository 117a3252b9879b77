package domain

import "time"

// AuditEntry records a security-relevant action.
type AuditEntry struct {
	ActorID   int64          `json:"actor_id"`
	Action    string         `json:"action"`
	Category  string         `json:"category"`
	Details   map[string]any `json:"details,omitempty"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Audit action categories
const (
	AuditCategoryAuth  = "auth"
	AuditCategoryAdmin = "admin"
)

// Audit actions
const (
	AuditActionLogin       = "login"
	AuditActionLoginFailed = "login_failed"
	AuditActionLogout      = "logout"

	AuditActionUserCreate = "user_create"
	AuditActionUserUpdate = "user_update"
	AuditActionUserDelete = "user_delete"
)
