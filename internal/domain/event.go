package domain

// Task event types pushed to live dashboards.
const (
	EventTaskCreated   = "created"
	EventTaskUpdated   = "updated"
	EventTaskAssigned  = "assigned"
	EventTaskCompleted = "completed"
	EventTaskClosed    = "closed"
	EventTaskDeleted   = "deleted"
)

type TaskEvent struct {
	Type string `json:"type"`
	Task *Task  `json:"task"`
}
