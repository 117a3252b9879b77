package domain

import (
	"math"
	"sort"
	"time"
)

type State string

const (
	StateOpen      State = "OPEN"
	StatePending   State = "PENDING"
	StateCompleted State = "COMPLETED"
	StateClosed    State = "CLOSED"
)

// States lists the lifecycle in order.
var States = []State{StateOpen, StatePending, StateCompleted, StateClosed}

func (s State) Valid() bool {
	switch s {
	case StateOpen, StatePending, StateCompleted, StateClosed:
		return true
	}
	return false
}

// Finished reports whether the task counts as done for statistics.
func (s State) Finished() bool {
	return s == StateCompleted || s == StateClosed
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// DateLayout is the format of Task.DueDate.
const DateLayout = "2006-01-02"

const UnknownAssignee = "Unknown"

type Task struct {
	ID          int64    `db:"id" json:"id"`
	Title       string   `db:"title" json:"title"`
	Description string   `db:"description" json:"description"`
	DueDate     *string  `db:"due_date" json:"dueDate"`
	Priority    Priority `db:"priority" json:"priority"`
	CreatedBy   int64    `db:"created_by" json:"createdBy"`
	State       State    `db:"state" json:"state"`
	AssignedTo  *int64   `db:"assigned_to" json:"assignedTo"`
	// AssignedToName is a snapshot of the assignee's name taken at
	// assignment time. Later renames do not touch it.
	AssignedToName *string    `db:"assigned_to_name" json:"assignedToName"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	CompletedAt    *time.Time `db:"completed_at" json:"completedAt"`
}

// Assign hands the task to assignee. A nil assignee records the
// placeholder name. An empty state defaults to PENDING.
func (t *Task) Assign(assigneeID int64, assignee *User, state State) {
	name := UnknownAssignee
	if assignee != nil {
		name = assignee.Name
	}
	if state == "" {
		state = StatePending
	}
	t.AssignedTo = &assigneeID
	t.AssignedToName = &name
	t.State = state
}

// Complete marks the task done and stamps CompletedAt, never earlier than
// CreatedAt.
func (t *Task) Complete(now time.Time, state State) {
	if state == "" {
		state = StateCompleted
	}
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.State = state
	t.CompletedAt = &now
}

// Close moves the task to its terminal state. The current state is not
// checked.
func (t *Task) Close(state State) {
	if state == "" {
		state = StateClosed
	}
	t.State = state
}

// Overdue reports whether a PENDING task is past its due date.
func (t *Task) Overdue(now time.Time) bool {
	if t.State != StatePending || t.DueDate == nil {
		return false
	}
	due, err := time.Parse(DateLayout, *t.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}

type TaskStats struct {
	Total          int `json:"total"`
	Open           int `json:"open"`
	Pending        int `json:"pending"`
	Completed      int `json:"completed"`
	Closed         int `json:"closed"`
	Finished       int `json:"finished"`
	CompletionRate int `json:"completionRate"`
}

// ComputeStats counts tasks per state. CompletionRate is the rounded
// percentage of COMPLETED or CLOSED tasks, 0 for an empty slice.
func ComputeStats(tasks []*Task) TaskStats {
	var s TaskStats
	for _, t := range tasks {
		s.Total++
		switch t.State {
		case StateOpen:
			s.Open++
		case StatePending:
			s.Pending++
		case StateCompleted:
			s.Completed++
		case StateClosed:
			s.Closed++
		}
		if t.State.Finished() {
			s.Finished++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Finished) / float64(s.Total) * 100))
	}
	return s
}

// SortNewestFirst orders tasks by CreatedAt descending, ties by id descending.
func SortNewestFirst(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].ID > tasks[j].ID
		}
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
}
