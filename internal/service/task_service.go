package service

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// EventPublisher receives every task mutation.
type EventPublisher interface {
	Publish(ev domain.TaskEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(domain.TaskEvent) {}

type TaskService struct {
	tasks  repository.TaskStore
	users  repository.UserStore
	events EventPublisher
	now    func() time.Time
}

func NewTaskService(tasks repository.TaskStore, users repository.UserStore, events EventPublisher) *TaskService {
	if events == nil {
		events = noopPublisher{}
	}
	return &TaskService{
		tasks:  tasks,
		users:  users,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    domain.Priority
	CreatedBy   int64
	State       domain.State
}

// UpdateTaskInput is a partial update: empty fields are left unchanged.
type UpdateTaskInput struct {
	Title       string
	Description string
	DueDate     string
	Priority    domain.Priority
	State       domain.State
}

// TaskHistory is an employee's assigned tasks, newest first, with stats.
type TaskHistory struct {
	Tasks []*domain.Task   `json:"tasks"`
	Stats domain.TaskStats `json:"stats"`
}

func validateFields(dueDate string, priority domain.Priority, state domain.State) error {
	if dueDate != "" {
		if _, err := time.Parse(domain.DateLayout, dueDate); err != nil {
			return domain.Invalid("dueDate must be formatted as YYYY-MM-DD")
		}
	}
	if priority != "" && !priority.Valid() {
		return domain.Invalid("priority must be LOW, MEDIUM, or HIGH")
	}
	return validateState(state)
}

func validateState(state domain.State) error {
	if state != "" && !state.Valid() {
		return domain.Invalid("state must be OPEN, PENDING, COMPLETED, or CLOSED")
	}
	return nil
}

func (s *TaskService) publish(evType string, t *domain.Task) {
	s.events.Publish(domain.TaskEvent{Type: evType, Task: t})
}

func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	if in.Title == "" || in.Description == "" || in.CreatedBy == 0 {
		return nil, domain.Invalid("Title, description, and createdBy are required")
	}
	if err := validateFields(in.DueDate, in.Priority, in.State); err != nil {
		return nil, err
	}

	t := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		CreatedBy:   in.CreatedBy,
		State:       in.State,
		CreatedAt:   s.now(),
	}
	if in.DueDate != "" {
		due := in.DueDate
		t.DueDate = &due
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.State == "" {
		t.State = domain.StateOpen
	}

	if err := s.tasks.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	TaskTransitions.WithLabelValues("create", string(t.State)).Inc()
	s.publish(domain.EventTaskCreated, t)
	return t, nil
}

func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks.ListTasks(ctx)
}

func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.GetTask(ctx, id)
}

func (s *TaskService) ListAssignedTo(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.ListTasksAssignedTo(ctx, userID)
}

// ListCreatedBy backs the manager's history view.
func (s *TaskService) ListCreatedBy(ctx context.Context, userID int64) ([]*domain.Task, error) {
	return s.tasks.ListTasksCreatedBy(ctx, userID)
}

func (s *TaskService) History(ctx context.Context, userID int64) (*TaskHistory, error) {
	tasks, err := s.tasks.ListTasksAssignedTo(ctx, userID)
	if err != nil {
		return nil, err
	}
	domain.SortNewestFirst(tasks)
	return &TaskHistory{Tasks: tasks, Stats: domain.ComputeStats(tasks)}, nil
}

func (s *TaskService) Update(ctx context.Context, id int64, in UpdateTaskInput) (*domain.Task, error) {
	if err := validateFields(in.DueDate, in.Priority, in.State); err != nil {
		return nil, err
	}

	t, err := s.tasks.UpdateTask(ctx, id, func(t *domain.Task) error {
		if in.Title != "" {
			t.Title = in.Title
		}
		if in.Description != "" {
			t.Description = in.Description
		}
		if in.DueDate != "" {
			due := in.DueDate
			t.DueDate = &due
		}
		if in.Priority != "" {
			t.Priority = in.Priority
		}
		if in.State != "" {
			t.State = in.State
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(domain.EventTaskUpdated, t)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	t, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tasks.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.publish(domain.EventTaskDeleted, t)
	return nil
}

// Assign records the assignee and a snapshot of their name. An unknown
// assignee id is stored with the placeholder name.
func (s *TaskService) Assign(ctx context.Context, id, assignedTo int64, state domain.State) (*domain.Task, error) {
	if assignedTo == 0 {
		return nil, domain.Invalid("assignedTo is required")
	}
	if err := validateState(state); err != nil {
		return nil, err
	}

	assignee, err := s.users.GetUser(ctx, assignedTo)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	t, err := s.tasks.UpdateTask(ctx, id, func(t *domain.Task) error {
		t.Assign(assignedTo, assignee, state)
		return nil
	})
	if err != nil {
		return nil, err
	}
	TaskTransitions.WithLabelValues("assign", string(t.State)).Inc()
	s.publish(domain.EventTaskAssigned, t)
	return t, nil
}

// Complete stamps completedAt. Employees may only complete tasks assigned
// to them; a nil actor skips the check.
func (s *TaskService) Complete(ctx context.Context, actor *domain.User, id int64, state domain.State) (*domain.Task, error) {
	if err := validateState(state); err != nil {
		return nil, err
	}

	t, err := s.tasks.UpdateTask(ctx, id, func(t *domain.Task) error {
		if actor != nil && actor.Role == domain.RoleEmployee {
			if t.AssignedTo == nil || *t.AssignedTo != actor.ID {
				return domain.ErrForbidden
			}
		}
		t.Complete(s.now(), state)
		return nil
	})
	if err != nil {
		return nil, err
	}
	TaskTransitions.WithLabelValues("complete", string(t.State)).Inc()
	s.publish(domain.EventTaskCompleted, t)
	return t, nil
}

// Close does not require the task to be COMPLETED.
func (s *TaskService) Close(ctx context.Context, id int64, state domain.State) (*domain.Task, error) {
	if err := validateState(state); err != nil {
		return nil, err
	}

	t, err := s.tasks.UpdateTask(ctx, id, func(t *domain.Task) error {
		t.Close(state)
		return nil
	})
	if err != nil {
		return nil, err
	}
	TaskTransitions.WithLabelValues("close", string(t.State)).Inc()
	s.publish(domain.EventTaskClosed, t)
	return t, nil
}
