package repository

import (
	"context"

	"taskboard/internal/domain"
)

// UserStore persists users. Lookups of a missing id return
// domain.ErrUserNotFound; email collisions return domain.ErrEmailExists.
type UserStore interface {
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	// CreateUser assigns u.ID as max(existing ids)+1.
	CreateUser(ctx context.Context, u *domain.User) error
	// UpdateUser loads the user, applies fn and stores the result atomically.
	UpdateUser(ctx context.Context, id int64, fn func(*domain.User) error) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// TaskStore persists tasks. Lookups of a missing id return
// domain.ErrTaskNotFound.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasksAssignedTo(ctx context.Context, userID int64) ([]*domain.Task, error)
	ListTasksCreatedBy(ctx context.Context, userID int64) ([]*domain.Task, error)
	// CreateTask assigns t.ID as max(existing ids)+1.
	CreateTask(ctx context.Context, t *domain.Task) error
	UpdateTask(ctx context.Context, id int64, fn func(*domain.Task) error) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type Store interface {
	UserStore
	TaskStore
	Ping(ctx context.Context) error
	Close()
}
