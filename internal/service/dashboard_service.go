package service

import (
	"context"
	"sort"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// recentlyCompletedLimit caps the "Recently Completed" list on the
// employee dashboard.
const recentlyCompletedLimit = 3

type AdminDashboard struct {
	Users    []*domain.User `json:"users"`
	Managers []*domain.User `json:"managers"`
}

type ManagerDashboard struct {
	TasksByState map[domain.State][]*domain.Task `json:"tasksByState"`
	History      []*domain.Task                  `json:"history"`
}

// TaskCard is a task as shown on the employee's active list.
type TaskCard struct {
	*domain.Task
	Overdue bool `json:"overdue"`
}

type EmployeeDashboard struct {
	Active            []TaskCard       `json:"active"`
	RecentlyCompleted []*domain.Task   `json:"recentlyCompleted"`
	History           []*domain.Task   `json:"history"`
	Stats             domain.TaskStats `json:"stats"`
}

// Dashboard carries exactly one role-specific section.
type Dashboard struct {
	Role     domain.Role        `json:"role"`
	Admin    *AdminDashboard    `json:"admin,omitempty"`
	Manager  *ManagerDashboard  `json:"manager,omitempty"`
	Employee *EmployeeDashboard `json:"employee,omitempty"`
}

type DashboardService struct {
	users repository.UserStore
	tasks repository.TaskStore
	now   func() time.Time
}

func NewDashboardService(users repository.UserStore, tasks repository.TaskStore) *DashboardService {
	return &DashboardService{
		users: users,
		tasks: tasks,
		now:   time.Now,
	}
}

func (s *DashboardService) For(ctx context.Context, u *domain.User) (*Dashboard, error) {
	d := &Dashboard{Role: u.Role}
	var err error
	switch u.Role {
	case domain.RoleAdmin:
		d.Admin, err = s.admin(ctx)
	case domain.RoleManager:
		d.Manager, err = s.manager(ctx, u.ID)
	case domain.RoleEmployee:
		d.Employee, err = s.employee(ctx, u.ID)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DashboardService) admin(ctx context.Context) (*AdminDashboard, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	managers := []*domain.User{}
	for _, u := range users {
		if u.Role == domain.RoleManager {
			managers = append(managers, u)
		}
	}
	return &AdminDashboard{Users: users, Managers: managers}, nil
}

func (s *DashboardService) manager(ctx context.Context, managerID int64) (*ManagerDashboard, error) {
	tasks, err := s.tasks.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	byState := make(map[domain.State][]*domain.Task, len(domain.States))
	for _, st := range domain.States {
		byState[st] = []*domain.Task{}
	}
	for _, t := range tasks {
		if _, ok := byState[t.State]; ok {
			byState[t.State] = append(byState[t.State], t)
		}
	}

	history, err := s.tasks.ListTasksCreatedBy(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return &ManagerDashboard{TasksByState: byState, History: history}, nil
}

func (s *DashboardService) employee(ctx context.Context, userID int64) (*EmployeeDashboard, error) {
	tasks, err := s.tasks.ListTasksAssignedTo(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	d := &EmployeeDashboard{
		Active:            []TaskCard{},
		RecentlyCompleted: []*domain.Task{},
	}
	for _, t := range tasks {
		switch {
		case t.State == domain.StatePending:
			d.Active = append(d.Active, TaskCard{Task: t, Overdue: t.Overdue(now)})
		case t.State.Finished():
			d.RecentlyCompleted = append(d.RecentlyCompleted, t)
		}
	}
	sort.SliceStable(d.RecentlyCompleted, func(i, j int) bool {
		return completedAt(d.RecentlyCompleted[i]).After(completedAt(d.RecentlyCompleted[j]))
	})
	if len(d.RecentlyCompleted) > recentlyCompletedLimit {
		d.RecentlyCompleted = d.RecentlyCompleted[:recentlyCompletedLimit]
	}

	history := append(make([]*domain.Task, 0, len(tasks)), tasks...)
	domain.SortNewestFirst(history)
	d.History = history
	d.Stats = domain.ComputeStats(history)
	return d, nil
}

func completedAt(t *domain.Task) time.Time {
	if t.CompletedAt == nil {
		return time.Time{}
	}
	return *t.CompletedAt
}
