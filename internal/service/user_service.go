package service

import (
	"context"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type UserService struct {
	users repository.UserStore
}

func NewUserService(users repository.UserStore) *UserService {
	return &UserService{users: users}
}

type CreateUserInput struct {
	Name      string
	Email     string
	Password  string
	Role      domain.Role
	ManagerID *int64
}

// UpdateUserInput leaves empty strings untouched. ManagerID is applied
// only when ManagerIDSet is true, so an explicit null clears it.
type UpdateUserInput struct {
	Name         string
	Email        string
	Password     string
	Role         domain.Role
	ManagerID    *int64
	ManagerIDSet bool
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetUser(ctx, id)
}

func (s *UserService) ListManagers(ctx context.Context) ([]*domain.User, error) {
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
	return managers, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, domain.Invalid("Name, email, password, and role are required")
	}
	if !in.Role.Valid() {
		return nil, domain.Invalid("Role must be admin, manager, or employee")
	}

	u := &domain.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Role:      in.Role,
		ManagerID: in.ManagerID,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error) {
	if in.Role != "" && !in.Role.Valid() {
		return nil, domain.Invalid("Role must be admin, manager, or employee")
	}

	return s.users.UpdateUser(ctx, id, func(u *domain.User) error {
		if in.Name != "" {
			u.Name = in.Name
		}
		if in.Email != "" {
			u.Email = in.Email
		}
		if in.Password != "" {
			u.Password = in.Password
		}
		if in.Role != "" {
			u.Role = in.Role
		}
		if in.ManagerIDSet {
			u.ManagerID = in.ManagerID
		}
		return nil
	})
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.DeleteUser(ctx, id)
}
