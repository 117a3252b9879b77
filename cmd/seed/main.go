package main

import (
	"context"
	"errors"
	"flag"

	"taskboard/internal/config"
	"taskboard/internal/db"
	"taskboard/internal/domain"
	"taskboard/internal/logger"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

type account struct {
	name, email, password string
	role                  domain.Role
	managerEmail          string
}

var demoAccounts = []account{
	{name: "Admin User", email: "admin@task.com", password: "admin123", role: domain.RoleAdmin},
	{name: "John Manager", email: "john@task.com", password: "pass123", role: domain.RoleManager},
	{name: "Jane Employee", email: "jane@task.com", password: "pass123", role: domain.RoleEmployee, managerEmail: "john@task.com"},
}

func main() {
	printTokens := flag.Bool("tokens", false, "print a session token for each account")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret, cfg.TokenTTL)

	store := db.OpenStore(cfg)
	defer store.Close()

	ctx := context.Background()
	for _, a := range demoAccounts {
		u, err := ensureUser(ctx, store, a)
		if err != nil {
			logger.Fatal("seed user failed", "email", a.email, "error", err)
		}
		if *printTokens {
			token, _, err := service.GenerateJWT(u)
			if err != nil {
				logger.Fatal("failed to generate token", "error", err)
			}
			logger.Info("token", "email", u.Email, "token", token)
		}
	}
}

func ensureUser(ctx context.Context, store repository.Store, a account) (*domain.User, error) {
	existing, err := store.GetUserByEmail(ctx, a.email)
	if err == nil {
		logger.Info("user already exists", "id", existing.ID, "email", a.email)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	u := &domain.User{Name: a.name, Email: a.email, Password: a.password, Role: a.role}
	if a.managerEmail != "" {
		m, err := store.GetUserByEmail(ctx, a.managerEmail)
		if err != nil {
			return nil, err
		}
		u.ManagerID = &m.ID
	}
	if err := store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	logger.Info("user created", "id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}
