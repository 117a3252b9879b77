package navigation

import (
	"testing"

	"taskboard/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	manager := &domain.User{ID: 2, Role: domain.RoleManager}
	employee := &domain.User{ID: 3, Role: domain.RoleEmployee}

	tests := []struct {
		name     string
		fragment string
		user     *domain.User
		want     Route
	}{
		{"empty fragment signed out", "", nil, Route{Page: PageLogin}},
		{"signed out forced to login", "#admin", nil, Route{Page: PageLogin, Redirect: PageLogin}},
		{"signed out dashboard", "dashboard", nil, Route{Page: PageLogin, Redirect: PageLogin}},
		{"admin visiting login", "#login", admin, Route{Page: PageAdmin, Redirect: PageAdmin}},
		{"manager visiting login", "#login", manager, Route{Page: PageDashboard, Redirect: PageDashboard}},
		{"empty fragment signed in", "", employee, Route{Page: PageDashboard, Redirect: PageDashboard}},
		{"admin page as admin", "#admin", admin, Route{Page: PageAdmin}},
		{"admin page as manager", "#admin", manager, Route{
			Page: PageDashboard, Redirect: PageDashboard, Alert: "Access denied. Admin privileges required.",
		}},
		{"manager page as employee", "manager", employee, Route{
			Page: PageDashboard, Redirect: PageDashboard, Alert: "Access denied. Manager privileges required.",
		}},
		{"manager page as manager", "manager", manager, Route{Page: PageManager}},
		{"employee page as employee", "#employee", employee, Route{Page: PageEmployee}},
		{"unknown fragment", "#reports", manager, Route{Page: PageDashboard}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.fragment, tt.user))
		})
	}
}
