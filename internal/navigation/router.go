// Package navigation decides which page a client shows for a URL fragment
// and session.
package navigation

import (
	"strings"

	"taskboard/internal/domain"
)

const (
	PageLogin     = "login"
	PageDashboard = "dashboard"
	PageAdmin     = "admin"
	PageManager   = "manager"
	PageEmployee  = "employee"
)

// roleGated maps pages to the single role allowed to open them.
var roleGated = map[string]domain.Role{
	PageAdmin:    domain.RoleAdmin,
	PageManager:  domain.RoleManager,
	PageEmployee: domain.RoleEmployee,
}

// Route is the outcome of resolving a fragment. When Redirect is set the
// client replaces its fragment with it; Alert, when set, is shown first.
type Route struct {
	Page     string `json:"page"`
	Redirect string `json:"redirect,omitempty"`
	Alert    string `json:"alert,omitempty"`
}

// HomePage is where a signed-in user lands after login.
func HomePage(u *domain.User) string {
	if u.Role == domain.RoleAdmin {
		return PageAdmin
	}
	return PageDashboard
}

// Resolve maps a fragment ("#admin", "manager", "") and the current user
// (nil when signed out) to a page.
func Resolve(fragment string, u *domain.User) Route {
	page := strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	if page == "" {
		page = PageLogin
	}

	if u == nil {
		if page != PageLogin {
			return Route{Page: PageLogin, Redirect: PageLogin}
		}
		return Route{Page: PageLogin}
	}

	if page == PageLogin {
		home := HomePage(u)
		return Route{Page: home, Redirect: home}
	}

	if role, ok := roleGated[page]; ok {
		if u.Role != role {
			return Route{
				Page:     PageDashboard,
				Redirect: PageDashboard,
				Alert:    "Access denied. " + role.Title() + " privileges required.",
			}
		}
		return Route{Page: page}
	}

	return Route{Page: PageDashboard}
}
