package domain

import "strings"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Title returns the role name with an upper-case first letter ("Admin").
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// User is a stored account. Password is kept in plaintext and never
// serialized to API clients.
type User struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	Password  string `db:"password" json:"-"`
	Role      Role   `db:"role" json:"role"`
	ManagerID *int64 `db:"manager_id" json:"managerId"`
}

func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// NextID returns max(ids)+1, or 1 for an empty collection. IDs freed by
// deletion below the maximum are never handed out again.
func NextID(ids []int64) int64 {
	var highest int64
	for _, id := range ids {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}
