package core

import "strings"

// Role decides which order type a member of staff records.
type Role string

const (
	RoleCashier     Role = "cashier"
	RoleStorekeeper Role = "storekeeper"
)

// ParseRole maps a stored role string to a Role, ignoring case.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleCashier:
		return RoleCashier, true
	case RoleStorekeeper:
		return RoleStorekeeper, true
	}
	return "", false
}

// User is a member of staff. Orders reference users by id only.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
	Password string `json:"-"`
	Role     Role   `json:"role"`
}

// FullName is "Name Surname", trimmed when either part is missing.
func (u User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// UserLookup resolves the cashier or storekeeper of an order.
type UserLookup interface {
	FindByID(id int) (User, error)
}
