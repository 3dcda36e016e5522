package core

import (
	"fmt"
	"strings"
)

// UserDirectory keeps staff accounts in memory.
type UserDirectory struct {
	reg *registry[User]
}

var _ UserLookup = (*UserDirectory)(nil)

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{reg: newRegistry("user", func(u User) int { return u.ID })}
}

func (d *UserDirectory) FindByID(id int) (User, error) {
	return d.reg.find(id)
}

// FindByUsername returns the user with the given username (case-sensitive).
func (d *UserDirectory) FindByUsername(username string) (User, error) {
	for _, u := range d.reg.list() {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

// Add creates a staff account under the next free id.
func (d *UserDirectory) Add(u User) (User, error) {
	if strings.TrimSpace(u.Username) == "" {
		return User{}, fmt.Errorf("username: %w", ErrMissingField)
	}
	if _, ok := ParseRole(string(u.Role)); !ok {
		return User{}, fmt.Errorf("unknown role %q", u.Role)
	}
	if _, err := d.FindByUsername(u.Username); err == nil {
		return User{}, fmt.Errorf("username %q already taken", u.Username)
	}
	return d.reg.add(func(id int) User {
		u.ID = id
		return u
	}), nil
}

// Insert places an already-numbered user. Used on reload.
func (d *UserDirectory) Insert(u User) error {
	return d.reg.insert(u)
}

// Delete removes the account; orders keep the id.
func (d *UserDirectory) Delete(id int) error {
	return d.reg.delete(id)
}

// ReserveID stops id from being issued again; orders may still reference it.
func (d *UserDirectory) ReserveID(id int) {
	d.reg.reserve(id)
}

func (d *UserDirectory) List() []User {
	return d.reg.list()
}
