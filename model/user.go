package model

import "time"

// User is the profile stored under the auth_user key after login.
type User struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Roles   []string `json:"roles"`
	Created string   `json:"created"`
	Status  bool     `json:"status"`
}

const RoleAdministrator = "administrator"

// HasRole reports whether role is among the user's roles.
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Account is a user record held by the stand-in server.
type Account struct {
	ID           string    `json:"id"`
	UID          int       `json:"drupal_internal__uid"`
	Name         string    `json:"name"`
	Email        string    `json:"mail"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	Status       bool      `json:"status"`
	CreatedAt    time.Time `json:"created"`
}
