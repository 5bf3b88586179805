// Package auth defines the authentication capability and a stub implementation.
package auth

import (
	"context"
)

// User is the signed-in person as shown by the client.
type User struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	IsLoggedIn bool   `json:"is_logged_in"`
}

// Identity is either anonymous or authenticated as a User.
type Identity struct {
	user *User
}

func Anonymous() Identity {
	return Identity{}
}

func Authenticated(u User) Identity {
	u.IsLoggedIn = true
	return Identity{user: &u}
}

func (i Identity) IsAuthenticated() bool {
	return i.user != nil
}

// User returns the authenticated user, or the logged-out zero user.
func (i Identity) User() User {
	if i.user == nil {
		return User{}
	}
	return *i.user
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// Challenge is a pending registration awaiting a one-time code.
type Challenge struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// Authenticator is implemented by credential services. Consumers only see Identity.
type Authenticator interface {
	Login(ctx context.Context, creds Credentials) (Identity, error)
	Register(ctx context.Context, reg Registration) (Challenge, error)
	Verify(ctx context.Context, ch Challenge, code string) (Identity, error)
	ResetPassword(ctx context.Context, email string) error
}
