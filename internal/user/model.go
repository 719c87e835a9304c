package user

import (
	"time"

	"glamour-be/internal/auth"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is a tagged result for auth operations: exactly one of
// AuthSuccess or AuthFailure, so call sites handle both branches.
type AuthResult interface {
	isAuthResult()
}

type AuthSuccess struct {
	User  User
	Token string
}

type AuthFailure struct {
	Err error
}

func (AuthSuccess) isAuthResult() {}
func (AuthFailure) isAuthResult() {}
