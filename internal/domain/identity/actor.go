package identity

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
)

var (
	ErrNoActor          = errors.New("no authenticated actor in request context")
	ErrAdminRequired    = errors.New("admin privilege required")
	ErrEmployeeRequired = errors.New("employee identity required")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Actor is the authenticated caller of an operation. ID is the admin id for
// admins and the employee id for employees. Services receive the Actor
// explicitly; they never read token claims themselves.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// EmployeeID returns the actor's employee id, or an error for admin actors.
// Ownership checks compare this against a resource's stored employee id.
func (a Actor) EmployeeID() (string, error) {
	if a.Role != RoleEmployee {
		return "", ErrEmployeeRequired
	}
	return a.ID, nil
}

// FromContext resolves the Actor from the verified JWT claims set by the
// jwtauth middleware. Handlers call this once per request and pass the
// result down into services.
func FromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, ErrNoActor
	}

	roleStr, ok := claims["role"].(string)
	if !ok || roleStr == "" {
		return Actor{}, ErrNoActor
	}

	id, ok := claims["sub"].(string)
	if !ok || id == "" {
		return Actor{}, ErrNoActor
	}

	role := Role(roleStr)
	if role != RoleAdmin && role != RoleEmployee {
		return Actor{}, ErrNoActor
	}

	return Actor{ID: id, Role: role}, nil
}
