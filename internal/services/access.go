package services

import (
	"slices"

	"github.com/hireboard/hireboard/internal/models"
)

// Actor is the authenticated identity a request acts on behalf of.
type Actor struct {
	ID   uint64
	Role models.Role
	Name string
}

// ActorFromUser builds the request identity from a loaded user.
func ActorFromUser(user *models.User) Actor {
	return Actor{ID: user.ID, Role: user.Role, Name: user.Name}
}

// RequireRole is the single authorization check used by every operation.
func RequireRole(actor Actor, allowed ...models.Role) error {
	if actor.ID == 0 || !slices.Contains(allowed, actor.Role) {
		return ErrPermissionDenied
	}
	return nil
}

// LandingPath is where a user of the given role lands after login or registration.
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleEmployer:
		return "/employer/dashboard"
	case models.RoleAdmin:
		return "/admin"
	default:
		return "/seeker/dashboard"
	}
}
