package auth

import (
	"github.com/trezcool/lms/core/user"
)

const AccessDeniedNotice = "Access Denied. You do not have the required permissions."

// Subject is anything that knows who is currently logged in: a Session, or a verified token.
type Subject interface {
	CurrentUser() (user.User, bool)
}

// RoleOf derives the subject's role, user.RoleGuest when unauthenticated.
func RoleOf(sub Subject) user.Role {
	if sub == nil {
		return user.RoleGuest
	}
	if usr, ok := sub.CurrentUser(); ok {
		return usr.Role
	}
	return user.RoleGuest
}

type Outcome int

const (
	Allow Outcome = iota
	RedirectToLogin
	RedirectToHome
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "Allow"
	case RedirectToLogin:
		return "RedirectToLogin"
	case RedirectToHome:
		return "RedirectToHome"
	default:
		return "Unknown"
	}
}

// Decision is the guard's verdict. Notice is set when the user must be told why.
type Decision struct {
	Outcome Outcome
	Notice  string
}

func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Authorize decides whether sub may see a view requiring one of the required roles.
// It is pure: the same inputs always yield the same Decision.
func Authorize(required user.RoleSet, sub Subject) Decision {
	usr, ok := user.User{}, false
	if sub != nil {
		usr, ok = sub.CurrentUser()
	}
	if !ok {
		return Decision{Outcome: RedirectToLogin}
	}
	if !required.Has(usr.Role) {
		return Decision{Outcome: RedirectToHome, Notice: AccessDeniedNotice}
	}
	return Decision{Outcome: Allow}
}
