package user

import (
	"errors"
)

var (
	// errors
	ErrNotFound = errors.New("user not found")
)

type (
	// Repository is the read-only identity table.
	Repository interface {
		// GetUserByEmail is an exact match lookup.
		GetUserByEmail(email string) (User, error)
		QueryAllUsers() ([]User, error)
	}

	// Service is the identity store.
	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Lookup returns the User registered under email, ErrNotFound otherwise.
func (svc *Service) Lookup(email string) (User, error) {
	if email == "" {
		return User{}, ErrNotFound
	}
	return svc.repo.GetUserByEmail(email)
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

// QueryByRole returns the users holding role, in table order.
func (svc *Service) QueryByRole(role Role) ([]User, error) {
	all, err := svc.repo.QueryAllUsers()
	if err != nil {
		return nil, err
	}
	users := make([]User, 0, len(all))
	for _, usr := range all {
		if usr.Role == role {
			users = append(users, usr)
		}
	}
	return users, nil
}

// IsInstructorName reports whether name belongs to a known instructor.
func (svc *Service) IsInstructorName(name string) (bool, error) {
	instructors, err := svc.QueryByRole(RoleInstructor)
	if err != nil {
		return false, err
	}
	for _, usr := range instructors {
		if usr.Name == name {
			return true, nil
		}
	}
	return false, nil
}
