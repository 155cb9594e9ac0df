package auth

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/lms/core/user"
)

var (
	// errors
	ErrAuthenticationFailed = errors.New("authentication failed")
)

const LoginFailedNotice = "Login failed. Please use one of the mock emails " +
	"(" + user.AdminEmail + ", " + user.InstructorEmail + ", " + user.StudentEmail + ")."

// IdentityStore looks identities up by exact email.
type IdentityStore interface {
	Lookup(email string) (user.User, error)
}

// Authenticate checks email and password against the store without touching any session.
// Identities without a stored password hash accept any password: the mock table is a
// placeholder for a real credential check.
func Authenticate(store IdentityStore, email, password string) (user.User, error) {
	usr, err := store.Lookup(email)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, ErrAuthenticationFailed
		}
		return user.User{}, errors.Wrap(err, "looking up identity")
	}
	if err = usr.CheckPassword(password); err != nil {
		return user.User{}, ErrAuthenticationFailed
	}
	return usr, nil
}

// Session is the authentication state of a single client.
// It is only mutated by Login and Logout; last write wins.
type Session struct {
	mu          sync.RWMutex
	store       IdentityStore
	currentUser *user.User
}

func NewSession(store IdentityStore) *Session {
	return &Session{store: store}
}

// Login authenticates email/password and makes the identity the current user.
// On failure the session is left unauthenticated, even if someone was logged in before.
func (s *Session) Login(email, password string) (user.User, error) {
	usr, err := Authenticate(s.store, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.currentUser = nil
		return user.User{}, err
	}
	s.currentUser = &usr
	return usr, nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.currentUser = nil
	s.mu.Unlock()
}

func (s *Session) CurrentUser() (user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return user.User{}, false
	}
	return *s.currentUser, true
}

// Role is the current user's role, user.RoleGuest when nobody is logged in.
func (s *Session) Role() user.Role {
	return RoleOf(s)
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}
