package user

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Role determines which views are reachable.
type Role string

// Roles
const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"

	// RoleGuest is the derived role of an empty session; it is never stored on a User.
	RoleGuest Role = "guest"
)

var (
	// AllRoles lists the roles a User may hold.
	AllRoles = []Role{RoleAdmin, RoleInstructor, RoleStudent}

	roleOrder = []Role{RoleAdmin, RoleInstructor, RoleStudent, RoleGuest}

	Roles = []RoleInfo{
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Instructor", Value: RoleInstructor},
		{Name: "Student", Value: RoleStudent},
	}
)

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether r is a role a User may hold.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleInstructor || r == RoleStudent
}

// ParseRole maps a (case-insensitive) role name onto a Role, RoleGuest when unknown.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r.IsValid() {
		return r
	}
	return RoleGuest
}

type RoleInfo struct {
	Name  string `json:"name"`
	Value Role   `json:"value"`
}

// RoleSet is an unordered set of roles.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// Sorted returns the set's roles in AllRoles order, guest last.
func (s RoleSet) Sorted() []Role {
	roles := make([]Role, 0, len(s))
	for _, r := range roleOrder {
		if s.Has(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

func (s RoleSet) String() string {
	roles := s.Sorted()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, ",")
}

type User struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	PasswordHash []byte `json:"-"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword verifies pwd against the stored hash.
// Users without a stored hash (the mock identities) accept any password.
func (u *User) CheckPassword(pwd string) error {
	if !u.HasPassword() {
		return nil
	}
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) HasPassword() bool {
	return len(u.PasswordHash) > 0
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Mock identities
const (
	AdminEmail      = "admin@lms.com"
	InstructorEmail = "instructor@lms.com"
	StudentEmail    = "student@lms.com"
)

// MockUsers returns the fixed identity table the demo starts with.
func MockUsers() []User {
	return []User{
		{Name: "Ada Admin", Email: AdminEmail, Role: RoleAdmin},
		{Name: "Alice Instructor", Email: InstructorEmail, Role: RoleInstructor},
		{Name: "Sam Student", Email: StudentEmail, Role: RoleStudent},
	}
}
