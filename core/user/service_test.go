package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type tableRepo struct {
	rows []User
}

func (repo tableRepo) GetUserByEmail(email string) (User, error) {
	for _, usr := range repo.rows {
		if usr.Email == email {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

func (repo tableRepo) QueryAllUsers() ([]User, error) {
	return repo.rows, nil
}

func TestService_Lookup(t *testing.T) {
	svc := NewService(tableRepo{rows: MockUsers()})

	tests := []struct {
		name     string
		email    string
		wantRole Role
		wantErr  error
	}{
		{name: "admin", email: AdminEmail, wantRole: RoleAdmin},
		{name: "instructor", email: InstructorEmail, wantRole: RoleInstructor},
		{name: "student", email: StudentEmail, wantRole: RoleStudent},
		{name: "empty", email: "", wantErr: ErrNotFound},
		{name: "unknown", email: "unknown@x.com", wantErr: ErrNotFound},
		{name: "no case folding", email: "ADMIN@lms.com", wantErr: ErrNotFound},
		{name: "no trimming", email: " admin@lms.com", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Lookup(tt.email)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantRole, usr.Role)
			assert.Equal(t, tt.email, usr.Email)
		})
	}
}

func TestService_QueryByRole(t *testing.T) {
	svc := NewService(tableRepo{rows: MockUsers()})

	instructors, err := svc.QueryByRole(RoleInstructor)
	assert.NoError(t, err)
	if assert.Len(t, instructors, 1) {
		assert.Equal(t, InstructorEmail, instructors[0].Email)
	}

	guests, err := svc.QueryByRole(RoleGuest)
	assert.NoError(t, err)
	assert.Empty(t, guests)

	ok, err := svc.IsInstructorName("Alice Instructor")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsInstructorName("Ada Admin")
	assert.NoError(t, err)
	assert.False(t, ok)
}
