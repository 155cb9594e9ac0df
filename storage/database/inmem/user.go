package inmemdb

import (
	"github.com/trezcool/lms/core/user"
)

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	for _, usr := range repo.db.rows {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	users := make([]user.User, len(repo.db.rows))
	copy(users, repo.db.rows)
	return users, nil
}
