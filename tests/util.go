package testutil

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/user"
	logsvc "github.com/trezcool/lms/services/logger"
	inmemdb "github.com/trezcool/lms/storage/database/inmem"
)

// NewLogger returns a RollbarLogger with reporting disabled, writing through the test's log.
func NewLogger(t *testing.T) core.Logger {
	logger := logsvc.NewRollbarLogger(zaptest.NewLogger(t), core.NewTestConfig())
	logger.Enable(false)
	return logger
}

// OpenDB returns a fresh DB holding the mock identities and the demo catalog.
func OpenDB(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.OpenSeeded("")
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

func NewServices(t *testing.T, db *inmemdb.DB) (*user.Service, *course.Service) {
	usrSvc := user.NewService(inmemdb.NewUserRepository(db))
	crsSvc := course.NewService(inmemdb.NewCourseRepository(db), NewLogger(t))
	return usrSvc, crsSvc
}

func MockUser(t *testing.T, email string) user.User {
	for _, usr := range user.MockUsers() {
		if usr.Email == email {
			return usr
		}
	}
	t.Fatalf("MockUser(%q): no such identity", email)
	return user.User{}
}

func CreateCourse(t *testing.T, svc *course.Service, title, instructor string) course.Course {
	crs, err := svc.Create(course.NewCourse{
		Title:      title,
		Duration:   "1 hour",
		Level:      course.LevelBeginner,
		Instructor: instructor,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}
