package inmemdb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/user"
)

type (
	DB struct {
		user   *userTable
		course *courseTable
	}

	// userTable is read-only once opened.
	userTable struct {
		rows []user.User
	}

	courseTable struct {
		sync.RWMutex
		rows      []*course.Course // creation order
		index     map[string]*course.Course
		courseSeq int
		matSeq    int64
	}
)

// Open returns an empty DB.
func Open() (*DB, error) {
	return OpenWith(nil, nil)
}

// OpenSeeded returns a DB holding the mock identities and the demo catalog.
// A non-empty password is hashed onto every identity; otherwise they accept any password.
func OpenSeeded(password string) (*DB, error) {
	users := user.MockUsers()
	if password != "" {
		for i := range users {
			if err := users[i].SetPassword(password); err != nil {
				return nil, errors.Wrapf(err, "setting password of %s", users[i].Email)
			}
		}
	}
	return OpenWith(users, SeedCourses())
}

// OpenWith returns a DB holding users and courses. Course and material IDs are kept as given;
// the sequences continue after the highest seeded values.
func OpenWith(users []user.User, courses []course.Course) (*DB, error) {
	db := &DB{
		user:   &userTable{rows: append([]user.User(nil), users...)},
		course: &courseTable{index: make(map[string]*course.Course)},
	}
	for _, crs := range courses {
		crs := crs.Copy()
		db.course.rows = append(db.course.rows, &crs)
		db.course.index[crs.ID] = &crs
		for _, mat := range crs.Materials {
			if mat.ID > db.course.matSeq {
				db.course.matSeq = mat.ID
			}
		}
	}
	db.course.courseSeq = len(db.course.rows)
	return db, nil
}

// SeedCourses is the demo catalog.
func SeedCourses() []course.Course {
	return []course.Course{
		{
			ID: "c1", Title: "React for Beginners", Instructor: "Alice Instructor",
			Description: "Build modern single-page applications using React.",
			Duration:    "10 hours", Level: course.LevelIntermediate, Status: course.StatusPublished,
			Materials: []course.Material{
				{ID: 1, Type: course.MaterialVideo, Title: "Introduction to React Hooks", URL: "https://youtube.com/hook_intro"},
				{ID: 2, Type: course.MaterialPDF, Title: "Styling with Tailwind Guide", URL: "/files/tailwind_guide.pdf"},
			},
		},
		{
			ID: "c2", Title: "JavaScript Fundamentals", Instructor: "Alice Instructor",
			Description: "Make your web pages interactive with core JavaScript concepts.",
			Duration:    "8 hours", Level: course.LevelBeginner, Status: course.StatusDraft,
			Materials: []course.Material{},
		},
	}
}
