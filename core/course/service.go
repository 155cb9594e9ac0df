package course

import (
	"errors"
	"fmt"

	"github.com/trezcool/lms/core"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	Repository interface {
		// CreateCourse assigns the next sequential ID and appends the course.
		CreateCourse(course Course) (Course, error)
		// AppendMaterial assigns the next material ID and appends it to the course's materials.
		AppendMaterial(courseID string, material Material) (Material, error)
		// QueryAllCourses returns courses in creation order.
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		// FilterCourses applies QueryFilter.Match, keeping creation order.
		FilterCourses(filter QueryFilter) ([]Course, error)
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create appends exactly one Draft course. nc must have been validated.
func (svc *Service) Create(nc NewCourse) (Course, error) {
	crs, err := svc.repo.CreateCourse(Course{
		Title:       nc.Title,
		Description: nc.Description,
		Instructor:  nc.Instructor,
		Duration:    nc.Duration,
		Level:       nc.Level,
		Status:      StatusDraft,
		Materials:   []Material{},
	})
	if err != nil {
		return Course{}, err
	}
	svc.logger.Info("course added", map[string]interface{}{"course": crs.ID, "instructor": crs.Instructor})
	return crs, nil
}

// AddMaterial appends exactly one Material to the course. nm must have been validated.
func (svc *Service) AddMaterial(courseID string, nm NewMaterial) (Material, error) {
	mat, err := svc.repo.AppendMaterial(courseID, Material{
		Type:  nm.Type,
		Title: nm.Title,
		URL:   nm.URL,
	})
	if err != nil {
		return Material{}, err
	}
	svc.logger.Info("material added", map[string]interface{}{"course": courseID, "material": mat.ID, "type": mat.Type})
	return mat, nil
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

// QueryByInstructor returns the courses whose Instructor equals name.
func (svc *Service) QueryByInstructor(name string) ([]Course, error) {
	if name == "" {
		return []Course{}, nil
	}
	return svc.repo.FilterCourses(QueryFilter{Instructor: name})
}

func (svc *Service) Filter(filter QueryFilter) ([]Course, error) {
	return svc.repo.FilterCourses(filter)
}

type Stats struct {
	Total     int
	Published int
	Draft     int
	Materials int
}

// Stats summarises the catalog for the admin dashboard.
func (svc *Service) Stats() (Stats, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return Stats{}, err
	}
	var st Stats
	for _, crs := range courses {
		st.Total++
		st.Materials += len(crs.Materials)
		switch crs.Status {
		case StatusPublished:
			st.Published++
		case StatusDraft:
			st.Draft++
		}
	}
	return st, nil
}

// AddedNotice is the confirmation shown after AddMaterial.
func AddedNotice(mat Material, crs Course) string {
	return fmt.Sprintf("Successfully added %s to %s!", mat.Type, crs.Title)
}
