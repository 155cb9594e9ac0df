package inmemdb

import (
	"strconv"

	"github.com/trezcool/lms/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

// nextCourseID returns "c<n>" for the next free n. Caller holds the write lock.
func (repo *courseRepository) nextCourseID() string {
	for {
		repo.db.courseSeq++
		id := "c" + strconv.Itoa(repo.db.courseSeq)
		if _, taken := repo.db.index[id]; !taken {
			return id
		}
	}
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs = crs.Copy()
	crs.ID = repo.nextCourseID()
	repo.db.rows = append(repo.db.rows, &crs)
	repo.db.index[crs.ID] = &crs
	return crs.Copy(), nil
}

func (repo *courseRepository) AppendMaterial(courseID string, mat course.Material) (course.Material, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	crs, ok := repo.db.index[courseID]
	if !ok {
		return course.Material{}, course.ErrNotFound
	}
	repo.db.matSeq++
	mat.ID = repo.db.matSeq
	crs.Materials = append(crs.Materials, mat)
	return mat, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.rows))
	for _, crs := range repo.db.rows {
		courses = append(courses, crs.Copy())
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if crs, ok := repo.db.index[id]; ok {
		return crs.Copy(), nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) FilterCourses(filter course.QueryFilter) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.rows))
	for _, crs := range repo.db.rows {
		if filter.Match(*crs) {
			courses = append(courses, crs.Copy())
		}
	}
	return courses, nil
}
