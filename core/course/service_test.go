package course_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/tests"
)

func TestService_Create(t *testing.T) {
	_, svc := testutil.NewServices(t, testutil.OpenDB(t))

	before, err := svc.QueryAll()
	assert.NoError(t, err)

	crs, err := svc.Create(course.NewCourse{
		Title:      "Go for Gophers",
		Duration:   "4 hours",
		Level:      course.LevelAdvanced,
		Instructor: "Alice Instructor",
	})
	assert.NoError(t, err)
	assert.Equal(t, course.StatusDraft, crs.Status)
	assert.Empty(t, crs.Materials)

	after, err := svc.QueryAll()
	assert.NoError(t, err)
	if assert.Len(t, after, len(before)+1) {
		assert.Equal(t, crs, after[len(after)-1])
	}

	ids := make(map[string]bool, len(after))
	for _, c := range after {
		assert.False(t, ids[c.ID], "duplicate id %s", c.ID)
		ids[c.ID] = true
	}
	assert.Equal(t, "c3", crs.ID)
}

func TestService_AddMaterial(t *testing.T) {
	_, svc := testutil.NewServices(t, testutil.OpenDB(t))

	before, err := svc.GetByID("c1")
	assert.NoError(t, err)

	mat, err := svc.AddMaterial("c1", course.NewMaterial{Type: course.MaterialLink, Title: "Docs", URL: "https://react.dev"})
	assert.NoError(t, err)

	after, err := svc.GetByID("c1")
	assert.NoError(t, err)
	if assert.Len(t, after.Materials, len(before.Materials)+1) {
		assert.Equal(t, before.Materials, after.Materials[:len(before.Materials)])
		assert.Equal(t, mat, after.Materials[len(after.Materials)-1])
	}
	for _, m := range before.Materials {
		assert.NotEqual(t, m.ID, mat.ID)
	}
	assert.Equal(t, "Successfully added link to React for Beginners!", course.AddedNotice(mat, after))

	other, err := svc.GetByID("c2")
	assert.NoError(t, err)
	assert.Empty(t, other.Materials)

	_, err = svc.AddMaterial("c404", course.NewMaterial{Type: course.MaterialPDF, Title: "x", URL: "y"})
	assert.Equal(t, course.ErrNotFound, err)
}

func TestService_QueryByInstructor(t *testing.T) {
	_, svc := testutil.NewServices(t, testutil.OpenDB(t))
	testutil.CreateCourse(t, svc, "Databases", "Bob Instructor")

	alice, err := svc.QueryByInstructor("Alice Instructor")
	assert.NoError(t, err)
	assert.Len(t, alice, 2)

	bob, err := svc.QueryByInstructor("Bob Instructor")
	assert.NoError(t, err)
	if assert.Len(t, bob, 1) {
		assert.Equal(t, "Databases", bob[0].Title)
	}

	none, err := svc.QueryByInstructor("")
	assert.NoError(t, err)
	assert.Empty(t, none)

	none, err = svc.QueryByInstructor("alice instructor")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_Stats(t *testing.T) {
	_, svc := testutil.NewServices(t, testutil.OpenDB(t))
	testutil.CreateCourse(t, svc, "Databases", "Alice Instructor")

	st, err := svc.Stats()
	assert.NoError(t, err)
	assert.Equal(t, course.Stats{Total: 3, Published: 1, Draft: 2, Materials: 2}, st)
}

func TestNewCourse_Validate(t *testing.T) {
	validate, translator := core.NewValidator()

	nc := course.NewCourse{Title: "  Go  ", Instructor: "Alice Instructor"}
	assert.NoError(t, nc.Validate(validate))
	assert.Equal(t, "Go", nc.Title)
	assert.Equal(t, course.LevelBeginner, nc.Level)

	nc = course.NewCourse{Title: " ", Level: "Expert", Instructor: "Alice Instructor"}
	fields, ok := core.FieldErrors(nc.Validate(validate), translator)
	assert.True(t, ok)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "level")
}

func TestNewMaterial_Validate(t *testing.T) {
	validate, translator := core.NewValidator()

	nm := course.NewMaterial{Title: "Intro", URL: "https://x.y"}
	assert.NoError(t, nm.Validate(validate))
	assert.Equal(t, course.MaterialVideo, nm.Type)

	nm = course.NewMaterial{Type: "audio", Title: "", URL: " "}
	fields, ok := core.FieldErrors(nm.Validate(validate), translator)
	assert.True(t, ok)
	assert.Len(t, fields, 3)
}

func TestCourse_Copy(t *testing.T) {
	orig := course.Course{ID: "c1", Materials: []course.Material{{ID: 1, Title: "a"}}}
	cp := orig.Copy()
	cp.Materials[0].Title = "b"
	cp.Materials = append(cp.Materials, course.Material{ID: 2})
	assert.Equal(t, "a", orig.Materials[0].Title)
	assert.Len(t, orig.Materials, 1)
}

func TestQueryFilter_Match(t *testing.T) {
	crs := course.Course{Instructor: "Alice Instructor", Status: course.StatusDraft}

	assert.True(t, (&course.QueryFilter{}).Match(crs))
	assert.True(t, (&course.QueryFilter{Instructor: "Alice Instructor"}).Match(crs))
	assert.False(t, (&course.QueryFilter{Instructor: "Alice Instructor", Status: course.StatusPublished}).Match(crs))
	assert.False(t, (&course.QueryFilter{Instructor: "Bob"}).Match(crs))
}
