package echoweb

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/dashboard"
	"github.com/trezcool/lms/core/route"
	"github.com/trezcool/lms/core/user"
)

const materialFieldsRequired = "All fields are required."

type instructorDashboard struct {
	s *Server
}

func registerInstructorDashboard(g *echo.Group, s *Server) {
	h := instructorDashboard{s: s}

	g.GET("", h.show)
	g.POST("/view", h.switchView)
	g.POST("/courses", h.createCourse)
	g.POST("/courses/:id/materials", h.addMaterial)
}

// instructorData is the data of the instructor page.
type instructorData struct {
	View          dashboard.View
	Courses       []course.Course
	Selected      course.Course
	Levels        []course.Level
	MaterialTypes []course.MaterialType
	NewCourse     course.NewCourse
	NewMaterial   course.NewMaterial
}

func (h instructorDashboard) show(ctx echo.Context) error {
	return h.render(ctx, http.StatusOK, instructorData{
		NewCourse:   course.NewCourse{Level: course.LevelBeginner},
		NewMaterial: course.NewMaterial{Type: course.MaterialVideo},
	}, nil)
}

func (h instructorDashboard) render(ctx echo.Context, code int, data instructorData, fldErrs map[string]string, notices ...string) error {
	tab := contextTab(ctx)
	usr, _ := tab.CurrentUser()

	view, courseID := tab.Instructor.Current()
	if view == dashboard.ContentManager {
		// always show the course as it is now, not as it was when selected
		crs, err := h.ownCourse(usr, courseID)
		switch {
		case err == nil:
			data.Selected = crs
		case errors.Cause(err) == course.ErrNotFound:
			tab.Instructor.Reset()
			view = dashboard.Summary
		default:
			return err
		}
	}

	courses, err := h.s.deps.CourseSvc.QueryByInstructor(usr.Name)
	if err != nil {
		return errors.Wrap(err, "querying instructor courses")
	}

	data.View = view
	data.Courses = courses
	data.Levels = course.Levels
	data.MaterialTypes = course.MaterialTypes

	p := h.s.newPage(ctx, "Instructor Portal")
	p.Notices = append(p.Notices, notices...)
	p.Errors = fldErrs
	p.Data = data
	return ctx.Render(code, instructorTemplate, p)
}

// ownCourse returns the course if usr teaches it; other instructors' courses are reported as not found.
func (h instructorDashboard) ownCourse(usr user.User, id string) (course.Course, error) {
	crs, err := h.s.deps.CourseSvc.GetByID(id)
	if err != nil {
		return course.Course{}, err
	}
	if crs.Instructor != usr.Name {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (h instructorDashboard) switchView(ctx echo.Context) error {
	tab := contextTab(ctx)
	usr, _ := tab.CurrentUser()

	action := dashboard.Action(ctx.FormValue("action"))
	courseID := ctx.FormValue("course_id")
	if action == dashboard.ActionSelect {
		if _, err := h.ownCourse(usr, courseID); err != nil {
			return err
		}
	}
	if err := tab.Instructor.Apply(action, courseID); err != nil {
		// stale or repeated submits leave the view as it is
		h.s.deps.Logger.Debug("instructor dashboard: "+err.Error(), map[string]interface{}{"action": action})
	}
	return redirect(ctx, route.InstructorPath)
}

func (h instructorDashboard) createCourse(ctx echo.Context) error {
	deps := h.s.deps
	tab := contextTab(ctx)
	usr, _ := tab.CurrentUser()

	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	data.Instructor = usr.Name

	if err := data.Validate(deps.Validate); err != nil {
		fldErrs, ok := core.FieldErrors(err, deps.Translator)
		if !ok {
			return errors.Wrap(err, "validating NewCourse")
		}
		return h.render(ctx, http.StatusBadRequest, instructorData{
			NewCourse:   data,
			NewMaterial: course.NewMaterial{Type: course.MaterialVideo},
		}, fldErrs)
	}

	crs, err := deps.CourseSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	if err = tab.Instructor.CourseCreated(); err != nil {
		deps.Logger.Debug("instructor dashboard: "+err.Error(), map[string]interface{}{"course": crs.ID})
	}

	notice := fmt.Sprintf("Course %q created as %s.", crs.Title, crs.Status)
	return h.s.flashRedirect(ctx, notice, route.InstructorPath)
}

func (h instructorDashboard) addMaterial(ctx echo.Context) error {
	deps := h.s.deps
	usr, _ := contextTab(ctx).CurrentUser()

	crs, err := h.ownCourse(usr, ctx.Param("id"))
	if err != nil {
		return err
	}

	var data course.NewMaterial
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMaterial")
	}
	if err = data.Validate(deps.Validate); err != nil {
		fldErrs, ok := core.FieldErrors(err, deps.Translator)
		if !ok {
			return errors.Wrap(err, "validating NewMaterial")
		}
		var notices []string
		_, noTitle := fldErrs["title"]
		_, noURL := fldErrs["url"]
		if noTitle || noURL {
			notices = append(notices, materialFieldsRequired)
		}
		return h.render(ctx, http.StatusBadRequest, instructorData{
			NewCourse:   course.NewCourse{Level: course.LevelBeginner},
			NewMaterial: data,
		}, fldErrs, notices...)
	}

	mat, err := deps.CourseSvc.AddMaterial(crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "adding material")
	}
	return h.s.flashRedirect(ctx, course.AddedNotice(mat, crs), route.InstructorPath)
}
