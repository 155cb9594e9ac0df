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

const errUnknownInstructor = "unknown instructor"

type adminDashboard struct {
	s *Server
}

func registerAdminDashboard(g *echo.Group, s *Server) {
	h := adminDashboard{s: s}

	g.GET("", h.show)
	g.POST("/view", h.switchView)
	g.POST("/courses", h.createCourse)
}

// adminData is the data of the admin page.
type adminData struct {
	View        dashboard.View
	Stats       course.Stats
	Courses     []course.Course
	Instructors []user.User
	Students    []user.User
	Levels      []course.Level
	NewCourse   course.NewCourse
}

func (h adminDashboard) show(ctx echo.Context) error {
	return h.render(ctx, http.StatusOK, course.NewCourse{Level: course.LevelBeginner}, nil)
}

func (h adminDashboard) render(ctx echo.Context, code int, nc course.NewCourse, fldErrs map[string]string) error {
	deps := h.s.deps
	view, _ := contextTab(ctx).Admin.Current()

	stats, err := deps.CourseSvc.Stats()
	if err != nil {
		return errors.Wrap(err, "computing course stats")
	}
	courses, err := deps.CourseSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	instructors, err := deps.UserSvc.QueryByRole(user.RoleInstructor)
	if err != nil {
		return errors.Wrap(err, "querying instructors")
	}
	students, err := deps.UserSvc.QueryByRole(user.RoleStudent)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	p := h.s.newPage(ctx, "Admin Console")
	p.Errors = fldErrs
	p.Data = adminData{
		View:        view,
		Stats:       stats,
		Courses:     courses,
		Instructors: instructors,
		Students:    students,
		Levels:      course.Levels,
		NewCourse:   nc,
	}
	return ctx.Render(code, adminTemplate, p)
}

func (h adminDashboard) switchView(ctx echo.Context) error {
	action := dashboard.Action(ctx.FormValue("action"))
	if err := contextTab(ctx).Admin.Apply(action, ""); err != nil {
		// stale or repeated submits leave the view as it is
		h.s.deps.Logger.Debug("admin dashboard: "+err.Error(), map[string]interface{}{"action": action})
	}
	return redirect(ctx, route.AdminPath)
}

func (h adminDashboard) createCourse(ctx echo.Context) error {
	deps := h.s.deps

	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}

	err := data.Validate(deps.Validate)
	if err == nil {
		var known bool
		if known, err = deps.UserSvc.IsInstructorName(data.Instructor); err != nil {
			return errors.Wrap(err, "checking instructor")
		}
		if !known {
			err = core.NewValidationError(nil, core.FieldError{Field: "instructor", Error: errUnknownInstructor})
		}
	}
	if err != nil {
		fldErrs, ok := core.FieldErrors(err, deps.Translator)
		if !ok {
			return errors.Wrap(err, "validating NewCourse")
		}
		return h.render(ctx, http.StatusBadRequest, data, fldErrs)
	}

	crs, err := deps.CourseSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	if err = contextTab(ctx).Admin.CourseCreated(); err != nil {
		deps.Logger.Debug("admin dashboard: "+err.Error(), map[string]interface{}{"course": crs.ID})
	}

	notice := fmt.Sprintf("Course %q created as %s for %s.", crs.Title, crs.Status, crs.Instructor)
	return h.s.flashRedirect(ctx, notice, route.AdminPath)
}
