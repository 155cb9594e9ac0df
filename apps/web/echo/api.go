package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/user"
)

type LoginResponse struct {
	Token string `json:"token"`
}

type courseApi struct {
	s *Server
}

func registerAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *Server) {
	api := courseApi{s: s}

	// un-authed endpoints
	g.POST("/login", api.login)

	// authed endpoints
	cg := g.Group("/courses", jwt)
	cg.GET("", api.query, s.apiGuard(user.RoleAdmin, user.RoleInstructor))
	cg.POST("", api.create, s.apiGuard(user.RoleInstructor))
	cg.POST("/:id/materials", api.addMaterial, s.apiGuard(user.RoleInstructor))
}

// Handlers

func (api courseApi) login(ctx echo.Context) error {
	deps := api.s.deps

	var data user.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(deps.Validate); err != nil {
		return err
	}

	usr, err := auth.Authenticate(deps.UserSvc, data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == auth.ErrAuthenticationFailed {
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := api.s.GenerateToken(GetUserClaims(usr, deps.Conf))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

// query lists every course to admins and their own courses to instructors.
func (api courseApi) query(ctx echo.Context) error {
	sub, err := api.s.getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var courses []course.Course
	if sub.usr.IsAdmin() {
		var filter course.QueryFilter
		if err = ctx.Bind(&filter); err != nil {
			return errors.Wrap(err, "binding to QueryFilter")
		}
		courses, err = api.s.deps.CourseSvc.Filter(filter)
	} else {
		courses, err = api.s.deps.CourseSvc.QueryByInstructor(sub.usr.Name)
	}
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}

	return ctx.JSON(http.StatusOK, courses)
}

func (api courseApi) create(ctx echo.Context) error {
	sub, err := api.s.getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data course.NewCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	data.Instructor = sub.usr.Name
	if err = data.Validate(api.s.deps.Validate); err != nil {
		return err
	}

	crs, err := api.s.deps.CourseSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api courseApi) addMaterial(ctx echo.Context) error {
	sub, err := api.s.getContextUser(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	crs, err := api.s.deps.CourseSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	if crs.Instructor != sub.usr.Name {
		return errHttpForbidden
	}

	var data course.NewMaterial
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMaterial")
	}
	if err = data.Validate(api.s.deps.Validate); err != nil {
		return err
	}

	mat, err := api.s.deps.CourseSvc.AddMaterial(crs.ID, data)
	if err != nil {
		return errors.Wrap(err, "adding material")
	}
	return ctx.JSON(http.StatusCreated, mat)
}
