package echoweb

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/browser"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/route"
	"github.com/trezcool/lms/core/user"
)

type pagesHandler struct {
	s *Server
}

func registerPages(g *echo.Group, s *Server) {
	h := pagesHandler{s: s}
	tab := s.tabMiddleware

	g.GET(route.HomePath, h.home, tab)
	g.GET(route.AuthPath, h.authPage, tab)
	g.POST(route.AuthPath+"/form", h.switchAuthForm, tab)
	g.POST(route.AuthPath+"/login", h.login, tab)
	g.POST(route.AuthPath+"/register", h.register, tab)
	g.POST("/logout", h.logout, tab)
}

// authForms is the data of the auth page.
type authForms struct {
	Form     browser.AuthForm
	Login    user.LoginRequest
	Register user.Registration
}

func (h pagesHandler) home(ctx echo.Context) error {
	courses, err := h.s.deps.CourseSvc.Filter(course.QueryFilter{Status: course.StatusPublished})
	if err != nil {
		return errors.Wrap(err, "querying published courses")
	}
	p := h.s.newPage(ctx, "Home")
	p.Data = courses
	return ctx.Render(http.StatusOK, homeTemplate, p)
}

func (h pagesHandler) authPage(ctx echo.Context) error {
	return h.renderAuth(ctx, http.StatusOK, authForms{Form: contextTab(ctx).AuthForm()}, nil)
}

func (h pagesHandler) renderAuth(ctx echo.Context, code int, forms authForms, fldErrs map[string]string, notices ...string) error {
	p := h.s.newPage(ctx, "Sign in")
	p.Notices = append(p.Notices, notices...)
	p.Errors = fldErrs
	p.Form = forms
	return ctx.Render(code, authTemplate, p)
}

func (h pagesHandler) switchAuthForm(ctx echo.Context) error {
	contextTab(ctx).ShowAuthForm(browser.AuthForm(ctx.FormValue("form")))
	return redirect(ctx, route.AuthPath)
}

func (h pagesHandler) login(ctx echo.Context) error {
	tab := contextTab(ctx)

	var data user.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	forms := authForms{Form: browser.LoginForm, Login: user.LoginRequest{Email: data.Email}}

	if err := data.Validate(h.s.deps.Validate); err != nil {
		fldErrs, ok := core.FieldErrors(err, h.s.deps.Translator)
		if !ok {
			return errors.Wrap(err, "validating LoginRequest")
		}
		return h.renderAuth(ctx, http.StatusBadRequest, forms, fldErrs)
	}

	usr, err := tab.Login(data.Email, data.Password)
	if err != nil {
		if errors.Cause(err) == auth.ErrAuthenticationFailed {
			h.s.deps.Logger.Info("login failed", map[string]interface{}{"email": data.Email})
			return h.renderAuth(ctx, http.StatusBadRequest, forms, nil, auth.LoginFailedNotice)
		}
		return errors.Wrap(err, "logging in")
	}
	h.s.deps.Logger.Info("logged in", usr)
	return redirect(ctx, route.Destination(usr.Role))
}

func (h pagesHandler) register(ctx echo.Context) error {
	var data user.Registration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Registration")
	}

	if err := data.Validate(h.s.deps.Validate); err != nil {
		fldErrs, ok := core.FieldErrors(err, h.s.deps.Translator)
		if !ok {
			return errors.Wrap(err, "validating Registration")
		}
		data.Password = ""
		return h.renderAuth(ctx, http.StatusBadRequest, authForms{Form: browser.RegisterForm, Register: data}, fldErrs)
	}

	contextTab(ctx).ShowAuthForm(browser.LoginForm)
	notice := fmt.Sprintf("Registration successful for %s. You can now log in.", data.Name)
	return h.s.flashRedirect(ctx, notice, route.AuthPath)
}

func (h pagesHandler) logout(ctx echo.Context) error {
	tab := contextTab(ctx)
	if usr, ok := tab.CurrentUser(); ok {
		h.s.deps.Logger.Info("logged out", usr)
	}
	tab.Logout()
	if err := h.s.reopenTab(ctx); err != nil {
		return err
	}
	return redirect(ctx, route.AuthPath)
}
