package echoweb

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/lms/core/user"
)

//go:embed templates/*.html
var templateFS embed.FS

// template names
const (
	layoutTemplate     = "layout.html"
	errorTemplate      = "error.html"
	homeTemplate       = "home.html"
	authTemplate       = "auth.html"
	adminTemplate      = "admin.html"
	instructorTemplate = "instructor.html"
)

var pageTemplates = []string{errorTemplate, homeTemplate, authTemplate, adminTemplate, instructorTemplate}

// renderer is an echo.Renderer holding one template set per page, each page sharing the layout.
type renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*renderer)(nil)

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{
		"roleLabel": func(r user.Role) string {
			for _, info := range user.Roles {
				if info.Value == r {
					return info.Name
				}
			}
			return "Guest"
		},
	}
	layout, err := template.New(layoutTemplate).Funcs(funcs).ParseFS(templateFS, "templates/"+layoutTemplate)
	if err != nil {
		return nil, err
	}

	r := &renderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		base, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if r.pages[name], err = base.ParseFS(templateFS, "templates/"+name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, layoutTemplate, data)
}

// page is the data every template receives.
type page struct {
	Title   string
	User    user.User
	Role    user.Role
	Authed  bool
	Notices []string
	Errors  map[string]string
	Form    interface{}
	Data    interface{}
}

// newPage fills the layout fields from the request's tab and consumes its flashes.
func (s *Server) newPage(ctx echo.Context, title string) page {
	p := page{Title: title, Role: user.RoleGuest}
	if tab := contextTab(ctx); tab != nil {
		if usr, ok := tab.CurrentUser(); ok {
			p.User, p.Role, p.Authed = usr, usr.Role, true
		}
	}
	p.Notices = s.popFlashes(ctx)
	return p
}

func errorPage(ctx echo.Context, code int, message interface{}) page {
	p := page{Title: http.StatusText(code), Role: user.RoleGuest, Data: code}
	if tab := contextTab(ctx); tab != nil {
		if usr, ok := tab.CurrentUser(); ok {
			p.User, p.Role, p.Authed = usr, usr.Role, true
		}
	}
	switch m := message.(type) {
	case echo.Map:
		p.Notices = []string{fmt.Sprint(m["error"])}
	case map[string]string:
		p.Errors = m
	default:
		p.Notices = []string{fmt.Sprint(m)}
	}
	return p
}
