package echoweb

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/cors"

	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/route"
	"github.com/trezcool/lms/core/user"
)

// guard runs the route guard of path on every request of a page group.
// Denied requests are redirected, with the guard's notice flashed when it has one.
func (s *Server) guard(path string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			_, decision, ok := route.Resolve(path, contextTab(ctx))
			if !ok {
				return errHttpNotFound
			}
			if decision.Allowed() {
				return next(ctx)
			}
			return s.flashRedirect(ctx, decision.Notice, route.RedirectPath(decision))
		}
	}
}

// apiGuard is the guard of the JSON API: no identity is a 401, a wrong role a 403.
func (s *Server) apiGuard(roles ...user.Role) echo.MiddlewareFunc {
	required := user.NewRoleSet(roles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sub, err := s.getContextUser(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context user")
			}
			switch auth.Authorize(required, sub).Outcome {
			case auth.Allow:
				return next(ctx)
			case auth.RedirectToLogin:
				return errUnauthorized
			default:
				return errHttpForbidden
			}
		}
	}
}

// apiCORS applies the CORS policy to the JSON API only. Preflight requests are answered here.
func apiCORS() echo.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	})
	wrapped := echo.WrapMiddleware(c.Handler)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withCORS := wrapped(next)
		return func(ctx echo.Context) error {
			if strings.HasPrefix(ctx.Request().URL.Path, "/v1") {
				return withCORS(ctx)
			}
			return next(ctx)
		}
	}
}
