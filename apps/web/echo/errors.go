package echoweb

import (
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/user"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, auth.AccessDeniedNotice)
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// API requests get JSON, pages get the error template.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		if fldErrs, ok := core.FieldErrors(err, translator); ok {
			code = http.StatusBadRequest
			if len(fldErrs) > 0 {
				message = fldErrs
			} else {
				message = err.Error()
			}
		} else {
			switch origErr := errors.Cause(err).(type) {
			case *echo.HTTPError:
				if origErr == middleware.ErrJWTMissing {
					code = http.StatusUnauthorized
					message = origErr.Message
					break
				}
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				message = origErr.Message
			default:
				if origErr == course.ErrNotFound || origErr == user.ErrNotFound {
					code = http.StatusNotFound
					message = errHttpNotFound.Message
					break
				}

				// any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				args := []interface{}{errors.Wrap(err, msg)}
				if tab := contextTab(ctx); tab != nil {
					if usr, ok := tab.CurrentUser(); ok {
						args = append(args, usr)
					}
				} else if sub, ok := ctx.Get(contextUserKey).(tokenSubject); ok && sub.ok {
					args = append(args, sub.usr)
				}
				logger.Error(msg, args...)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			switch {
			case ctx.Request().Method == http.MethodHead: // Issue #608
				err = ctx.NoContent(code)
			case wantsJSON(ctx):
				err = ctx.JSON(code, message)
			default:
				err = ctx.Render(code, errorTemplate, errorPage(ctx, code, message))
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// wantsJSON reports whether the request is an API call.
func wantsJSON(ctx echo.Context) bool {
	req := ctx.Request()
	if strings.HasPrefix(req.URL.Path, "/v1") {
		return true
	}
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}
