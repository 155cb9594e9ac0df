package echoweb

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/browser"
)

const (
	tabIDKey         = "tab"
	contextTabKey    = "tab"
	contextCookieKey = "cookie"
)

// newCookieStore signs the tab cookie with a key derived from the secret key.
// MaxAge 0 makes it a browser-session cookie.
func newCookieStore(conf *core.Config) *sessions.CookieStore {
	key := sha256.Sum256([]byte(conf.SecretKey))
	store := sessions.NewCookieStore(key[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   conf.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// tabMiddleware attaches the client's browser.Tab to the context, opening a new one
// when the cookie is missing, tampered with or names a tab the server forgot.
func (s *Server) tabMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		// a cookie that fails to decode still yields a usable new session
		sess, _ := s.store.Get(ctx.Request(), s.deps.Conf.Session.CookieName)

		id, _ := sess.Values[tabIDKey].(string)
		tab := s.deps.Tabs.Open(id)
		ctx.Set(contextTabKey, tab)
		ctx.Set(contextCookieKey, sess)

		if tab.ID != id {
			sess.Values[tabIDKey] = tab.ID
			if err := s.saveCookie(ctx); err != nil {
				return err
			}
		}
		return next(ctx)
	}
}

// reopenTab closes the request's tab and binds the cookie to a fresh one.
func (s *Server) reopenTab(ctx echo.Context) error {
	sess := contextCookie(ctx)
	if old := contextTab(ctx); old != nil {
		s.deps.Tabs.Close(old.ID)
	}
	tab := s.deps.Tabs.Open("")
	ctx.Set(contextTabKey, tab)
	if sess == nil {
		return nil
	}
	sess.Values[tabIDKey] = tab.ID
	return s.saveCookie(ctx)
}

func contextTab(ctx echo.Context) *browser.Tab {
	tab, _ := ctx.Get(contextTabKey).(*browser.Tab)
	return tab
}

func contextCookie(ctx echo.Context) *sessions.Session {
	sess, _ := ctx.Get(contextCookieKey).(*sessions.Session)
	return sess
}

func (s *Server) saveCookie(ctx echo.Context) error {
	sess := contextCookie(ctx)
	if sess == nil {
		return nil
	}
	if err := sess.Save(ctx.Request(), ctx.Response()); err != nil {
		return errors.Wrap(err, "saving tab cookie")
	}
	return nil
}

// addFlash queues a notice for the next rendered page.
func (s *Server) addFlash(ctx echo.Context, notice string) error {
	sess := contextCookie(ctx)
	if sess == nil || notice == "" {
		return nil
	}
	sess.AddFlash(notice)
	return s.saveCookie(ctx)
}

func (s *Server) popFlashes(ctx echo.Context) []string {
	sess := contextCookie(ctx)
	if sess == nil {
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	notices := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if n, ok := f.(string); ok {
			notices = append(notices, n)
		}
	}
	if err := s.saveCookie(ctx); err != nil {
		s.deps.Logger.Warn("could not clear flashes", err)
	}
	return notices
}

// redirect answers a GET with 302 and anything else with 303 so browsers follow with a GET.
func redirect(ctx echo.Context, path string) error {
	code := http.StatusFound
	if ctx.Request().Method != http.MethodGet {
		code = http.StatusSeeOther
	}
	return ctx.Redirect(code, path)
}

func (s *Server) flashRedirect(ctx echo.Context, notice, path string) error {
	if err := s.addFlash(ctx, notice); err != nil {
		return err
	}
	return redirect(ctx, path)
}
