package browser

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/dashboard"
	"github.com/trezcool/lms/core/user"
)

var NowFunc = time.Now // mockable

// AuthForm is the form shown on the auth page.
type AuthForm string

const (
	LoginForm    AuthForm = "login"
	RegisterForm AuthForm = "register"
)

// Tab is the server-side state of one client: its auth session and the local state of each page.
type Tab struct {
	ID         string
	Session    *auth.Session
	Admin      *dashboard.Switcher
	Instructor *dashboard.Switcher

	mu       sync.Mutex
	authForm AuthForm
	lastSeen time.Time
}

func newTab(id string, store auth.IdentityStore) *Tab {
	return &Tab{
		ID:         id,
		Session:    auth.NewSession(store),
		Admin:      dashboard.NewSwitcher(false),
		Instructor: dashboard.NewSwitcher(true),
		authForm:   LoginForm,
		lastSeen:   NowFunc(),
	}
}

func (t *Tab) touch() {
	t.mu.Lock()
	t.lastSeen = NowFunc()
	t.mu.Unlock()
}

func (t *Tab) idleSince(now time.Time) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return now.Sub(t.lastSeen)
}

// CurrentUser makes a Tab an auth.Subject.
func (t *Tab) CurrentUser() (user.User, bool) {
	return t.Session.CurrentUser()
}

// Login logs in through the tab's session; dashboards start over on Summary.
func (t *Tab) Login(email, password string) (user.User, error) {
	usr, err := t.Session.Login(email, password)
	t.resetDashboards()
	if err == nil {
		t.ShowAuthForm(LoginForm)
	}
	return usr, err
}

func (t *Tab) Logout() {
	t.Session.Logout()
	t.resetDashboards()
}

func (t *Tab) AuthForm() AuthForm {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.authForm
}

func (t *Tab) ShowAuthForm(form AuthForm) {
	if form != RegisterForm {
		form = LoginForm
	}
	t.mu.Lock()
	t.authForm = form
	t.mu.Unlock()
}

func (t *Tab) resetDashboards() {
	t.Admin.Reset()
	t.Instructor.Reset()
}

// Manager keeps every open Tab in memory, keyed by an opaque ID.
type Manager struct {
	mu     sync.RWMutex
	tabs   map[string]*Tab
	store  auth.IdentityStore
	logger core.Logger
}

func NewManager(store auth.IdentityStore, logger core.Logger) *Manager {
	return &Manager{
		tabs:   make(map[string]*Tab),
		store:  store,
		logger: logger,
	}
}

// Open returns the tab registered under id, or a new tab (with a new ID) when id is unknown.
// Either way the tab counts as seen now.
func (m *Manager) Open(id string) *Tab {
	if id != "" {
		m.mu.RLock()
		tab, ok := m.tabs[id]
		m.mu.RUnlock()
		if ok {
			tab.touch()
			return tab
		}
	}

	tab := newTab(uuid.New().String(), m.store)
	m.mu.Lock()
	m.tabs[tab.ID] = tab
	m.mu.Unlock()
	m.logger.Debug("opened tab", map[string]interface{}{"tab": tab.ID})
	return tab
}

func (m *Manager) Get(id string) (*Tab, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tab, ok := m.tabs[id]
	return tab, ok
}

func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tabs[id]; ok {
		delete(m.tabs, id)
		m.logger.Debug("closed tab", map[string]interface{}{"tab": id})
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tabs)
}

// Sweep closes every tab not opened for longer than maxIdle and returns how many were closed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	now := NowFunc()

	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for id, tab := range m.tabs {
		if tab.idleSince(now) > maxIdle {
			delete(m.tabs, id)
			n++
		}
	}
	if n > 0 {
		m.logger.Debug("swept idle tabs", map[string]interface{}{"closed": n, "open": len(m.tabs)})
	}
	return n
}

// Run sweeps idle tabs every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(maxIdle)
		}
	}
}
