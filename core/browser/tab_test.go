package browser

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/lms/core/auth"
	"github.com/trezcool/lms/core/dashboard"
	"github.com/trezcool/lms/core/user"
	"github.com/trezcool/lms/tests"
)

func setup(t *testing.T) *Manager {
	db := testutil.OpenDB(t)
	usrSvc, _ := testutil.NewServices(t, db)
	return NewManager(usrSvc, testutil.NewLogger(t))
}

func TestManager_Open(t *testing.T) {
	m := setup(t)

	tab := m.Open("")
	assert.NotEmpty(t, tab.ID)
	assert.Equal(t, 1, m.Len())

	assert.Same(t, tab, m.Open(tab.ID))
	assert.Equal(t, 1, m.Len())

	other := m.Open("forged-id")
	assert.NotEqual(t, "forged-id", other.ID)
	assert.NotEqual(t, tab.ID, other.ID)
	assert.Equal(t, 2, m.Len())

	got, ok := m.Get(other.ID)
	assert.True(t, ok)
	assert.Same(t, other, got)

	m.Close(other.ID)
	m.Close(other.ID)
	_, ok = m.Get(other.ID)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestTab_SessionsAreIndependent(t *testing.T) {
	m := setup(t)
	t1, t2 := m.Open(""), m.Open("")

	_, err := t1.Login(user.AdminEmail, "123456")
	assert.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, auth.RoleOf(t1))
	assert.Equal(t, user.RoleGuest, auth.RoleOf(t2))
}

func TestTab_LoginLogoutResetDashboards(t *testing.T) {
	m := setup(t)
	tab := m.Open("")

	_, err := tab.Login(user.InstructorEmail, "123456")
	assert.NoError(t, err)
	assert.NoError(t, tab.Instructor.SelectCourse("c1"))
	assert.NoError(t, tab.Admin.OpenCreateForm())

	tab.Logout()
	assert.Equal(t, user.RoleGuest, tab.Session.Role())
	view, _ := tab.Instructor.Current()
	assert.Equal(t, dashboard.Summary, view)
	view, _ = tab.Admin.Current()
	assert.Equal(t, dashboard.Summary, view)

	assert.NoError(t, tab.Instructor.OpenCreateForm())
	_, err = tab.Login("unknown@x.com", "123456")
	assert.Equal(t, auth.ErrAuthenticationFailed, err)
	view, _ = tab.Instructor.Current()
	assert.Equal(t, dashboard.Summary, view)
}

func TestTab_AuthForm(t *testing.T) {
	m := setup(t)
	tab := m.Open("")

	assert.Equal(t, LoginForm, tab.AuthForm())
	tab.ShowAuthForm(RegisterForm)
	assert.Equal(t, RegisterForm, tab.AuthForm())
	tab.ShowAuthForm("lol")
	assert.Equal(t, LoginForm, tab.AuthForm())

	tab.ShowAuthForm(RegisterForm)
	_, err := tab.Login(user.StudentEmail, "123456")
	assert.NoError(t, err)
	assert.Equal(t, LoginForm, tab.AuthForm())
}

func TestManager_Concurrent(t *testing.T) {
	m := setup(t)

	var wg sync.WaitGroup
	ids := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tab := m.Open("")
			_, _ = tab.Login(user.StudentEmail, "123456")
			ids <- tab.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 20)
	assert.Equal(t, 20, m.Len())
}

func TestManager_Sweep(t *testing.T) {
	now := time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC)
	NowFunc = func() time.Time { return now }
	defer func() { NowFunc = time.Now }()

	m := setup(t)
	idle, active := m.Open(""), m.Open("")

	now = now.Add(20 * time.Minute)
	assert.Same(t, active, m.Open(active.ID))
	assert.Equal(t, 0, m.Sweep(30*time.Minute))
	assert.Equal(t, 2, m.Len())

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, m.Sweep(30*time.Minute))
	_, ok := m.Get(idle.ID)
	assert.False(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)

	// a swept tab's cookie opens a fresh guest tab
	reopened := m.Open(idle.ID)
	assert.NotEqual(t, idle.ID, reopened.ID)
	assert.Equal(t, user.RoleGuest, auth.RoleOf(reopened))
}

func TestManager_Run(t *testing.T) {
	m := setup(t)
	for i := 0; i < 5; i++ {
		m.Open("")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond, 0)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not stop")
	}
}
