package echoweb_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/lms/apps/web/echo"
	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/browser"
	"github.com/trezcool/lms/core/course"
	"github.com/trezcool/lms/core/user"
	"github.com/trezcool/lms/tests"
)

type testApp struct {
	srv    *Server
	conf   *core.Config
	usrSvc *user.Service
	crsSvc *course.Service
	tabs   *browser.Manager
}

func setup(t *testing.T) testApp {
	return setupWithLogger(t, testutil.NewLogger(t))
}

func setupWithLogger(t *testing.T, logger core.Logger) testApp {
	conf := core.NewTestConfig()

	// set up DB & services
	db := testutil.OpenDB(t)
	usrSvc, crsSvc := testutil.NewServices(t, db)
	tabs := browser.NewManager(usrSvc, logger)
	validate, translator := core.NewValidator()

	// set up server
	srv, err := NewServer(
		ServerDeps{
			Conf:       conf,
			Logger:     logger,
			UserSvc:    usrSvc,
			CourseSvc:  crsSvc,
			Tabs:       tabs,
			Validate:   validate,
			Translator: translator,
		},
	)
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}
	return testApp{srv: srv, conf: conf, usrSvc: usrSvc, crsSvc: crsSvc, tabs: tabs}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

// browserClient keeps the tab cookie between requests, like a browser tab would.
type browserClient struct {
	t      *testing.T
	app    testApp
	cookie *http.Cookie
}

func (app testApp) newBrowser(t *testing.T) *browserClient {
	return &browserClient{t: t, app: app}
}

func (c *browserClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if form != nil {
		body.WriteString(form.Encode())
	}
	req := httptest.NewRequest(method, path, &body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.app.srv.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == c.app.conf.Session.CookieName {
			c.cookie = ck
		}
	}
	return rec
}

func (c *browserClient) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

func (c *browserClient) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return c.do(http.MethodPost, path, form)
}

func (c *browserClient) login(email string) {
	rec := c.post("/auth/login", url.Values{"email": {email}, "password": {"123456"}})
	if rec.Code != http.StatusSeeOther {
		c.t.Fatalf("login(%s) failed: code = %d, body %s", email, rec.Code, rec.Body.String())
	}
}

func checkRedirect(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, wantLocation string) {
	t.Helper()
	assert.Equal(t, wantCode, rec.Code)
	assert.Equal(t, wantLocation, rec.Header().Get("Location"))
}

func checkPage(t *testing.T, rec *httptest.ResponseRecorder, wantCode int, wantContains ...string) {
	t.Helper()
	assert.Equal(t, wantCode, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"), "not an html page")
	for _, want := range wantContains {
		assert.Contains(t, rec.Body.String(), want)
	}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, app testApp, usr user.User) string {
	token, err := app.srv.GenerateToken(GetUserClaims(usr, app.conf))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
