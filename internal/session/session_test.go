package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rextj1/laragigs/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionRouter(mgr *session.Manager) *gin.Engine {
	r := gin.New()
	r.Use(mgr.Middleware())

	r.GET("/whoami", func(c *gin.Context) {
		sess := session.FromContext(c)
		c.String(http.StatusOK, "%s:%d", sess.ID, sess.UserID)
	})
	r.POST("/login", func(c *gin.Context) {
		if err := mgr.LogIn(c, 42); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		mgr.Flash(c, "message", "You are logged in!")
		c.Redirect(http.StatusFound, "/")
	})
	r.POST("/logout", func(c *gin.Context) {
		if err := mgr.LogOut(c); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		mgr.Flash(c, "message", "You have been logged out!")
		c.Redirect(http.StatusFound, "/")
	})
	r.GET("/flash", func(c *gin.Context) {
		msg, ok := mgr.PopFlash(c, "message")
		c.String(http.StatusOK, "%v:%s", ok, msg)
	})

	return r
}

func lastSessionCookie(t *testing.T, res *http.Response) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, cookie := range res.Cookies() {
		if cookie.Name == session.CookieName {
			found = cookie
		}
	}
	require.NotNil(t, found, "expected a session cookie")
	return found
}

func doRequest(r *gin.Engine, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnonymousSessionIssued(t *testing.T) {
	mgr := session.NewManager("test-secret", time.Hour)
	r := newSessionRouter(mgr)

	w := doRequest(r, http.MethodGet, "/whoami", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := lastSessionCookie(t, w.Result())
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	// same cookie maps to the same session id on the next request
	w2 := doRequest(r, http.MethodGet, "/whoami", cookie)
	require.Equal(t, w.Body.String(), w2.Body.String())
	require.Contains(t, w.Body.String(), ":0")
}

func TestLogInRotatesSession(t *testing.T) {
	mgr := session.NewManager("test-secret", time.Hour)
	r := newSessionRouter(mgr)

	anon := doRequest(r, http.MethodGet, "/whoami", nil)
	anonCookie := lastSessionCookie(t, anon.Result())

	login := doRequest(r, http.MethodPost, "/login", anonCookie)
	require.Equal(t, http.StatusFound, login.Code)
	authCookie := lastSessionCookie(t, login.Result())
	require.NotEqual(t, anonCookie.Value, authCookie.Value)

	who := doRequest(r, http.MethodGet, "/whoami", authCookie)
	require.Contains(t, who.Body.String(), ":42")
}

func TestFlashIsOneShot(t *testing.T) {
	mgr := session.NewManager("test-secret", time.Hour)
	r := newSessionRouter(mgr)

	login := doRequest(r, http.MethodPost, "/login", nil)
	cookie := lastSessionCookie(t, login.Result())

	first := doRequest(r, http.MethodGet, "/flash", cookie)
	require.Equal(t, "true:You are logged in!", first.Body.String())

	second := doRequest(r, http.MethodGet, "/flash", cookie)
	require.Equal(t, "false:", second.Body.String())
}

func TestFlashScopedToSession(t *testing.T) {
	mgr := session.NewManager("test-secret", time.Hour)
	r := newSessionRouter(mgr)

	login := doRequest(r, http.MethodPost, "/login", nil)
	_ = lastSessionCookie(t, login.Result())

	// a different browser sees nothing
	other := doRequest(r, http.MethodGet, "/flash", nil)
	require.Equal(t, "false:", other.Body.String())
}

func TestLogOutDropsAuthentication(t *testing.T) {
	mgr := session.NewManager("test-secret", time.Hour)
	r := newSessionRouter(mgr)

	login := doRequest(r, http.MethodPost, "/login", nil)
	authCookie := lastSessionCookie(t, login.Result())

	logout := doRequest(r, http.MethodPost, "/logout", authCookie)
	require.Equal(t, http.StatusFound, logout.Code)
	anonCookie := lastSessionCookie(t, logout.Result())

	who := doRequest(r, http.MethodGet, "/whoami", anonCookie)
	require.Contains(t, who.Body.String(), ":0")

	flash := doRequest(r, http.MethodGet, "/flash", anonCookie)
	require.Equal(t, "true:You have been logged out!", flash.Body.String())
}

func TestTamperedCookieTreatedAsAnonymous(t *testing.T) {
	mgr := session.NewManager("test-secret", time.Hour)
	r := newSessionRouter(mgr)

	login := doRequest(r, http.MethodPost, "/login", nil)
	authCookie := lastSessionCookie(t, login.Result())

	forged := &http.Cookie{Name: session.CookieName, Value: authCookie.Value + "x"}
	w := doRequest(r, http.MethodGet, "/whoami", forged)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), ":0")
}
