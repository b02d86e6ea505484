package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "gigs_session"

const ctxSessionKey = "session.current"

// Session is the per-browser state bound to a request. UserID is zero for
// anonymous visitors; every visitor gets a session so flash messages survive
// the redirect after logout and login.
type Session struct {
	ID     string
	UserID int64
}

// Authenticated reports whether the session belongs to a logged in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID > 0
}

type claims struct {
	jwt.RegisteredClaims
}

// Manager mints and verifies session cookies and owns the flash store.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	flashes *flashStore
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		flashes: newFlashStore(),
	}
}

// Middleware guarantees every request carries a session, anonymous or not,
// and stashes it on the gin context.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := m.fromCookie(c)
		if !ok {
			var err error
			sess, err = m.issue(c, 0)
			if err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

// FromContext returns the session placed on the context by Middleware.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*Session)
	return sess
}

// LogIn rotates the session to an authenticated one for the given user.
func (m *Manager) LogIn(c *gin.Context, userID int64) error {
	if old := FromContext(c); old != nil {
		m.flashes.drop(old.ID)
	}
	sess, err := m.issue(c, userID)
	if err != nil {
		return err
	}
	c.Set(ctxSessionKey, sess)
	return nil
}

// LogOut replaces the current session with a fresh anonymous one.
func (m *Manager) LogOut(c *gin.Context) error {
	if old := FromContext(c); old != nil {
		m.flashes.drop(old.ID)
	}
	sess, err := m.issue(c, 0)
	if err != nil {
		return err
	}
	c.Set(ctxSessionKey, sess)
	return nil
}

// Flash queues a one-shot message for the current session.
func (m *Manager) Flash(c *gin.Context, key, message string) {
	if sess := FromContext(c); sess != nil {
		m.flashes.put(sess.ID, key, message)
	}
}

// PopFlash consumes a queued message; the second read returns false.
func (m *Manager) PopFlash(c *gin.Context, key string) (string, bool) {
	sess := FromContext(c)
	if sess == nil {
		return "", false
	}
	return m.flashes.pop(sess.ID, key)
}

func (m *Manager) issue(c *gin.Context, userID int64) (*Session, error) {
	sess := &Session{ID: uuid.NewString(), UserID: userID}

	now := time.Now().UTC()
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	if userID > 0 {
		cl.Subject = strconv.FormatInt(userID, 10)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", false, true)
	return sess, nil
}

func (m *Manager) fromCookie(c *gin.Context) (*Session, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return nil, false
	}

	var cl claims
	token, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || cl.ID == "" {
		return nil, false
	}

	sess := &Session{ID: cl.ID}
	if cl.Subject != "" {
		id, err := strconv.ParseInt(cl.Subject, 10, 64)
		if err != nil {
			return nil, false
		}
		sess.UserID = id
	}
	return sess, true
}
