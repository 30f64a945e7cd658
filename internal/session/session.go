// Package session keeps the authenticated principal server-side. The browser
// only ever holds an opaque session ID; the ID-to-email mapping lives in an
// expiring, size-bounded in-process store.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const CookieName = "souq_session"

type Manager struct {
	store  *expirable.LRU[string, string]
	maxAge int
}

func NewManager(maxSessions int, ttl time.Duration) *Manager {
	return &Manager{
		store:  expirable.NewLRU[string, string](maxSessions, nil, ttl),
		maxAge: int(ttl / time.Second),
	}
}

// Establish creates a fresh session for the email and sets the cookie.
func (m *Manager) Establish(c *gin.Context, email string) {
	id := newSessionID()
	m.store.Add(id, email)
	m.setCookie(c, id, m.maxAge)
}

// Principal resolves the session cookie to its email, if any.
func (m *Manager) Principal(c *gin.Context) (string, bool) {
	id, err := c.Cookie(CookieName)
	if err != nil || id == "" {
		return "", false
	}
	return m.store.Get(id)
}

// SetPrincipal rebinds the live session to a new email, e.g. after an email
// change. Falls back to establishing a new session when none exists.
func (m *Manager) SetPrincipal(c *gin.Context, email string) {
	id, err := c.Cookie(CookieName)
	if err != nil || id == "" {
		m.Establish(c, email)
		return
	}
	m.store.Add(id, email)
}

// Clear drops the server-side session and expires the cookie. Pending codes
// and reset tokens are untouched.
func (m *Manager) Clear(c *gin.Context) {
	if id, err := c.Cookie(CookieName); err == nil && id != "" {
		m.store.Remove(id)
	}
	m.setCookie(c, "", -1)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, value, maxAge, "/", "", false, true)
}

func newSessionID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
