package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/youruser/cardapp/internal/editor"
)

const (
	sessionCookie = "card_session"
	editorKey     = "editor"
)

type session struct {
	ctrl     *editor.Controller
	lastSeen time.Time
}

// Sessions keeps one editor per browser session and forgets idle ones.
// Beyond limit sessions, the least recently seen one is evicted.
type Sessions struct {
	ttl     time.Duration
	limit   int
	factory func() *editor.Controller
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*session
}

// NewSessions returns a session table. A limit of zero or less disables
// the size bound.
func NewSessions(ttl time.Duration, limit int, factory func() *editor.Controller) *Sessions {
	return &Sessions{
		ttl:     ttl,
		limit:   limit,
		factory: factory,
		now:     time.Now,
		items:   map[string]*session{},
	}
}

// Get returns the editor for id and refreshes its idle timer.
func (s *Sessions) Get(id string) (*editor.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	sess, ok := s.items[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.ctrl, true
}

// Create starts a new session.
func (s *Sessions) Create() (string, *editor.Controller) {
	id := uuid.NewString()
	ctrl := s.factory()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	for s.limit > 0 && len(s.items) >= s.limit {
		s.evictOldest()
	}
	s.items[id] = &session{ctrl: ctrl, lastSeen: s.now()}
	return id, ctrl
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Sessions) prune() {
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.items {
		if sess.lastSeen.Before(cutoff) {
			delete(s.items, id)
		}
	}
}

func (s *Sessions) evictOldest() {
	var (
		oldest string
		seen   time.Time
	)
	for id, sess := range s.items {
		if oldest == "" || sess.lastSeen.Before(seen) {
			oldest, seen = id, sess.lastSeen
		}
	}
	delete(s.items, oldest)
}

// withSession resolves the session cookie, starting a session when the
// cookie is missing or expired.
func (h *Handler) withSession(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if ctrl, ok := h.sessions.Get(id); ok {
			c.Set(editorKey, ctrl)
			c.Next()
			return
		}
	}
	id, ctrl := h.sessions.Create()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, int(h.sessions.ttl.Seconds()), "/", "", false, true)
	c.Set(editorKey, ctrl)
	c.Next()
}

func editorFrom(c *gin.Context) *editor.Controller {
	return c.MustGet(editorKey).(*editor.Controller)
}
