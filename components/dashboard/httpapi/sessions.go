package httpapi

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/utils"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-backoffice/components/dashboard"
)

// SessionHeader selects the workspace a request operates on.
const SessionHeader = "X-Backoffice-Session"

const (
	defaultSession     = "default"
	DefaultMaxSessions = 1024
	DefaultSessionTTL  = 30 * time.Minute
)

// SessionOption customizes a session store.
type SessionOption func(*Sessions)

// WithMaxSessions caps live sessions. Opening one more evicts the least
// recently used.
func WithMaxSessions(n int) SessionOption {
	return func(s *Sessions) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithIdleTTL closes sessions not used for ttl. Zero keeps idle sessions
// until the cap evicts them.
func WithIdleTTL(ttl time.Duration) SessionOption {
	return func(s *Sessions) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithSessionClock replaces time.Now.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Sessions) {
		if now != nil {
			s.now = now
		}
	}
}

type session struct {
	id       string
	ws       *dashboard.Workspace
	lastSeen time.Time
}

// Sessions keeps one workspace per session id so table state survives
// between requests of the same client. Sessions are kept in LRU order and
// closed when evicted.
type Sessions struct {
	open func() *dashboard.Workspace
	max  int
	ttl  time.Duration
	now  func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	lru   *list.List
}

// NewSessions builds a session store that opens workspaces with open.
func NewSessions(open func() *dashboard.Workspace, opts ...SessionOption) *Sessions {
	s := &Sessions{
		open:  open,
		max:   DefaultMaxSessions,
		ttl:   DefaultSessionTTL,
		now:   time.Now,
		items: map[string]*list.Element{},
		lru:   list.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workspace returns the workspace for id, opening it on first use.
func (s *Sessions) Workspace(id string) *dashboard.Workspace {
	id = strings.TrimSpace(id)
	if id == "" {
		id = defaultSession
	}
	s.mu.Lock()
	now := s.now()
	evicted := s.expireLocked(now)
	if elem, ok := s.items[id]; ok {
		sess := elem.Value.(*session)
		sess.lastSeen = now
		s.lru.MoveToFront(elem)
		s.mu.Unlock()
		closeSessions(evicted)
		return sess.ws
	}
	sess := &session{id: utils.CopyString(id), ws: s.open(), lastSeen: now}
	s.items[sess.id] = s.lru.PushFront(sess)
	for s.lru.Len() > s.max {
		evicted = append(evicted, s.removeLocked(s.lru.Back()))
	}
	s.mu.Unlock()
	closeSessions(evicted)
	return sess.ws
}

// Resolve picks the workspace named by the session header.
func (s *Sessions) Resolve(ctx router.Context) *dashboard.Workspace {
	return s.Workspace(ctx.Header(SessionHeader))
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Drop closes and forgets a session.
func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	var dropped []*session
	if elem, ok := s.items[id]; ok {
		dropped = append(dropped, s.removeLocked(elem))
	}
	s.mu.Unlock()
	closeSessions(dropped)
}

// Close closes every workspace.
func (s *Sessions) Close() {
	s.mu.Lock()
	all := make([]*session, 0, s.lru.Len())
	for s.lru.Len() > 0 {
		all = append(all, s.removeLocked(s.lru.Back()))
	}
	s.mu.Unlock()
	closeSessions(all)
}

// expireLocked removes sessions idle for longer than the ttl. The list is
// ordered by last use so the scan stops at the first live session.
func (s *Sessions) expireLocked(now time.Time) []*session {
	if s.ttl <= 0 {
		return nil
	}
	var expired []*session
	for elem := s.lru.Back(); elem != nil; elem = s.lru.Back() {
		if now.Sub(elem.Value.(*session).lastSeen) <= s.ttl {
			break
		}
		expired = append(expired, s.removeLocked(elem))
	}
	return expired
}

func (s *Sessions) removeLocked(elem *list.Element) *session {
	sess := elem.Value.(*session)
	delete(s.items, sess.id)
	s.lru.Remove(elem)
	return sess
}

func closeSessions(sessions []*session) {
	for _, sess := range sessions {
		sess.ws.Close()
	}
}
