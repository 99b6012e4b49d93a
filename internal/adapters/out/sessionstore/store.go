// Package sessionstore holds the per-caller location search sessions in memory.
package sessionstore

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"printdelivery/internal/core/domain/model/location"
	"printdelivery/internal/core/ports"
)

const DefaultMaxSessions = 10000

var _ ports.SessionStore = (*Store)(nil)

type entry struct {
	id       string
	session  *location.Session
	lastSeen time.Time
}

type Option func(*Store)

func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithMaxSessions bounds the store; the least recently seen session is evicted
// to make room.
func WithMaxSessions(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// Store keeps sessions in a map for lookup and in a list ordered by last use,
// most recent first, so eviction and sweeping never scan the whole store.
type Store struct {
	mu          sync.Mutex
	sessions    map[string]*list.Element
	byUse       *list.List
	recentSize  int
	maxSessions int
	clock       func() time.Time
}

func NewStore(recentSize int, opts ...Option) *Store {
	s := &Store{
		sessions:    make(map[string]*list.Element),
		byUse:       list.New(),
		recentSize:  recentSize,
		maxSessions: DefaultMaxSessions,
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session returns the session for id, creating it on first use. A blank id
// yields nil, which search treats as "no history".
func (s *Store) Session(id string) *location.Session {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if el, ok := s.sessions[id]; ok {
		e := el.Value.(*entry)
		e.lastSeen = now
		s.byUse.MoveToFront(el)
		return e.session
	}

	if len(s.sessions) >= s.maxSessions {
		s.remove(s.byUse.Back())
	}
	e := &entry{id: id, session: location.NewSession(s.recentSize), lastSeen: now}
	s.sessions[id] = s.byUse.PushFront(e)
	return e.session
}

// Sweep drops sessions idle for longer than idle and reports how many went.
func (s *Store) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock().Add(-idle)
	removed := 0
	for el := s.byUse.Back(); el != nil && el.Value.(*entry).lastSeen.Before(cutoff); el = s.byUse.Back() {
		s.remove(el)
		removed++
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) remove(el *list.Element) {
	if el == nil {
		return
	}
	delete(s.sessions, s.byUse.Remove(el).(*entry).id)
}
