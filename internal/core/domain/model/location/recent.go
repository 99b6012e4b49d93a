package location

import (
	"slices"
	"sync"
)

// DefaultRecentCapacity bounds a session's RecentList unless configured otherwise.
const DefaultRecentCapacity = 5

// RecentList is a most-recent-first list of location ids without duplicates.
// Pushing beyond capacity evicts the oldest entry.
type RecentList struct {
	capacity int
	ids      []string
}

func NewRecentList(capacity int) *RecentList {
	if capacity < 1 {
		capacity = DefaultRecentCapacity
	}
	return &RecentList{capacity: capacity, ids: make([]string, 0, capacity)}
}

// Push moves id to the front, inserting it if absent.
func (r *RecentList) Push(id string) {
	if i := slices.Index(r.ids, id); i >= 0 {
		r.ids = slices.Delete(r.ids, i, i+1)
	}
	r.ids = slices.Insert(r.ids, 0, id)
	if len(r.ids) > r.capacity {
		r.ids = r.ids[:r.capacity]
	}
}

// Rank is the position of id, 0 being the most recent, or -1 when absent.
func (r *RecentList) Rank(id string) int {
	return slices.Index(r.ids, id)
}

func (r *RecentList) IDs() []string {
	return slices.Clone(r.ids)
}

func (r *RecentList) Len() int {
	return len(r.ids)
}

func (r *RecentList) Capacity() int {
	return r.capacity
}

// Session carries one caller's recency list. Only that caller touches it; the
// mutex covers concurrent requests from the same caller.
type Session struct {
	mu     sync.Mutex
	recent *RecentList
}

func NewSession(capacity int) *Session {
	return &Session{recent: NewRecentList(capacity)}
}

func (s *Session) Remember(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent.Push(id)
}

// Recent returns the chosen ids, most recent first.
func (s *Session) Recent() []string {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recent.IDs()
}
