// Package devicefeed keeps the latest position reported by each driver's device.
//
// It is the in-process PositionSource: reads wait for a fresh report instead
// of returning a stale one, and a driver who revoked location sharing reads as
// permission denied until the next report.
package devicefeed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/ports"
	"printdelivery/internal/pkg/errs"
)

// DefaultMaxAge is how old a report may be and still count as current.
const DefaultMaxAge = 30 * time.Second

var (
	_ ports.PositionSource   = (*Store)(nil)
	_ ports.PositionRecorder = (*Store)(nil)
)

type entry struct {
	point   kernel.GeoPoint
	at      time.Time
	revoked bool
	touched time.Time
	changed chan struct{}
}

type Option func(*Store)

func WithMaxAge(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.maxAge = d
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

type Store struct {
	mu      sync.Mutex
	entries map[kernel.UUID]*entry
	maxAge  time.Duration
	clock   func() time.Time
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[kernel.UUID]*entry),
		maxAge:  DefaultMaxAge,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record stores a report. Reports older than the one already held are ignored.
// A zero at means now.
func (s *Store) Record(driverID kernel.UUID, point kernel.GeoPoint, at time.Time) error {
	if err := errors.Join(driverID.Validate(), point.Validate()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	if at.IsZero() {
		at = now
	}
	if at.After(now.Add(time.Minute)) {
		return errs.NewValueIsOutOfRangeError("reported at", at, "-inf", now.Add(time.Minute))
	}

	e := s.entryFor(driverID)
	if !e.at.IsZero() && at.Before(e.at) && !e.revoked {
		return nil
	}
	e.point = point
	e.at = at
	e.revoked = false
	e.touched = now
	s.notify(e)
	return nil
}

func (s *Store) Revoke(driverID kernel.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryFor(driverID)
	e.revoked = true
	e.touched = s.clock()
	s.notify(e)
}

// CurrentPosition returns the driver's position if it is at most max age old,
// otherwise waits for the next report until ctx is done.
func (s *Store) CurrentPosition(ctx context.Context, driverID kernel.UUID) (kernel.GeoPoint, error) {
	for {
		s.mu.Lock()
		e, ok := s.entries[driverID]
		switch {
		case !ok:
			s.mu.Unlock()
			return kernel.GeoPoint{}, fmt.Errorf("%w: driver %s has not reported", ports.ErrPositionUnavailable, driverID)
		case e.revoked:
			s.mu.Unlock()
			return kernel.GeoPoint{}, fmt.Errorf("%w: driver %s stopped sharing", ports.ErrPermissionDenied, driverID)
		case s.clock().Sub(e.at) <= s.maxAge:
			p := e.point
			s.mu.Unlock()
			return p, nil
		}
		wait := e.changed
		s.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return kernel.GeoPoint{}, fmt.Errorf("%w: no fresh report from driver %s", ports.ErrTimeout, driverID)
			}
			return kernel.GeoPoint{}, ctx.Err()
		}
	}
}

// EvictIdle forgets drivers not heard from for longer than idle and reports how
// many were removed. Waiting readers are woken and see the driver as unavailable.
func (s *Store) EvictIdle(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock().Add(-idle)
	removed := 0
	for id, e := range s.entries {
		if e.touched.Before(cutoff) {
			delete(s.entries, id)
			s.notify(e)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) entryFor(driverID kernel.UUID) *entry {
	e, ok := s.entries[driverID]
	if !ok {
		e = &entry{changed: make(chan struct{})}
		s.entries[driverID] = e
	}
	return e
}

// notify wakes every reader waiting on e. Callers hold s.mu.
func (s *Store) notify(e *entry) {
	close(e.changed)
	e.changed = make(chan struct{})
}
