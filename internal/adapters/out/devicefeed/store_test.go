package devicefeed_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"printdelivery/internal/adapters/out/devicefeed"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *clock {
	return &clock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestStore_CurrentPosition(t *testing.T) {
	t.Run("should return a fresh report", func(t *testing.T) {
		c := newClock()
		s := devicefeed.NewStore(devicefeed.WithClock(c.Now))
		driver := kernel.NewUUID()
		require.NoError(t, s.Record(driver, point(t, 21.03, 105.85), c.Now()))

		p, err := s.CurrentPosition(context.Background(), driver)

		require.NoError(t, err)
		assert.InDelta(t, 21.03, p.Latitude(), 1e-9)
	})

	t.Run("should report a driver that never reported as unavailable", func(t *testing.T) {
		s := devicefeed.NewStore()

		_, err := s.CurrentPosition(context.Background(), kernel.NewUUID())

		assert.ErrorIs(t, err, ports.ErrPositionUnavailable)
	})

	t.Run("should report a revoked driver as permission denied until the next report", func(t *testing.T) {
		c := newClock()
		s := devicefeed.NewStore(devicefeed.WithClock(c.Now))
		driver := kernel.NewUUID()
		require.NoError(t, s.Record(driver, point(t, 21.03, 105.85), c.Now()))

		s.Revoke(driver)
		_, err := s.CurrentPosition(context.Background(), driver)
		assert.ErrorIs(t, err, ports.ErrPermissionDenied)

		require.NoError(t, s.Record(driver, point(t, 21.04, 105.86), c.Now()))
		_, err = s.CurrentPosition(context.Background(), driver)
		assert.NoError(t, err)
	})

	t.Run("should time out waiting for a fresh report", func(t *testing.T) {
		c := newClock()
		s := devicefeed.NewStore(devicefeed.WithClock(c.Now), devicefeed.WithMaxAge(10*time.Second))
		driver := kernel.NewUUID()
		require.NoError(t, s.Record(driver, point(t, 21.03, 105.85), c.Now()))
		c.Advance(time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := s.CurrentPosition(ctx, driver)

		assert.ErrorIs(t, err, ports.ErrTimeout)
	})

	t.Run("should wake a waiting reader on the next report", func(t *testing.T) {
		c := newClock()
		s := devicefeed.NewStore(devicefeed.WithClock(c.Now), devicefeed.WithMaxAge(10*time.Second))
		driver := kernel.NewUUID()
		require.NoError(t, s.Record(driver, point(t, 21.03, 105.85), c.Now()))
		c.Advance(time.Minute)

		result := make(chan kernel.GeoPoint, 1)
		go func() {
			p, err := s.CurrentPosition(context.Background(), driver)
			if err == nil {
				result <- p
			}
		}()
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, s.Record(driver, point(t, 21.05, 105.87), c.Now()))

		select {
		case p := <-result:
			assert.InDelta(t, 21.05, p.Latitude(), 1e-9)
		case <-time.After(time.Second):
			t.Fatal("reader was not woken")
		}
	})
}

func TestStore_Record(t *testing.T) {
	t.Run("should ignore reports older than the one held", func(t *testing.T) {
		c := newClock()
		s := devicefeed.NewStore(devicefeed.WithClock(c.Now))
		driver := kernel.NewUUID()
		require.NoError(t, s.Record(driver, point(t, 21.03, 105.85), c.Now()))
		require.NoError(t, s.Record(driver, point(t, 21.00, 105.80), c.Now().Add(-5*time.Second)))

		p, err := s.CurrentPosition(context.Background(), driver)

		require.NoError(t, err)
		assert.InDelta(t, 21.03, p.Latitude(), 1e-9)
	})

	t.Run("should reject reports from the future", func(t *testing.T) {
		c := newClock()
		s := devicefeed.NewStore(devicefeed.WithClock(c.Now))

		err := s.Record(kernel.NewUUID(), point(t, 21.03, 105.85), c.Now().Add(time.Hour))

		assert.Error(t, err)
	})

	t.Run("should reject an unconstructed point", func(t *testing.T) {
		assert.Error(t, devicefeed.NewStore().Record(kernel.NewUUID(), kernel.GeoPoint{}, time.Time{}))
	})
}

func TestStore_EvictIdle(t *testing.T) {
	c := newClock()
	s := devicefeed.NewStore(devicefeed.WithClock(c.Now))
	idle, active := kernel.NewUUID(), kernel.NewUUID()
	require.NoError(t, s.Record(idle, point(t, 21.03, 105.85), c.Now()))
	c.Advance(10 * time.Minute)
	require.NoError(t, s.Record(active, point(t, 21.03, 105.85), c.Now()))

	removed := s.EvictIdle(5 * time.Minute)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, s.Len())
	_, err := s.CurrentPosition(context.Background(), idle)
	assert.ErrorIs(t, err, ports.ErrPositionUnavailable)
}
