package broadcast

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"printdelivery/internal/core/domain/model/dispatch"
	"printdelivery/internal/core/domain/model/kernel"
	"printdelivery/internal/core/ports"
	"printdelivery/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMailboxSize is the per-subscription buffer unless WithMailboxSize is used.
const DefaultMailboxSize = 16

var ErrClosed = errors.New("broadcaster is closed")

var feedRoles = []dispatch.Role{dispatch.RoleStaff, dispatch.RoleDriver, dispatch.RoleAdmin}

type Option func(*Broadcaster)

func WithMailboxSize(size int) Option {
	return func(b *Broadcaster) {
		if size > 0 {
			b.mailboxSize = size
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Broadcaster) {
		b.logger = logger
	}
}

// WithRegisterer registers the broadcaster's metrics. Without it they are kept
// but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(b *Broadcaster) {
		b.registerer = reg
	}
}

type subscription struct {
	token    kernel.UUID
	topic    dispatch.Topic
	observer ports.Observer
	box      *mailbox
	done     chan struct{}
	stop     sync.Once
}

type shard struct {
	mu   sync.Mutex
	dead bool
	subs atomic.Pointer[[]*subscription]
}

func (s *shard) snapshot() []*subscription {
	if p := s.subs.Load(); p != nil {
		return *p
	}
	return nil
}

// Broadcaster implements ports.EventPublisher and ports.EventSubscriber.
type Broadcaster struct {
	shards sync.Map // dispatch.Topic -> *shard
	tokens sync.Map // kernel.UUID -> *subscription

	mailboxSize int
	logger      *slog.Logger
	registerer  prometheus.Registerer
	metrics     *metrics
	closed      atomic.Bool
	pumps       sync.WaitGroup
}

func NewBroadcaster(opts ...Option) *Broadcaster {
	b := &Broadcaster{
		mailboxSize: DefaultMailboxSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "broadcaster")
	b.metrics = newMetrics(b.registerer)
	return b
}

// Subscribe registers observer for topic. It receives only events published
// after this call returns.
func (b *Broadcaster) Subscribe(topic dispatch.Topic, observer ports.Observer) (kernel.UUID, error) {
	if topic.IsZero() {
		return kernel.UUID{}, errs.NewValueIsRequiredError("topic")
	}
	if observer == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError("observer")
	}
	if b.closed.Load() {
		return kernel.UUID{}, ErrClosed
	}

	sub := &subscription{
		token:    kernel.NewUUID(),
		topic:    topic,
		observer: observer,
		box:      newMailbox(b.mailboxSize),
		done:     make(chan struct{}),
	}

	for {
		v, _ := b.shards.LoadOrStore(topic, &shard{})
		sh := v.(*shard)

		sh.mu.Lock()
		if sh.dead {
			sh.mu.Unlock()
			continue
		}
		current := sh.snapshot()
		next := make([]*subscription, len(current), len(current)+1)
		copy(next, current)
		next = append(next, sub)
		sh.subs.Store(&next)
		sh.mu.Unlock()
		break
	}

	b.tokens.Store(sub.token, sub)
	b.metrics.subscriptions.Inc()

	b.pumps.Add(1)
	go b.pump(sub)

	b.logger.Debug("subscribed", "topic", topic.String(), "observer", observer.ObserverID(), "token", sub.token.String())
	return sub.token, nil
}

// Unsubscribe removes the subscription behind token. It reports false for an
// unknown or already removed token.
func (b *Broadcaster) Unsubscribe(token kernel.UUID) bool {
	v, ok := b.tokens.Load(token)
	if !ok {
		return false
	}
	return b.remove(v.(*subscription), removedUnsubscribed)
}

// Publish hands ev to every subscriber of the order and to every role feed
// interested in it. It never waits on an observer.
func (b *Broadcaster) Publish(orderID kernel.UUID, ev dispatch.Event) {
	if b.closed.Load() {
		return
	}
	b.metrics.published.WithLabelValues(ev.Kind.String()).Inc()

	if topic, err := dispatch.OrderTopic(orderID); err == nil {
		b.fanOut(topic, ev)
	}
	for _, role := range feedRoles {
		if !role.Interested(ev) {
			continue
		}
		topic, _ := dispatch.RoleTopic(role)
		b.fanOut(topic, ev)
	}
}

// Subscribers returns the number of live subscriptions on topic.
func (b *Broadcaster) Subscribers(topic dispatch.Topic) int {
	v, ok := b.shards.Load(topic)
	if !ok {
		return 0
	}
	return len(v.(*shard).snapshot())
}

// Close removes every subscription and rejects further subscribes and publishes.
// Pumps finish the delivery they are in, then exit.
func (b *Broadcaster) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	b.tokens.Range(func(_, v any) bool {
		b.remove(v.(*subscription), removedClosed)
		return true
	})
	b.logger.Info("closed")
}

// Wait blocks until every pump goroutine has exited. Call after Close.
func (b *Broadcaster) Wait() {
	b.pumps.Wait()
}

func (b *Broadcaster) fanOut(topic dispatch.Topic, ev dispatch.Event) {
	v, ok := b.shards.Load(topic)
	if !ok {
		return
	}
	for _, sub := range v.(*shard).snapshot() {
		if sub.box.push(ev) {
			b.metrics.dropped.Inc()
		}
		b.metrics.enqueued.Inc()
	}
}

func (b *Broadcaster) pump(sub *subscription) {
	defer b.pumps.Done()

	for {
		select {
		case <-sub.done:
			return
		case <-sub.box.signal:
		}

		for _, ev := range sub.box.drain() {
			select {
			case <-sub.done:
				return
			default:
			}
			if err := sub.observer.Deliver(ev); err != nil {
				b.logger.Debug("delivery failed, removing subscription",
					"topic", sub.topic.String(), "observer", sub.observer.ObserverID(), "error", err)
				b.remove(sub, removedFailed)
				return
			}
		}
	}
}

func (b *Broadcaster) remove(sub *subscription, reason string) bool {
	if _, ok := b.tokens.LoadAndDelete(sub.token); !ok {
		return false
	}

	if v, ok := b.shards.Load(sub.topic); ok {
		sh := v.(*shard)
		sh.mu.Lock()
		current := sh.snapshot()
		next := make([]*subscription, 0, len(current))
		for _, s := range current {
			if s != sub {
				next = append(next, s)
			}
		}
		if len(next) == 0 {
			sh.dead = true
			b.shards.CompareAndDelete(sub.topic, sh)
		}
		sh.subs.Store(&next)
		sh.mu.Unlock()
	}

	sub.stop.Do(func() { close(sub.done) })
	b.metrics.subscriptions.Dec()
	b.metrics.removed.WithLabelValues(reason).Inc()
	return true
}
