// Package broker is an in-process pub/sub for request records, used when no
// NATS server is configured. It has the same Publish shape as *nats.Conn so
// it can stand in for it behind observe.Publisher.
package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/vkwave/pkg/uuidx"
)

const defaultSlowSubscriberTimeout = 100 * time.Millisecond

// Handler receives the messages published on a subject.
type Handler func(ctx context.Context, data []byte)

type Subscription interface {
	ID() string
	Unsubscribe()
}

// Local fans published messages out to the subscribers of a subject.
// Subscribers that don't keep up within the slow subscriber timeout are dropped.
type Local struct {
	subjects              *haxmap.Map[string, *subject]
	slowSubscriberTimeout time.Duration
}

func NewLocal() *Local {
	return &Local{
		subjects:              haxmap.New[string, *subject](),
		slowSubscriberTimeout: defaultSlowSubscriberTimeout,
	}
}

// WithSlowSubscriberTimeout configures the timeout for detecting slow subscribers.
func (b *Local) WithSlowSubscriberTimeout(timeout time.Duration) *Local {
	b.slowSubscriberTimeout = timeout
	return b
}

func (b *Local) subject(name string) *subject {
	s, _ := b.subjects.GetOrCompute(name, func() *subject {
		return &subject{subscriptions: haxmap.New[string, *subscription]()}
	})
	return s
}

// Publish delivers data to every live subscriber of name.
func (b *Local) Publish(name string, data []byte) error {
	s := b.subject(name)
	s.subscriptions.ForEach(func(_ string, sub *subscription) bool {
		select {
		case <-sub.ctx.Done():
			sub.Unsubscribe()
			return true
		case <-sub.closed:
			return true
		default:
		}

		select {
		case <-sub.ctx.Done():
			sub.Unsubscribe()
		case <-sub.closed:
		case sub.channel <- data:
		case <-time.After(b.slowSubscriberTimeout):
			sub.Unsubscribe()
		}
		return true
	})
	return nil
}

// Subscribe calls handler for every message published on name until ctx is
// done or the subscription is cancelled.
func (b *Local) Subscribe(ctx context.Context, name string, handler Handler) (Subscription, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}
	s := b.subject(name)
	id := uuidx.NewString()
	sub := &subscription{
		id:      id,
		ctx:     ctx,
		channel: make(chan []byte, 50),
		onClose: func() { s.subscriptions.Del(id) },
		handler: handler,
		closed:  make(chan struct{}),
	}
	s.subscriptions.Set(id, sub)
	go sub.forward()
	return sub, nil
}

type subject struct {
	subscriptions *haxmap.Map[string, *subscription]
}

type subscription struct {
	id        string
	ctx       context.Context
	channel   chan []byte
	closeOnce sync.Once
	onClose   func()
	handler   Handler
	closed    chan struct{}
}

func (s *subscription) ID() string {
	return s.id
}

func (s *subscription) Unsubscribe() {
	s.closeOnce.Do(func() {
		if s.onClose != nil {
			s.onClose()
		}
		close(s.closed)
	})
}

func (s *subscription) forward() {
	for {
		select {
		case data := <-s.channel:
			s.handler(s.ctx, data)
		case <-s.closed:
			return
		case <-s.ctx.Done():
			return
		}
	}
}
