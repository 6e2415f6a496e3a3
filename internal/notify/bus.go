package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Bus is the in-process change feed. Each subscription gets its own topic so
// that unsubscribing removes exactly that handler.
type Bus struct {
	bus EventBus.Bus

	mu     sync.RWMutex
	seq    uint64
	topics map[Table]map[string]struct{}
}

func NewBus() *Bus {
	return &Bus{
		bus:    EventBus.New(),
		topics: make(map[Table]map[string]struct{}),
	}
}

type Subscription struct {
	bus     *Bus
	table   Table
	topic   string
	handler func(Change)
	once    sync.Once
}

// Subscribe registers handler for changes to table. Handlers run on the
// notifying goroutine.
func (b *Bus) Subscribe(table Table, handler func(Change)) (*Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	topic := fmt.Sprintf("%s#%d", table, b.seq)
	if err := b.bus.Subscribe(topic, handler); err != nil {
		return nil, err
	}
	if b.topics[table] == nil {
		b.topics[table] = make(map[string]struct{})
	}
	b.topics[table][topic] = struct{}{}

	return &Subscription{bus: b, table: table, topic: topic, handler: handler}, nil
}

// Unsubscribe releases the subscription; calling it again is a no-op.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		defer s.bus.mu.Unlock()
		delete(s.bus.topics[s.table], s.topic)
		if err := s.bus.bus.Unsubscribe(s.topic, s.handler); err != nil {
			zap.L().Warn("unsubscribe failed", zap.String("topic", s.topic), zap.Error(err))
		}
	})
}

func (b *Bus) Notify(_ context.Context, c Change) {
	b.mu.RLock()
	topics := make([]string, 0, len(b.topics[c.Table]))
	for t := range b.topics[c.Table] {
		topics = append(topics, t)
	}
	b.mu.RUnlock()

	for _, t := range topics {
		b.bus.Publish(t, c)
	}
}

// Subscribers reports how many handlers listen on table.
func (b *Bus) Subscribers(table Table) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[table])
}
