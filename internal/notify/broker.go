package notify

import (
	"context"

	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// BrokerNotifier forwards changes to a message broker using
// "<table>.<op>" routing keys. Publish failures are logged, not retried.
type BrokerNotifier struct {
	pub Publisher
}

func NewBrokerNotifier(pub Publisher) *BrokerNotifier {
	return &BrokerNotifier{pub: pub}
}

func (n *BrokerNotifier) Notify(ctx context.Context, c Change) {
	key := RoutingKey(c)
	if err := n.pub.Publish(ctx, key, c); err != nil {
		zap.L().Warn("failed to publish change", zap.String("routing_key", key), zap.Error(err))
	}
}

func RoutingKey(c Change) string {
	return string(c.Table) + "." + string(c.Op)
}
