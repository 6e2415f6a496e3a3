package services

import (
	"context"
	"time"

	"restaurant-service/internal/notify"
	"restaurant-service/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const purgeTimeout = 30 * time.Second

// ReconcileService removes order headers left without items, e.g. by a
// client that wrote the header and failed before the items.
type ReconcileService struct {
	repo     repository.OrderRepository
	notifier notify.Notifier
	grace    time.Duration
	now      func() time.Time
}

func NewReconcileService(r repository.OrderRepository, n notify.Notifier, grace time.Duration) *ReconcileService {
	if n == nil {
		n = notify.Nop{}
	}
	return &ReconcileService{repo: r, notifier: n, grace: grace, now: time.Now}
}

func (s *ReconcileService) SetClock(now func() time.Time) {
	s.now = now
}

// PurgeOrphans deletes item-less orders older than the grace period.
func (s *ReconcileService) PurgeOrphans(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.grace)
	n, err := s.repo.DeleteOrphans(ctx, cutoff)
	if err != nil {
		zap.L().Error("orphan purge failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		zap.L().Warn("purged orphaned orders", zap.Int64("count", n), zap.Time("cutoff", cutoff))
		s.notifier.Notify(ctx, notify.Change{Table: notify.TableOrders, Op: notify.OpDelete, At: s.now()})
	}
	return n, nil
}

// Schedule registers the purge on c using a cron spec such as "@every 5m".
func (s *ReconcileService) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		_, _ = s.PurgeOrphans(ctx)
	})
}
