package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"restaurant-service/internal/domain"
	"restaurant-service/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	RevenueMonths      = 8
	PopularLimit       = 5
	DefaultRecentLimit = 4
	maxRecentLimit     = 100
)

var thaiMonths = [12]string{
	"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.",
	"ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค.",
}

// DashboardService derives back-office statistics by scanning stored orders
// on every call. It keeps no counters of its own.
type DashboardService struct {
	orders repository.OrderRepository
	menu   repository.MenuRepository
	loc    *time.Location
}

func NewDashboardService(orders repository.OrderRepository, menu repository.MenuRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{orders: orders, menu: menu, loc: loc}
}

// Windows returns local midnight today, the start of the week (Sunday) and
// the first day of the month for now.
func Windows(now time.Time, loc *time.Location) (today, week, month time.Time) {
	n := now.In(loc)
	today = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	week = today.AddDate(0, 0, -int(today.Weekday()))
	month = time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, loc)
	return today, week, month
}

// SalesFromOrders folds the month window into the sales figures. Every order
// counts toward the time windows; only Completed orders count as revenue.
func SalesFromOrders(orders []domain.Order, today, week time.Time) domain.DashboardStats {
	var st domain.DashboardStats
	for _, o := range orders {
		if !o.CreatedAt.Before(today) {
			st.TodaySales += o.Total
		}
		if !o.CreatedAt.Before(week) {
			st.WeekSales += o.Total
		}
		st.MonthSales += o.Total
		if o.Status == domain.StatusCompleted {
			st.TotalRevenue += o.Total
		}
	}
	return st
}

func (s *DashboardService) GetDashboardStats(ctx context.Context, now time.Time) (*domain.DashboardStats, error) {
	today, week, month := Windows(now, s.loc)

	orders, err := s.orders.FindCreatedSince(ctx, month)
	if err != nil {
		zap.L().Error("dashboard stats: load orders failed", zap.Error(err))
		return nil, err
	}
	stats := SalesFromOrders(orders, today, week)

	if stats.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	// new_customers counts today's orders, not distinct customers.
	if stats.NewCustomers, err = s.orders.CountCreatedSince(ctx, today); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RevenueBuckets returns the zeroed series for the current month and the
// RevenueMonths-1 months before it, newest first.
func RevenueBuckets(now time.Time, loc *time.Location) []domain.MonthlyRevenue {
	n := now.In(loc)
	first := time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, loc)
	out := make([]domain.MonthlyRevenue, 0, RevenueMonths)
	for i := 0; i < RevenueMonths; i++ {
		d := first.AddDate(0, -i, 0)
		out = append(out, domain.MonthlyRevenue{
			Year:  d.Year(),
			Month: int(d.Month()),
			Name:  thaiMonths[d.Month()-1],
		})
	}
	return out
}

func (s *DashboardService) GetMonthlyRevenue(ctx context.Context, now time.Time) ([]domain.MonthlyRevenue, error) {
	buckets := RevenueBuckets(now, s.loc)
	oldest := buckets[len(buckets)-1]
	from := time.Date(oldest.Year, time.Month(oldest.Month), 1, 0, 0, 0, 0, s.loc)

	orders, err := s.orders.FindByStatusBetween(ctx, domain.StatusCompleted, from, now)
	if err != nil {
		zap.L().Error("monthly revenue: load orders failed", zap.Error(err))
		return nil, err
	}

	index := make(map[[2]int]int, len(buckets))
	for i, b := range buckets {
		index[[2]int{b.Year, b.Month}] = i
	}
	for _, o := range orders {
		c := o.CreatedAt.In(s.loc)
		if i, ok := index[[2]int{c.Year(), int(c.Month())}]; ok {
			buckets[i].Amount += o.Total
		}
	}

	for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	}
	return buckets, nil
}

// RankPopular sorts by summed quantity, highest first, breaking ties by the
// lower menu item id, and keeps the first limit entries.
func RankPopular(items []domain.PopularItem, limit int) []domain.PopularItem {
	out := make([]domain.PopularItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalOrders != out[j].TotalOrders {
			return out[i].TotalOrders > out[j].TotalOrders
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (s *DashboardService) GetPopularItems(ctx context.Context) ([]domain.PopularItem, error) {
	items, err := s.menu.Popularity(ctx)
	if err != nil {
		zap.L().Error("popular items: load failed", zap.Error(err))
		return nil, err
	}
	return RankPopular(items, PopularLimit), nil
}

// ThaiDate formats like th-TH toLocaleDateString: d/m/yyyy in the Buddhist era.
func ThaiDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+543)
}

func ThaiTime(t time.Time) string {
	return t.Format("15:04") + " น."
}

func (s *DashboardService) GetRecentOrders(ctx context.Context, limit int) ([]domain.RecentOrder, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	orders, err := s.orders.FindRecent(ctx, limit)
	if err != nil {
		zap.L().Error("recent orders: load failed", zap.Error(err))
		return nil, err
	}

	out := make([]domain.RecentOrder, 0, len(orders))
	for _, o := range orders {
		c := o.CreatedAt.In(s.loc)
		out = append(out, domain.RecentOrder{
			ID:       o.ID,
			Customer: o.CustomerName,
			Total:    o.Total,
			Status:   o.Status,
			Date:     ThaiDate(c),
			Time:     ThaiTime(c),
		})
	}
	return out, nil
}

// GetOverview computes every dashboard panel concurrently; any failure fails
// the whole call.
func (s *DashboardService) GetOverview(ctx context.Context, now time.Time, recentLimit int) (*domain.DashboardOverview, error) {
	var ov domain.DashboardOverview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st, err := s.GetDashboardStats(gctx, now)
		if err != nil {
			return err
		}
		ov.Stats = *st
		return nil
	})
	g.Go(func() error {
		rev, err := s.GetMonthlyRevenue(gctx, now)
		ov.Revenue = rev
		return err
	})
	g.Go(func() error {
		pop, err := s.GetPopularItems(gctx)
		ov.Popular = pop
		return err
	})
	g.Go(func() error {
		rec, err := s.GetRecentOrders(gctx, recentLimit)
		ov.Recent = rec
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
