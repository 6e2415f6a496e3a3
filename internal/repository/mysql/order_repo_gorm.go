package mysql

import (
	"context"
	"errors"
	"time"

	"restaurant-service/internal/domain"
	"restaurant-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

var headerColumns = []string{"id", "customer_name", "total", "status", "created_at"}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	items := order.Items
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order.Items = nil
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if order.ID == 0 {
			return errors.New("failed to assign order ID")
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	order.Items = items
	if err != nil {
		order.ID = 0
		zap.L().Error("order create failed", zap.Int("items", len(items)), zap.Error(err))
		return domain.Store("orders.create", err)
	}

	zap.L().Info("order saved", zap.Uint64("order_id", order.ID), zap.Int("items", len(items)))
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items", orderItemsByID).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		zap.L().Error("FindByID error", zap.Uint64("order_id", id), zap.Error(err))
		return nil, domain.Store("orders.find", err)
	}
	return &o, nil
}

func (r *orderRepo) FindAll(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		zap.L().Error("FindAll error", zap.Error(err))
		return nil, domain.Store("orders.list", err)
	}
	return out, nil
}

func (r *orderRepo) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderItemsByID).
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	if err != nil {
		zap.L().Error("FindByStatus error", zap.String("status", string(status)), zap.Error(err))
		return nil, domain.Store("orders.list_by_status", err)
	}
	return out, nil
}

// UpdateStatus checks existence before writing so that re-assigning the
// current status is not mistaken for a missing row.
func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&domain.Order{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		found = true
		return tx.Model(&domain.Order{}).Where("id = ?", id).Update("status", status).Error
	})
	if err != nil {
		zap.L().Error("UpdateStatus error", zap.Uint64("order_id", id), zap.Error(err))
		return nil, domain.Store("orders.update_status", err)
	}
	if !found {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Order{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		zap.L().Error("Delete error", zap.Uint64("order_id", id), zap.Error(err))
		return false, domain.Store("orders.delete", err)
	}
	return affected > 0, nil
}

func (r *orderRepo) DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", createdBefore).
		Where("NOT EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id)").
		Delete(&domain.Order{})
	if res.Error != nil {
		zap.L().Error("DeleteOrphans error", zap.Error(res.Error))
		return 0, domain.Store("orders.delete_orphans", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *orderRepo) FindCreatedSince(ctx context.Context, since time.Time) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Select(headerColumns).
		Where("created_at >= ?", since).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, domain.Store("orders.created_since", err)
	}
	return out, nil
}

func (r *orderRepo) FindByStatusBetween(ctx context.Context, status domain.OrderStatus, from, to time.Time) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Select(headerColumns).
		Where("status = ?", status).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, domain.Store("orders.status_between", err)
	}
	return out, nil
}

func (r *orderRepo) FindRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).
		Select(headerColumns).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, domain.Store("orders.recent", err)
	}
	return out, nil
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).Count(&n).Error; err != nil {
		return 0, domain.Store("orders.count", err)
	}
	return n, nil
}

func (r *orderRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Order{}).Where("created_at >= ?", since).Count(&n).Error
	if err != nil {
		return 0, domain.Store("orders.count_since", err)
	}
	return n, nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
