package mysql

import (
	"context"
	"errors"

	"restaurant-service/internal/domain"
	"restaurant-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type menuRepo struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) repository.MenuRepository {
	return &menuRepo{db: db}
}

func (r *menuRepo) FindAll(ctx context.Context) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		zap.L().Error("menu FindAll error", zap.Error(err))
		return nil, domain.Store("menu.list", err)
	}
	return out, nil
}

func (r *menuRepo) FindByCategory(ctx context.Context, category domain.Category) ([]domain.MenuItem, error) {
	var out []domain.MenuItem
	if err := r.db.WithContext(ctx).Where("category = ?", category).Order("id ASC").Find(&out).Error; err != nil {
		zap.L().Error("menu FindByCategory error", zap.String("category", string(category)), zap.Error(err))
		return nil, domain.Store("menu.list_by_category", err)
	}
	return out, nil
}

func (r *menuRepo) FindByID(ctx context.Context, id uint64) (*domain.MenuItem, error) {
	var m domain.MenuItem
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.Store("menu.find", err)
	}
	return &m, nil
}

func (r *menuRepo) Save(ctx context.Context, item *domain.MenuItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		zap.L().Error("menu Save error", zap.String("name", item.Name), zap.Error(err))
		return domain.Store("menu.create", err)
	}
	return nil
}

func (r *menuRepo) Update(ctx context.Context, item *domain.MenuItem) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.MenuItem
		if err := tx.First(&existing, item.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := tx.Model(&existing).
			Select("name", "description", "price", "category", "image").
			Updates(item).Error; err != nil {
			return err
		}
		return tx.First(item, item.ID).Error
	})
	if err != nil {
		zap.L().Error("menu Update error", zap.Uint64("menu_item_id", item.ID), zap.Error(err))
		return false, domain.Store("menu.update", err)
	}
	return found, nil
}

func (r *menuRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.MenuItem{}, id)
	if res.Error != nil {
		zap.L().Error("menu Delete error", zap.Uint64("menu_item_id", id), zap.Error(res.Error))
		return false, domain.Store("menu.delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *menuRepo) Popularity(ctx context.Context) ([]domain.PopularItem, error) {
	var out []domain.PopularItem
	err := r.db.WithContext(ctx).
		Table("menu_items AS m").
		Select("m.id AS id, m.name AS name, m.category AS category, COALESCE(SUM(oi.quantity), 0) AS total_orders").
		Joins("LEFT JOIN order_items AS oi ON oi.menu_item_id = m.id").
		Group("m.id, m.name, m.category").
		Order("m.id ASC").
		Scan(&out).Error
	if err != nil {
		zap.L().Error("menu Popularity error", zap.Error(err))
		return nil, domain.Store("menu.popularity", err)
	}
	return out, nil
}
