package repository

import (
	"context"

	"restaurant-service/internal/domain"
)

type MenuRepository interface {
	FindAll(ctx context.Context) ([]domain.MenuItem, error)
	FindByCategory(ctx context.Context, category domain.Category) ([]domain.MenuItem, error)
	FindByID(ctx context.Context, id uint64) (*domain.MenuItem, error)
	Save(ctx context.Context, item *domain.MenuItem) error
	// Update overwrites every editable column; it reports false when the
	// item does not exist.
	Update(ctx context.Context, item *domain.MenuItem) (bool, error)
	Delete(ctx context.Context, id uint64) (bool, error)
	// Popularity sums order item quantities per menu item, ordered by id.
	Popularity(ctx context.Context) ([]domain.PopularItem, error)
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
	Exists(ctx context.Context, category domain.Category) (bool, error)
	Save(ctx context.Context, category domain.Category) error
}
