package mysql

import (
	"context"

	"restaurant-service/internal/domain"
	"restaurant-service/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) FindAll(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.WithContext(ctx).Model(&domain.CategoryEntry{}).Order("name ASC").Pluck("name", &out).Error
	if err != nil {
		return nil, domain.Store("categories.list", err)
	}
	return out, nil
}

func (r *categoryRepo) Exists(ctx context.Context, category domain.Category) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.CategoryEntry{}).Where("name = ?", category).Count(&n).Error
	if err != nil {
		return false, domain.Store("categories.exists", err)
	}
	return n > 0, nil
}

// Save is idempotent: an existing category is left untouched.
func (r *categoryRepo) Save(ctx context.Context, category domain.Category) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.CategoryEntry{Name: category}).Error
	return domain.Store("categories.create", err)
}
