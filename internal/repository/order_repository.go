package repository

import (
	"context"
	"time"

	"restaurant-service/internal/domain"
)

// OrderRepository persists orders with their line items. Lookups by id
// return (nil, nil) when the row does not exist.
type OrderRepository interface {
	// Create writes the header and every item in one transaction.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindAll(ctx context.Context) ([]domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id uint64) (bool, error)
	DeleteOrphans(ctx context.Context, createdBefore time.Time) (int64, error)

	// Header-only reads used by the dashboard.
	FindCreatedSince(ctx context.Context, since time.Time) ([]domain.Order, error)
	FindByStatusBetween(ctx context.Context, status domain.OrderStatus, from, to time.Time) ([]domain.Order, error)
	FindRecent(ctx context.Context, limit int) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}
