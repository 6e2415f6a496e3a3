package services

import (
	"time"

	"restaurant-service/internal/domain"
)

// ict is a fixed +07:00 zone so tests do not depend on the host tz database.
var ict = time.FixedZone("ICT", 7*60*60)

func CreateMockOrder(id uint64, total int64, status domain.OrderStatus, createdAt time.Time) domain.Order {
	return domain.Order{
		ID:            id,
		CustomerName:  TestCustomerName,
		CustomerPhone: TestCustomerPhone,
		Total:         total,
		Status:        status,
		CreatedAt:     createdAt,
	}
}

func CreateMockMenuItem(id uint64, name string, price int64, category domain.Category) *domain.MenuItem {
	return &domain.MenuItem{
		ID:       id,
		Name:     name,
		Price:    price,
		Category: category,
	}
}

const (
	TestOrderID       = uint64(1)
	TestCustomerName  = "Somchai"
	TestCustomerPhone = "0812345678"
)
