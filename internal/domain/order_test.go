package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range OrderStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, OrderStatus("pending").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_Label(t *testing.T) {
	assert.Equal(t, "เสร็จสิ้น", StatusCompleted.Label())
	assert.Equal(t, "unknown", OrderStatus("unknown").Label())
}

func TestItemsTotal(t *testing.T) {
	items := []OrderItem{
		{MenuItemID: 1, Quantity: 2, Price: 100, Name: "A"},
		{MenuItemID: 2, Quantity: 1, Price: 50, Name: "B"},
	}
	assert.Equal(t, int64(250), ItemsTotal(items))
	assert.Equal(t, int64(0), ItemsTotal(nil))
}

func TestErrorTaxonomy(t *testing.T) {
	assert.True(t, errors.Is(ErrOrderNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrImageTooLarge, ErrUpload))
	assert.True(t, errors.Is(Invalid("phone is required"), ErrValidation))
	assert.Contains(t, Invalid("phone is required").Error(), "phone is required")

	cause := errors.New("connection refused")
	err := Store("orders.create", cause)
	assert.True(t, errors.Is(err, ErrStore))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "orders.create: connection refused", err.Error())
	assert.Nil(t, Store("noop", nil))
}
