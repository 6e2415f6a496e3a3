package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in workflow order.
var OrderStatuses = []OrderStatus{StatusPending, StatusPreparing, StatusCompleted, StatusCancelled}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label is the Thai display string shown on the storefront and admin board.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "รอดำเนินการ"
	case StatusPreparing:
		return "กำลังปรุง"
	case StatusCompleted:
		return "เสร็จสิ้น"
	case StatusCancelled:
		return "ยกเลิก"
	}
	return string(s)
}

type Order struct {
	ID              uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerName    string      `json:"customer_name" gorm:"size:255;not null"`
	CustomerPhone   string      `json:"customer_phone" gorm:"size:64;not null"`
	CustomerAddress string      `json:"customer_address,omitempty" gorm:"size:1024"`
	VillaName       string      `json:"villa_name,omitempty" gorm:"size:255"`
	Total           int64       `json:"total" gorm:"not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(16);not null;default:'Pending';index"`
	CreatedAt       time.Time   `json:"created_at" gorm:"not null;index"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a line of an order. Name and Price are copies taken at checkout
// and never follow later edits of the menu item.
type OrderItem struct {
	ID         uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID    uint64 `json:"order_id" gorm:"not null;index"`
	MenuItemID uint64 `json:"menu_item_id" gorm:"not null;index"`
	Quantity   int    `json:"quantity" gorm:"not null"`
	Price      int64  `json:"price" gorm:"not null"`
	Name       string `json:"name" gorm:"size:255;not null"`
}

func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// ItemsTotal sums price*quantity over the given lines.
func ItemsTotal(items []OrderItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}
