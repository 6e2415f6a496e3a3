package services

import (
	"context"
	"io"
	"strings"
	"time"

	"restaurant-service/internal/cart"
	"restaurant-service/internal/domain"
	"restaurant-service/internal/notify"
	"restaurant-service/internal/repository"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"
)

var ErrOrderNotFound = domain.ErrOrderNotFound

type Customer struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address,omitempty"`
	VillaName string `json:"villa_name,omitempty"`
}

type OrderService struct {
	repo     repository.OrderRepository
	notifier notify.Notifier
	now      func() time.Time
}

func NewOrderService(r repository.OrderRepository, n notify.Notifier) *OrderService {
	if n == nil {
		n = notify.Nop{}
	}
	return &OrderService{
		repo:     r,
		notifier: n,
		now:      time.Now,
	}
}

func (u *OrderService) SetClock(now func() time.Time) {
	u.now = now
}

// CreateOrder persists a new Pending order. total is taken as given; callers
// are expected to compute it from the items.
func (u *OrderService) CreateOrder(ctx context.Context, customer Customer, total int64, items []domain.OrderItem) (*domain.Order, error) {
	if err := validateCheckout(customer, total, items); err != nil {
		return nil, err
	}

	lines := make([]domain.OrderItem, len(items))
	copy(lines, items)
	for i := range lines {
		lines[i].ID = 0
		lines[i].OrderID = 0
	}

	order := &domain.Order{
		CustomerName:    strings.TrimSpace(customer.Name),
		CustomerPhone:   strings.TrimSpace(customer.Phone),
		CustomerAddress: strings.TrimSpace(customer.Address),
		VillaName:       strings.TrimSpace(customer.VillaName),
		Total:           total,
		Status:          domain.StatusPending,
		CreatedAt:       u.now(),
		Items:           lines,
	}

	if err := u.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	at := u.now()
	u.notifier.Notify(ctx, notify.Change{Table: notify.TableOrders, Op: notify.OpInsert, ID: order.ID, At: at})
	u.notifier.Notify(ctx, notify.Change{Table: notify.TableOrderItems, Op: notify.OpInsert, ID: order.ID, At: at})

	zap.L().Info("order created",
		zap.Uint64("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

// CreateOrderFromCart checks out a cart, deriving the total from its lines.
func (u *OrderService) CreateOrderFromCart(ctx context.Context, customer Customer, c *cart.Cart) (*domain.Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, domain.Invalid("cart is empty")
	}
	return u.CreateOrder(ctx, customer, c.Total(), c.OrderItems())
}

func validateCheckout(customer Customer, total int64, items []domain.OrderItem) error {
	if strings.TrimSpace(customer.Name) == "" {
		return domain.Invalid("customer name is required")
	}
	if strings.TrimSpace(customer.Phone) == "" {
		return domain.Invalid("customer phone is required")
	}
	if total < 0 {
		return domain.Invalid("total must not be negative")
	}
	if len(items) == 0 {
		return domain.Invalid("cart is empty")
	}
	for i, it := range items {
		if it.Quantity < 1 {
			return domain.Invalid("item %d: quantity must be at least 1", i+1)
		}
		if it.Price < 0 {
			return domain.Invalid("item %d: price must not be negative", i+1)
		}
		if strings.TrimSpace(it.Name) == "" {
			return domain.Invalid("item %d: name is required", i+1)
		}
	}
	return nil
}

func (u *OrderService) GetOrderById(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return u.repo.FindAll(ctx)
}

func (u *OrderService) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Invalid("unknown status %q", status)
	}
	return u.repo.FindByStatus(ctx, status)
}

// UpdateOrderStatus sets any status from any status. Concurrent updates are
// last-write-wins.
func (u *OrderService) UpdateOrderStatus(ctx context.Context, id uint64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.Invalid("unknown status %q", status)
	}

	o, err := u.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}

	u.notifier.Notify(ctx, notify.Change{Table: notify.TableOrders, Op: notify.OpUpdate, ID: id, At: u.now()})
	zap.L().Info("order status changed", zap.Uint64("order_id", id), zap.String("status", string(status)))
	return o, nil
}

// DeleteOrder removes the order and its items.
func (u *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	ok, err := u.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOrderNotFound
	}

	at := u.now()
	u.notifier.Notify(ctx, notify.Change{Table: notify.TableOrders, Op: notify.OpDelete, ID: id, At: at})
	u.notifier.Notify(ctx, notify.Change{Table: notify.TableOrderItems, Op: notify.OpDelete, ID: id, At: at})
	return nil
}

type orderCSVRow struct {
	ID        uint64 `csv:"id"`
	CreatedAt string `csv:"created_at"`
	Customer  string `csv:"customer_name"`
	Phone     string `csv:"customer_phone"`
	Address   string `csv:"customer_address"`
	Villa     string `csv:"villa_name"`
	Status    string `csv:"status"`
	Items     int    `csv:"items"`
	Total     int64  `csv:"total"`
}

// ExportOrdersCSV writes every order, newest first, as CSV.
func (u *OrderService) ExportOrdersCSV(ctx context.Context, w io.Writer) error {
	orders, err := u.repo.FindAll(ctx)
	if err != nil {
		return err
	}

	rows := make([]*orderCSVRow, 0, len(orders))
	for _, o := range orders {
		qty := 0
		for _, it := range o.Items {
			qty += it.Quantity
		}
		rows = append(rows, &orderCSVRow{
			ID:        o.ID,
			CreatedAt: o.CreatedAt.Format(time.RFC3339),
			Customer:  o.CustomerName,
			Phone:     o.CustomerPhone,
			Address:   o.CustomerAddress,
			Villa:     o.VillaName,
			Status:    string(o.Status),
			Items:     qty,
			Total:     o.Total,
		})
	}
	return gocsv.Marshal(&rows, w)
}
