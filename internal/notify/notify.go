// Package notify carries "rows changed, re-read" signals from the write
// paths to whoever needs to refresh derived state. Changes carry no row
// data; consumers re-query the store.
package notify

import (
	"context"
	"time"
)

type Table string

const (
	TableOrders     Table = "orders"
	TableOrderItems Table = "order_items"
	TableMenuItems  Table = "menu_items"
)

type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type Change struct {
	Table Table     `json:"table"`
	Op    Op        `json:"op"`
	ID    uint64    `json:"id,omitempty"`
	At    time.Time `json:"at"`
}

// Notifier is the capability injected into every component that writes.
// Notify must not block on slow consumers and never fails the write.
type Notifier interface {
	Notify(ctx context.Context, c Change)
}

type Nop struct{}

func (Nop) Notify(context.Context, Change) {}

// Multi fans a change out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, c Change) {
	for _, n := range m {
		n.Notify(ctx, c)
	}
}
