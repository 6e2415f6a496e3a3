package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversToTableSubscribers(t *testing.T) {
	bus := NewBus()

	var orders, items []Change
	_, err := bus.Subscribe(TableOrders, func(c Change) { orders = append(orders, c) })
	require.NoError(t, err)
	_, err = bus.Subscribe(TableOrderItems, func(c Change) { items = append(items, c) })
	require.NoError(t, err)

	bus.Notify(context.Background(), Change{Table: TableOrders, Op: OpInsert, ID: 1})
	bus.Notify(context.Background(), Change{Table: TableOrders, Op: OpUpdate, ID: 1})
	bus.Notify(context.Background(), Change{Table: TableMenuItems, Op: OpDelete, ID: 3})

	assert.Len(t, orders, 2)
	assert.Equal(t, OpUpdate, orders[1].Op)
	assert.Empty(t, items)
}

func TestBus_UnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	bus := NewBus()

	counts := make([]int, 2)
	subs := make([]*Subscription, 2)
	for i := range subs {
		i := i
		sub, err := bus.Subscribe(TableOrders, func(Change) { counts[i]++ })
		require.NoError(t, err)
		subs[i] = sub
	}
	assert.Equal(t, 2, bus.Subscribers(TableOrders))

	subs[0].Unsubscribe()
	subs[0].Unsubscribe()
	assert.Equal(t, 1, bus.Subscribers(TableOrders))

	bus.Notify(context.Background(), Change{Table: TableOrders, Op: OpInsert})
	assert.Equal(t, []int{0, 1}, counts)
}

func TestMulti_FansOut(t *testing.T) {
	a, b := NewBus(), NewBus()
	var got int
	_, _ = a.Subscribe(TableOrders, func(Change) { got++ })
	_, _ = b.Subscribe(TableOrders, func(Change) { got++ })

	Multi{a, Nop{}, b}.Notify(context.Background(), Change{Table: TableOrders, Op: OpInsert})
	assert.Equal(t, 2, got)
}
