package aggregate

import (
	"github.com/shopspring/decimal"

	"vendortally/decision/inventory"
)

// Accumulator counts units of one item within a vendor or an order
type Accumulator struct {
	item  *inventory.Item
	count int
}

func newAccumulator(item *inventory.Item) *Accumulator {
	return &Accumulator{item: item}
}

func (a *Accumulator) add(qty int) {
	a.count += qty
}

// Item returns the inventory item being counted
func (a *Accumulator) Item() *inventory.Item {
	return a.item
}

// Count returns the accumulated quantity
func (a *Accumulator) Count() int {
	return a.count
}

// Total is unit price times count, computed on each call
func (a *Accumulator) Total() decimal.Decimal {
	return a.item.Price.Mul(decimal.NewFromInt(int64(a.count)))
}
