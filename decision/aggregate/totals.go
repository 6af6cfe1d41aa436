package aggregate

import (
	"github.com/shopspring/decimal"

	"vendortally/decision/inventory"
)

// =============================================================================
// VENDOR TOTALS
// =============================================================================

// VendorEntry holds one accumulator per distinct SKU sold by a vendor
type VendorEntry struct {
	name  string
	items *orderedMap[*Accumulator]
}

func newVendorEntry(name string) *VendorEntry {
	return &VendorEntry{name: name, items: newOrderedMap[*Accumulator]()}
}

// Name is the vendor label
func (v *VendorEntry) Name() string {
	return v.name
}

// Items returns the accumulators in discovery order
func (v *VendorEntry) Items() []*Accumulator {
	return v.items.orderedValues()
}

// Item returns the accumulator for a SKU
func (v *VendorEntry) Item(sku string) (*Accumulator, bool) {
	return v.items.get(sku)
}

// ItemCount sums the counts of every accumulator
func (v *VendorEntry) ItemCount() int {
	return sumCounts(v.items.orderedValues())
}

// TotalSales sums price times count over every accumulator
func (v *VendorEntry) TotalSales() decimal.Decimal {
	return sumTotals(v.items.orderedValues())
}

// VendorTotals maps vendor label to its entry, in discovery order
type VendorTotals struct {
	entries *orderedMap[*VendorEntry]
}

func newVendorTotals() *VendorTotals {
	return &VendorTotals{entries: newOrderedMap[*VendorEntry]()}
}

func (t *VendorTotals) add(item *inventory.Item, qty int) {
	entry := t.entries.getOrCreate(item.Vendor, func() *VendorEntry {
		return newVendorEntry(item.Vendor)
	})
	acc := entry.items.getOrCreate(item.SKU, func() *Accumulator {
		return newAccumulator(item)
	})
	acc.add(qty)
}

// Names returns the vendor labels in discovery order
func (t *VendorTotals) Names() []string {
	return t.entries.orderedKeys()
}

// Get returns the entry for a vendor
func (t *VendorTotals) Get(vendor string) (*VendorEntry, bool) {
	return t.entries.get(vendor)
}

// Entries returns every vendor entry in discovery order
func (t *VendorTotals) Entries() []*VendorEntry {
	return t.entries.orderedValues()
}

// Len returns the number of vendors
func (t *VendorTotals) Len() int {
	return t.entries.len()
}

// ItemCount is the quantity summed over all vendors
func (t *VendorTotals) ItemCount() int {
	total := 0
	for _, e := range t.entries.orderedValues() {
		total += e.ItemCount()
	}
	return total
}

// TotalSales is the sales value summed over all vendors
func (t *VendorTotals) TotalSales() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.entries.orderedValues() {
		total = total.Add(e.TotalSales())
	}
	return total
}

// =============================================================================
// ORDER TOTALS
// =============================================================================

// OrderEntry holds one accumulator per distinct SKU within an order
type OrderEntry struct {
	id    string
	items *orderedMap[*Accumulator]
}

func newOrderEntry(id string) *OrderEntry {
	return &OrderEntry{id: id, items: newOrderedMap[*Accumulator]()}
}

// ID is the order identifier
func (o *OrderEntry) ID() string {
	return o.id
}

// Items returns the accumulators in line order
func (o *OrderEntry) Items() []*Accumulator {
	return o.items.orderedValues()
}

// Item returns the accumulator for a SKU
func (o *OrderEntry) Item(sku string) (*Accumulator, bool) {
	return o.items.get(sku)
}

// ItemCount sums the counts of every accumulator
func (o *OrderEntry) ItemCount() int {
	return sumCounts(o.items.orderedValues())
}

// OrderTotals maps order identifier to its entry, in discovery order
type OrderTotals struct {
	entries *orderedMap[*OrderEntry]
}

func newOrderTotals() *OrderTotals {
	return &OrderTotals{entries: newOrderedMap[*OrderEntry]()}
}

func (t *OrderTotals) add(orderID string, item *inventory.Item, qty int) {
	entry := t.entries.getOrCreate(orderID, func() *OrderEntry {
		return newOrderEntry(orderID)
	})
	acc := entry.items.getOrCreate(item.SKU, func() *Accumulator {
		return newAccumulator(item)
	})
	acc.add(qty)
}

// IDs returns the order identifiers in discovery order
func (t *OrderTotals) IDs() []string {
	return t.entries.orderedKeys()
}

// Get returns the entry for an order
func (t *OrderTotals) Get(orderID string) (*OrderEntry, bool) {
	return t.entries.get(orderID)
}

// Entries returns every order entry in discovery order
func (t *OrderTotals) Entries() []*OrderEntry {
	return t.entries.orderedValues()
}

// Len returns the number of orders
func (t *OrderTotals) Len() int {
	return t.entries.len()
}

// ItemCount is the quantity summed over all orders
func (t *OrderTotals) ItemCount() int {
	total := 0
	for _, e := range t.entries.orderedValues() {
		total += e.ItemCount()
	}
	return total
}

func sumCounts(accs []*Accumulator) int {
	total := 0
	for _, a := range accs {
		total += a.Count()
	}
	return total
}

func sumTotals(accs []*Accumulator) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accs {
		total = total.Add(a.Total())
	}
	return total
}
