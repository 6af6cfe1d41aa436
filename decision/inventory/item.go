package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vendortally/decision/table"
)

// Item is one sellable SKU resolved from a normalized inventory row
type Item struct {
	SKU     string          `json:"sku"`
	Title   string          `json:"title"`
	Price   decimal.Decimal `json:"price"`
	Variant string          `json:"variant"`
	Vendor  string          `json:"vendor"`
}

// DisplayName is the title, suffixed with the variant in parentheses when there is one
func (i *Item) DisplayName() string {
	if i.Variant == "" {
		return i.Title
	}
	return fmt.Sprintf("%s (%s)", i.Title, i.Variant)
}

// NewItem builds an item from a normalized row. An unparseable price yields
// an item priced at zero together with the parse error.
func NewItem(row table.Row, cols Columns) (*Item, error) {
	item := &Item{
		SKU:     row.Get(cols.SKU),
		Title:   row.Get(cols.Title),
		Price:   decimal.Zero,
		Variant: row.Get(cols.OptionOne) + row.Get(cols.OptionTwo),
		Vendor:  row.Get(cols.Category),
	}

	price, err := ParsePrice(row.Get(cols.Price))
	if err != nil {
		return item, fmt.Errorf("sku %s: %w", item.SKU, err)
	}
	item.Price = price
	return item, nil
}

// ParsePrice parses a catalog price such as "12.50", "$12.50" or "1,200.00"
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("blank price")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	return d, nil
}

// Lookup maps SKU to item. It is read-only once built.
type Lookup struct {
	items    map[string]*Item
	warnings []string
}

// BuildLookup indexes one item per row. A duplicated SKU keeps the last row.
// Rows without a SKU cannot be joined and are left out.
func BuildLookup(rows []table.Row, cols Columns) *Lookup {
	l := &Lookup{
		items:    make(map[string]*Item, len(rows)),
		warnings: make([]string, 0),
	}

	for i, row := range rows {
		item, err := NewItem(row, cols)
		if err != nil {
			l.warnings = append(l.warnings, fmt.Sprintf("inventory row %d: %v", i+1, err))
		}
		if item.SKU == "" {
			l.warnings = append(l.warnings, fmt.Sprintf("inventory row %d: blank SKU, row not indexed", i+1))
			continue
		}
		if _, dup := l.items[item.SKU]; dup {
			l.warnings = append(l.warnings, fmt.Sprintf("inventory row %d: duplicate SKU %s replaces earlier row", i+1, item.SKU))
		}
		l.items[item.SKU] = item
	}

	return l
}

// Resolve returns the item for a SKU
func (l *Lookup) Resolve(sku string) (*Item, bool) {
	item, ok := l.items[sku]
	return item, ok
}

// Len returns the number of indexed SKUs
func (l *Lookup) Len() int {
	return len(l.items)
}

// Warnings returns problems noticed while indexing
func (l *Lookup) Warnings() []string {
	return l.warnings
}
