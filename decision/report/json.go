package report

import (
	"encoding/json"
	"io"
	"time"

	"vendortally/decision/aggregate"
)

// Document is the serialized form of a result
type Document struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt string                 `json:"generated_at"`
	ItemCount   int                    `json:"item_count"`
	TotalSales  string                 `json:"total_sales"`
	Vendors     []VendorDocument       `json:"vendors"`
	Orders      []OrderDocument        `json:"orders"`
	Diagnostics []aggregate.Diagnostic `json:"diagnostics"`
	Warnings    []string               `json:"warnings,omitempty"`
	Stats       aggregate.Stats        `json:"stats"`
}

// VendorDocument is one vendor with its item breakdown
type VendorDocument struct {
	Vendor     string         `json:"vendor"`
	Quantity   int            `json:"quantity"`
	TotalSales string         `json:"total_sales"`
	Items      []ItemDocument `json:"items"`
}

// OrderDocument is one order with its items
type OrderDocument struct {
	OrderID string         `json:"order_id"`
	Items   []ItemDocument `json:"items"`
}

// ItemDocument is one accumulator
type ItemDocument struct {
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Vendor    string `json:"vendor"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// Build converts a result into its serializable document
func Build(result *aggregate.Result) Document {
	doc := Document{
		RunID:       result.RunID.String(),
		GeneratedAt: result.GeneratedAt.Format(time.RFC3339),
		ItemCount:   result.Vendors.ItemCount(),
		TotalSales:  result.Vendors.TotalSales().StringFixed(2),
		Vendors:     make([]VendorDocument, 0, result.Vendors.Len()),
		Orders:      make([]OrderDocument, 0, result.Orders.Len()),
		Diagnostics: result.Diagnostics,
		Warnings:    result.Warnings,
		Stats:       result.Stats,
	}

	for _, v := range result.Vendors.Entries() {
		doc.Vendors = append(doc.Vendors, VendorDocument{
			Vendor:     v.Name(),
			Quantity:   v.ItemCount(),
			TotalSales: v.TotalSales().StringFixed(2),
			Items:      itemDocuments(v.Items()),
		})
	}

	for _, o := range result.Orders.Entries() {
		doc.Orders = append(doc.Orders, OrderDocument{
			OrderID: o.ID(),
			Items:   itemDocuments(o.Items()),
		})
	}

	return doc
}

func itemDocuments(accs []*aggregate.Accumulator) []ItemDocument {
	out := make([]ItemDocument, len(accs))
	for i, a := range accs {
		out[i] = ItemDocument{
			SKU:       a.Item().SKU,
			Name:      a.Item().DisplayName(),
			Vendor:    a.Item().Vendor,
			Quantity:  a.Count(),
			UnitPrice: a.Item().Price.StringFixed(2),
			Total:     a.Total().StringFixed(2),
		}
	}
	return out
}

// RenderJSON writes the document as indented JSON
func RenderJSON(w io.Writer, result *aggregate.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Build(result))
}
