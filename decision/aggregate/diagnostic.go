package aggregate

import (
	"fmt"

	"vendortally/decision/table"
)

// Code classifies why an order row was left out of the totals
type Code string

const (
	CodeUnknownSKU      Code = "UNKNOWN_SKU"
	CodeMissingVendor   Code = "MISSING_VENDOR"
	CodeInvalidQuantity Code = "INVALID_QUANTITY"
)

// Diagnostic is a human-readable report about one unresolved order row
type Diagnostic struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Row     int    `json:"row"` // 1-based position in the order table
	SKU     string `json:"sku,omitempty"`
	OrderID string `json:"order_id,omitempty"`
}

func (d Diagnostic) String() string {
	return d.Message
}

func newUnknownSKU(row int, raw table.Row, cols OrderColumns) Diagnostic {
	return Diagnostic{
		Code:    CodeUnknownSKU,
		Message: fmt.Sprintf("We had some trouble parsing this row: %s", raw),
		Row:     row,
		SKU:     raw.Get(cols.SKU),
		OrderID: raw.Get(cols.OrderID),
	}
}

func newMissingVendor(row int, raw table.Row, cols OrderColumns, vendor string) Diagnostic {
	return Diagnostic{
		Code:    CodeMissingVendor,
		Message: fmt.Sprintf("We had some trouble parsing this vendor: %s", vendor),
		Row:     row,
		SKU:     raw.Get(cols.SKU),
		OrderID: raw.Get(cols.OrderID),
	}
}

func newInvalidQuantity(row int, raw table.Row, cols OrderColumns) Diagnostic {
	return Diagnostic{
		Code:    CodeInvalidQuantity,
		Message: fmt.Sprintf("We had some trouble parsing this quantity: %s", raw),
		Row:     row,
		SKU:     raw.Get(cols.SKU),
		OrderID: raw.Get(cols.OrderID),
	}
}
