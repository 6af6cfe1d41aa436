package aggregate

// OrderColumns names the order export headers the engine reads
type OrderColumns struct {
	SKU      string `json:"sku"`
	Quantity string `json:"quantity"`
	OrderID  string `json:"order_id"`
}

// DefaultOrderColumns returns the headers of the storefront order export
func DefaultOrderColumns() OrderColumns {
	return OrderColumns{
		SKU:      "Lineitem sku",
		Quantity: "Lineitem quantity",
		OrderID:  "Order ID",
	}
}

// Required lists the columns that must be present in the header
func (c OrderColumns) Required() []string {
	return []string{c.SKU, c.Quantity, c.OrderID}
}
