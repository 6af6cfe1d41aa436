// Package inventory turns inventory catalog rows into SKU-addressable items
// Multi-variant products are exported with blank parent fields; Normalize resolves them
package inventory

// Columns names the inventory export headers the pipeline reads
type Columns struct {
	Category  string `json:"category"`
	SKU       string `json:"sku"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	OptionOne string `json:"option_one"`
	OptionTwo string `json:"option_two"`
}

// DefaultColumns returns the headers of the storefront inventory export
func DefaultColumns() Columns {
	return Columns{
		Category:  "Categories",
		SKU:       "SKU",
		Title:     "Title",
		Price:     "Price",
		OptionOne: "Option Value 1",
		OptionTwo: "Option Value 2",
	}
}

// Required lists the columns that must be present in the header
func (c Columns) Required() []string {
	return []string{c.Category, c.SKU, c.Title, c.Price, c.OptionOne, c.OptionTwo}
}

// FillForward lists the columns inherited from the previous row when blank
func (c Columns) FillForward() []string {
	return []string{c.Category, c.Title}
}
