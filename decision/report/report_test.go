package report

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendortally/decision/aggregate"
	"vendortally/decision/table"
)

func sampleResult(t *testing.T) *aggregate.Result {
	t.Helper()
	inv := []table.Row{
		{"Categories": "Acme", "SKU": "A1", "Title": "Mug", "Price": "10.00", "Option Value 1": "", "Option Value 2": ""},
		{"Categories": "Globex", "SKU": "S-L", "Title": "Shirt", "Price": "16.50", "Option Value 1": "Large", "Option Value 2": ""},
	}
	orders := []table.Row{
		{"Order ID": "1001", "Lineitem sku": "A1", "Lineitem quantity": "3"},
		{"Order ID": "1001", "Lineitem sku": "S-L", "Lineitem quantity": "2"},
		{"Order ID": "1002", "Lineitem sku": "A1", "Lineitem quantity": "2"},
		{"Order ID": "1003", "Lineitem sku": "ZZ9", "Lineitem quantity": "1"},
	}
	return aggregate.NewEngine().WithLogger(zerolog.New(io.Discard)).Aggregate(inv, orders)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":         FormatTable,
		"table":    FormatTable,
		"JSON":     FormatJSON,
		"md":       FormatMarkdown,
		"markdown": FormatMarkdown,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	doc := Build(sampleResult(t))

	assert.Equal(t, 7, doc.ItemCount)
	assert.Equal(t, "83.00", doc.TotalSales)
	require.Len(t, doc.Vendors, 2)

	assert.Equal(t, "Acme", doc.Vendors[0].Vendor)
	assert.Equal(t, 5, doc.Vendors[0].Quantity)
	assert.Equal(t, "50.00", doc.Vendors[0].TotalSales)

	assert.Equal(t, "Globex", doc.Vendors[1].Vendor)
	assert.Equal(t, "33.00", doc.Vendors[1].TotalSales)
	assert.Equal(t, "Shirt (Large)", doc.Vendors[1].Items[0].Name)
	assert.Equal(t, "16.50", doc.Vendors[1].Items[0].UnitPrice)

	require.Len(t, doc.Orders, 2)
	assert.Equal(t, "1001", doc.Orders[0].OrderID)
	assert.Len(t, doc.Orders[0].Items, 2)
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, aggregate.CodeUnknownSKU, doc.Diagnostics[0].Code)
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(t), FormatJSON))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "83.00", doc.TotalSales)
	assert.Len(t, doc.Vendors, 2)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(t), FormatTable))
	out := buf.String()

	assert.Contains(t, out, "Total Sales ($)")
	assert.Contains(t, out, "$50.00")
	assert.Contains(t, out, "$33.00")
	assert.Contains(t, out, "Shirt (Large)")
	assert.Contains(t, out, "Order Id")
	assert.Contains(t, out, "1 row(s) could not be tallied")
	assert.Contains(t, out, "We had some trouble parsing this row")

	assert.Less(t, strings.Index(out, "Acme"), strings.Index(out, "Globex"))
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleResult(t), FormatMarkdown))
	out := buf.String()

	assert.Contains(t, out, "| **Acme** | 5 | $50.00 |")
	assert.Contains(t, out, "| 1001 | Globex | Shirt (Large) | 2 |")
	assert.Contains(t, out, "`UNKNOWN_SKU`")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `A\|B`, escape("A|B"))
}
