// Package report renders finalized aggregation results
// Money is fixed to two decimals here and nowhere earlier
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"vendortally/decision/aggregate"
)

// Format selects an output rendering
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, markdown or json)", s)
	}
}

// Render writes the result in the requested format
func Render(w io.Writer, result *aggregate.Result, format Format) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, result)
	case FormatMarkdown:
		return RenderMarkdown(w, result)
	default:
		return RenderTable(w, result)
	}
}

// money formats a sales figure the way every output shows it
func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
