package report

import (
	"fmt"
	"io"
	"strings"

	"vendortally/decision/aggregate"
)

// RenderMarkdown writes the tables as GitHub-flavored markdown
func RenderMarkdown(w io.Writer, result *aggregate.Result) error {
	var b strings.Builder

	b.WriteString("## Vendor Totals\n\n")
	b.WriteString("| Vendor | Quantity | Total Sales ($) |\n")
	b.WriteString("|--------|----------|-----------------|\n")
	for _, v := range result.Vendors.Entries() {
		fmt.Fprintf(&b, "| **%s** | %d | %s |\n", escape(v.Name()), v.ItemCount(), money(v.TotalSales()))
		for _, acc := range v.Items() {
			fmt.Fprintf(&b, "| &nbsp;&nbsp;%s | %d | |\n", escape(acc.Item().DisplayName()), acc.Count())
		}
	}

	b.WriteString("\n## Orders\n\n")
	b.WriteString("| Order Id | Vendor | Item | Quantity |\n")
	b.WriteString("|----------|--------|------|----------|\n")
	for _, o := range result.Orders.Entries() {
		for _, acc := range o.Items() {
			fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
				escape(o.ID()), escape(acc.Item().Vendor), escape(acc.Item().DisplayName()), acc.Count())
		}
	}

	if len(result.Diagnostics) > 0 {
		b.WriteString("\n### ⚠️ Rows not tallied\n\n")
		for _, d := range result.Diagnostics {
			fmt.Fprintf(&b, "- row %d (`%s`): %s\n", d.Row, d.Code, d.Message)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
