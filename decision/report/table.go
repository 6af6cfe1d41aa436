package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"vendortally/decision/aggregate"
)

// RenderTable writes the vendor and order tables as aligned plain text
func RenderTable(w io.Writer, result *aggregate.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Vendor\tQuantity\tTotal Sales ($)")
	for _, v := range result.Vendors.Entries() {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", v.Name(), v.ItemCount(), money(v.TotalSales()))
		for _, acc := range v.Items() {
			fmt.Fprintf(tw, "    %s\t%d\t\n", acc.Item().DisplayName(), acc.Count())
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Order Id\tVendor\tItem\tQuantity")
	for _, o := range result.Orders.Entries() {
		for _, acc := range o.Items() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", o.ID(), acc.Item().Vendor, acc.Item().DisplayName(), acc.Count())
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(result.Diagnostics) > 0 {
		fmt.Fprintf(w, "\n%d row(s) could not be tallied:\n", len(result.Diagnostics))
		for _, d := range result.Diagnostics {
			fmt.Fprintf(w, "  • row %d: %s\n", d.Row, d.Message)
		}
	}

	return nil
}
