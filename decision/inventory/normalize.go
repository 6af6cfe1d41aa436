package inventory

import (
	"errors"
	"fmt"

	"vendortally/decision/table"
)

// ErrLeadingBlank is returned when the first row has nothing to inherit from
var ErrLeadingBlank = errors.New("first inventory row has a blank fill-forward column")

// FillForward replaces blank cells in the given columns with the value carried
// from the nearest preceding row. Rows are modified in place. If the first row
// is blank in any column, nothing is modified and ErrLeadingBlank is returned.
func FillForward(rows []table.Row, columns ...string) error {
	if len(rows) == 0 {
		return nil
	}
	for _, col := range columns {
		if rows[0].Get(col) == "" {
			return fmt.Errorf("column %q: %w", col, ErrLeadingBlank)
		}
	}

	last := make(map[string]string, len(columns))
	for _, row := range rows {
		for _, col := range columns {
			if v := row.Get(col); v != "" {
				last[col] = v
				continue
			}
			row[col] = last[col]
		}
	}
	return nil
}

// Normalize fills forward the category and title columns of an inventory table
func Normalize(t *table.Table, cols Columns) error {
	if err := FillForward(t.Rows, cols.FillForward()...); err != nil {
		return fmt.Errorf("failed to normalize %s: %w", t.Name, err)
	}
	return nil
}
