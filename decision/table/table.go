// Package table provides the tabular input model for the tally pipeline
// Every input (CSV export, database table, S3 object) is materialized as a Table
package table

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Row is a single record keyed by column name
type Row map[string]string

// Get returns the cell for a column, or "" when the column is absent
func (r Row) Get(column string) string {
	return r[column]
}

// String renders the row as JSON for diagnostics
func (r Row) String() string {
	data, err := json.Marshal(map[string]string(r))
	if err != nil {
		return fmt.Sprintf("%v", map[string]string(r))
	}
	return string(data)
}

// Clone returns an independent copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of rows sharing one header
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// MissingColumnsError reports required columns absent from a table header
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s is missing required columns: %s", e.Table, strings.Join(e.Columns, ", "))
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the header contains a column
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Require checks that every column is present in the header
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Table: t.Name, Columns: missing}
	}
	return nil
}

// Clone deep-copies the table so callers can normalize without touching the source
func (t *Table) Clone() *Table {
	out := &Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}
