package inventory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendortally/decision/table"
)

func TestFillForward(t *testing.T) {
	rows := []table.Row{
		{"Categories": "Acme", "Title": "Shirt", "SKU": "S-RED"},
		{"Categories": "", "Title": "", "SKU": "S-BLU"},
		{"Categories": "", "Title": "", "SKU": "S-GRN"},
		{"Categories": "Globex", "Title": "Hat", "SKU": "H-1"},
		{"Categories": "", "Title": "Scarf", "SKU": "SC-1"},
	}

	require.NoError(t, FillForward(rows, "Categories", "Title"))

	assert.Equal(t, "Acme", rows[1]["Categories"])
	assert.Equal(t, "Shirt", rows[1]["Title"])
	assert.Equal(t, "Acme", rows[2]["Categories"])
	assert.Equal(t, "Shirt", rows[2]["Title"])
	assert.Equal(t, "Globex", rows[4]["Categories"])
	assert.Equal(t, "Scarf", rows[4]["Title"])
}

func TestFillForwardIsNoOpOnPopulatedRows(t *testing.T) {
	rows := []table.Row{
		{"Categories": "Acme", "Title": "Mug"},
		{"Categories": "Globex", "Title": "Hat"},
	}
	before := []table.Row{rows[0].Clone(), rows[1].Clone()}

	require.NoError(t, FillForward(rows, "Categories", "Title"))
	assert.Equal(t, before, rows)

	require.NoError(t, FillForward(rows, "Categories", "Title"))
	assert.Equal(t, before, rows)
}

func TestFillForwardLeadingBlank(t *testing.T) {
	rows := []table.Row{
		{"Categories": "Acme", "Title": ""},
		{"Categories": "", "Title": "Mug"},
	}

	err := FillForward(rows, "Categories", "Title")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLeadingBlank))
	assert.Contains(t, err.Error(), `"Title"`)
	assert.Equal(t, "", rows[1]["Categories"], "rows must be left untouched")
}

func TestFillForwardEmpty(t *testing.T) {
	assert.NoError(t, FillForward(nil, "Categories"))
}

func TestNormalize(t *testing.T) {
	tbl := &table.Table{
		Name: "inventory.csv",
		Rows: []table.Row{
			{"Categories": "Acme", "Title": "Mug"},
			{"Categories": "", "Title": ""},
		},
	}
	require.NoError(t, Normalize(tbl, DefaultColumns()))
	assert.Equal(t, "Acme", tbl.Rows[1]["Categories"])
	assert.Equal(t, "Mug", tbl.Rows[1]["Title"])

	bad := &table.Table{Name: "inventory.csv", Rows: []table.Row{{"Categories": "", "Title": "Mug"}}}
	err := Normalize(bad, DefaultColumns())
	assert.ErrorIs(t, err, ErrLeadingBlank)
	assert.Contains(t, err.Error(), "inventory.csv")
}
