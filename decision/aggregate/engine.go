// Package aggregate provides the join-and-aggregate engine
// Order lines are joined to inventory items by SKU and summed per vendor and per order
package aggregate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"vendortally/decision/inventory"
	"vendortally/decision/table"
)

// Engine joins order rows to inventory items and accumulates the totals
type Engine struct {
	inventoryColumns inventory.Columns
	orderColumns     OrderColumns
	logger           zerolog.Logger
	now              func() time.Time
}

// NewEngine creates an engine reading the default export columns
func NewEngine() *Engine {
	return &Engine{
		inventoryColumns: inventory.DefaultColumns(),
		orderColumns:     DefaultOrderColumns(),
		logger:           log.Logger,
		now:              time.Now,
	}
}

// WithColumns overrides the column names of both tables
func (e *Engine) WithColumns(inv inventory.Columns, orders OrderColumns) *Engine {
	e.inventoryColumns = inv
	e.orderColumns = orders
	return e
}

// WithLogger replaces the global logger
func (e *Engine) WithLogger(logger zerolog.Logger) *Engine {
	e.logger = logger
	return e
}

// Result is the finalized output of one run. Nothing in it is mutated after
// Aggregate returns.
type Result struct {
	RunID       uuid.UUID     `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Vendors     *VendorTotals `json:"-"`
	Orders      *OrderTotals  `json:"-"`
	Diagnostics []Diagnostic  `json:"diagnostics"`
	Warnings    []string      `json:"warnings"`
	Stats       Stats         `json:"stats"`
}

// Stats counts what happened to the input rows
type Stats struct {
	InventoryRows int `json:"inventory_rows"`
	ItemsIndexed  int `json:"items_indexed"`
	OrderRows     int `json:"order_rows"`
	RowsResolved  int `json:"rows_resolved"`
	RowsSkipped   int `json:"rows_skipped"`
}

// Run loads both tables, normalizes the inventory and aggregates the orders.
// Errors are precondition failures; row-level problems become diagnostics.
func (e *Engine) Run(ctx context.Context, inventorySrc, ordersSrc table.Source) (*Result, error) {
	inv, orders, err := table.LoadPair(ctx, inventorySrc, ordersSrc)
	if err != nil {
		return nil, err
	}

	if err := inv.Require(e.inventoryColumns.Required()...); err != nil {
		return nil, err
	}
	if err := orders.Require(e.orderColumns.Required()...); err != nil {
		return nil, err
	}

	if err := inventory.Normalize(inv, e.inventoryColumns); err != nil {
		return nil, err
	}

	return e.Aggregate(inv.Rows, orders.Rows), nil
}

// Aggregate joins normalized inventory rows with order rows. It always
// completes and returns whatever could be resolved.
func (e *Engine) Aggregate(inventoryRows, orderRows []table.Row) *Result {
	lookup := inventory.BuildLookup(inventoryRows, e.inventoryColumns)

	vendors := newVendorTotals()
	orders := newOrderTotals()
	result := &Result{
		RunID:       uuid.New(),
		GeneratedAt: e.now(),
		Diagnostics: make([]Diagnostic, 0),
		Warnings:    append([]string(nil), lookup.Warnings()...),
		Stats: Stats{
			InventoryRows: len(inventoryRows),
			ItemsIndexed:  lookup.Len(),
			OrderRows:     len(orderRows),
		},
	}

	for i, raw := range orderRows {
		rowNum := i + 1
		cols := e.orderColumns

		item, ok := lookup.Resolve(raw.Get(cols.SKU))
		if !ok {
			e.reject(result, newUnknownSKU(rowNum, raw, cols))
			continue
		}

		if item.Vendor == "" {
			e.reject(result, newMissingVendor(rowNum, raw, cols, item.Vendor))
			continue
		}

		qty, err := parseQuantity(raw.Get(cols.Quantity))
		if err != nil {
			e.reject(result, newInvalidQuantity(rowNum, raw, cols))
			continue
		}

		vendors.add(item, qty)
		orders.add(raw.Get(cols.OrderID), item, qty)
		result.Stats.RowsResolved++
	}

	result.Vendors = vendors
	result.Orders = orders

	e.logger.Info().
		Str("run_id", result.RunID.String()).
		Int("inventory_rows", result.Stats.InventoryRows).
		Int("items_indexed", result.Stats.ItemsIndexed).
		Int("order_rows", result.Stats.OrderRows).
		Int("resolved", result.Stats.RowsResolved).
		Int("skipped", result.Stats.RowsSkipped).
		Int("vendors", vendors.Len()).
		Int("orders", orders.Len()).
		Msg("Aggregation complete")

	return result
}

func (e *Engine) reject(result *Result, d Diagnostic) {
	result.Diagnostics = append(result.Diagnostics, d)
	result.Stats.RowsSkipped++
	e.logger.Warn().
		Str("code", string(d.Code)).
		Int("row", d.Row).
		Str("sku", d.SKU).
		Str("order_id", d.OrderID).
		Msg(d.Message)
}

func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", raw, err)
	}
	return qty, nil
}
