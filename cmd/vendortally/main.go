// vendortally - per-vendor and per-order sales totals from storefront exports
//
// Usage:
//   vendortally report --orders orders.csv --inventory inventory.csv [options]
//   vendortally serve --port 8080
//   vendortally columns
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"vendortally/api"
	"vendortally/decision/aggregate"
	"vendortally/decision/inventory"
	"vendortally/decision/report"
	"vendortally/decision/table"
	"vendortally/pkg/platform"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes for scripted use
const (
	ExitError       = 1
	ExitDiagnostics = 3
)

func main() {
	app := &cli.App{
		Name:    "vendortally",
		Usage:   "Per-vendor sales totals and per-order item listings from order and inventory exports",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"VENDORTALLY_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "log-json",
				Usage:   "Emit JSON logs instead of console output",
				EnvVars: []string{"VENDORTALLY_LOG_JSON"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-host",
				Value:   "localhost",
				Usage:   "ClickHouse host",
				EnvVars: []string{"CLICKHOUSE_HOST"},
			},
			&cli.IntFlag{
				Name:    "clickhouse-port",
				Value:   9000,
				Usage:   "ClickHouse native port",
				EnvVars: []string{"CLICKHOUSE_PORT"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-database",
				Value:   "vendortally",
				Usage:   "ClickHouse database",
				EnvVars: []string{"CLICKHOUSE_DATABASE"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-user",
				Value:   "default",
				Usage:   "ClickHouse user",
				EnvVars: []string{"CLICKHOUSE_USER"},
			},
			&cli.StringFlag{
				Name:    "clickhouse-password",
				Usage:   "ClickHouse password",
				EnvVars: []string{"CLICKHOUSE_PASSWORD"},
			},
			&cli.StringFlag{
				Name:    "postgres-dsn",
				Usage:   "PostgreSQL DSN for postgres:// table sources",
				EnvVars: []string{"POSTGRES_DSN"},
			},
			&cli.StringFlag{
				Name:    "aws-region",
				Usage:   "AWS region for s3:// sources",
				EnvVars: []string{"AWS_REGION"},
			},
		},

		Before: func(c *cli.Context) error {
			platform.InitLogger(c.String("log-level"), !c.Bool("log-json"))
			return nil
		},

		Commands: []*cli.Command{
			reportCommand(),
			serveCommand(),
			columnsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

// =============================================================================
// REPORT COMMAND
// =============================================================================

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Join the order and inventory exports and print vendor and order totals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "orders",
				Aliases: []string{"o"},
				Usage:   "Order export: file path, s3://bucket/key, clickhouse://table or postgres://table",
			},
			&cli.StringFlag{
				Name:    "inventory",
				Aliases: []string{"i"},
				Usage:   "Inventory export: file path, s3://bucket/key, clickhouse://table or postgres://table",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, markdown, json)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit with code 3 when any order row could not be tallied",
			},
		},
		Action: runReport,
	}
}

func runReport(c *cli.Context) error {
	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	if c.String("orders") == "" || c.String("inventory") == "" {
		return table.ErrMissingInput
	}

	resolver := newSourceResolver(c)
	defer resolver.Close()

	inventorySrc, err := resolver.Resolve(ctx, c.String("inventory"))
	if err != nil {
		return fmt.Errorf("inventory source: %w", err)
	}
	ordersSrc, err := resolver.Resolve(ctx, c.String("orders"))
	if err != nil {
		return fmt.Errorf("orders source: %w", err)
	}

	log.Debug().
		Str("inventory", inventorySrc.Describe()).
		Str("orders", ordersSrc.Describe()).
		Msg("Loading tables")

	result, err := aggregate.NewEngine().Run(ctx, inventorySrc, ordersSrc)
	if err != nil {
		return err
	}

	if err := report.Render(os.Stdout, result, format); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if c.Bool("strict") && len(result.Diagnostics) > 0 {
		return cli.Exit(fmt.Sprintf("%d order row(s) could not be tallied", len(result.Diagnostics)), ExitDiagnostics)
	}
	return nil
}

// =============================================================================
// SERVE COMMAND (API SERVER)
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the vendortally API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "API server port",
				EnvVars: []string{"VENDORTALLY_PORT"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "Require this X-API-Key on /api/v1 routes",
				EnvVars: []string{"VENDORTALLY_API_KEY"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg := api.DefaultConfig()
			cfg.Port = c.Int("port")
			cfg.APIKey = c.String("api-key")
			return api.NewServer(cfg, version).StartWithGracefulShutdown()
		},
	}
}

// =============================================================================
// COLUMNS COMMAND
// =============================================================================

func columnsCommand() *cli.Command {
	return &cli.Command{
		Name:  "columns",
		Usage: "List the columns each export must contain",
		Action: func(c *cli.Context) error {
			inv := inventory.DefaultColumns()
			ord := aggregate.DefaultOrderColumns()
			fmt.Println("Inventory export:")
			for _, col := range inv.Required() {
				fmt.Printf("  - %s\n", col)
			}
			fmt.Println("Order export:")
			for _, col := range ord.Required() {
				fmt.Printf("  - %s\n", col)
			}
			return nil
		},
	}
}
