package main

import (
	"context"
	"fmt"
	"strings"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v2"

	"vendortally/db/clickhouse"
	"vendortally/db/postgres"
	"vendortally/db/s3csv"
	"vendortally/decision/table"
)

// sourceResolver turns --orders / --inventory values into table sources,
// opening each backing store at most once
type sourceResolver struct {
	c *cli.Context

	clickhouse *clickhouse.Store
	postgres   *postgres.Store
	s3         *awss3.Client
}

func newSourceResolver(c *cli.Context) *sourceResolver {
	return &sourceResolver{c: c}
}

// Resolve maps a source reference to its table.Source
func (r *sourceResolver) Resolve(ctx context.Context, ref string) (table.Source, error) {
	switch {
	case strings.HasPrefix(ref, "s3://"):
		client, err := r.s3Client(ctx)
		if err != nil {
			return nil, err
		}
		return s3csv.NewSource(client, ref)

	case strings.HasPrefix(ref, "clickhouse://"):
		store, err := r.clickhouseStore()
		if err != nil {
			return nil, err
		}
		return store.Source(strings.TrimPrefix(ref, "clickhouse://")), nil

	case strings.HasPrefix(ref, "postgres://"):
		store, err := r.postgresStore()
		if err != nil {
			return nil, err
		}
		return store.Source(strings.TrimPrefix(ref, "postgres://")), nil

	default:
		return table.NewFileSource(ref), nil
	}
}

// Close releases any opened store
func (r *sourceResolver) Close() {
	if r.clickhouse != nil {
		r.clickhouse.Close()
	}
	if r.postgres != nil {
		r.postgres.Close()
	}
}

func (r *sourceResolver) s3Client(ctx context.Context) (*awss3.Client, error) {
	if r.s3 == nil {
		client, err := s3csv.NewClient(ctx, r.c.String("aws-region"))
		if err != nil {
			return nil, err
		}
		r.s3 = client
	}
	return r.s3, nil
}

func (r *sourceResolver) clickhouseStore() (*clickhouse.Store, error) {
	if r.clickhouse == nil {
		store, err := clickhouse.NewStore(&clickhouse.Config{
			Host:     r.c.String("clickhouse-host"),
			Port:     r.c.Int("clickhouse-port"),
			Database: r.c.String("clickhouse-database"),
			Username: r.c.String("clickhouse-user"),
			Password: r.c.String("clickhouse-password"),
		})
		if err != nil {
			return nil, err
		}
		r.clickhouse = store
	}
	return r.clickhouse, nil
}

func (r *sourceResolver) postgresStore() (*postgres.Store, error) {
	if r.postgres == nil {
		dsn := r.c.String("postgres-dsn")
		if dsn == "" {
			return nil, fmt.Errorf("postgres:// sources need --postgres-dsn")
		}
		store, err := postgres.NewStore(dsn)
		if err != nil {
			return nil, err
		}
		r.postgres = store
	}
	return r.postgres, nil
}
