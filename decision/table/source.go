package table

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrMissingInput is the precondition failure when either input table is absent
var ErrMissingInput = errors.New("please upload both files before continuing")

// Source supplies one materialized table
type Source interface {
	// Describe names the source for logs and errors
	Describe() string

	// Load fetches and parses the table
	Load(ctx context.Context) (*Table, error)
}

// FileSource loads a CSV file from the local filesystem
type FileSource struct {
	Path   string
	Parser *Parser
}

// NewFileSource creates a source for a local CSV file
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, Parser: NewParser()}
}

func (s *FileSource) Describe() string {
	return "file:" + s.Path
}

func (s *FileSource) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Parser.ParseFile(s.Path)
}

// BytesSource wraps CSV content already held in memory, e.g. an uploaded file
type BytesSource struct {
	Name   string
	Data   []byte
	Parser *Parser
}

// NewBytesSource creates a source over in-memory CSV content
func NewBytesSource(name string, data []byte) *BytesSource {
	return &BytesSource{Name: name, Data: data, Parser: NewParser()}
}

func (s *BytesSource) Describe() string {
	return "upload:" + s.Name
}

func (s *BytesSource) Load(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.Parser.ParseBytes(s.Name, s.Data)
}

// LoadPair loads the inventory and order tables concurrently.
// A nil source fails with ErrMissingInput before anything is loaded.
func LoadPair(ctx context.Context, inventory, orders Source) (*Table, *Table, error) {
	if inventory == nil || orders == nil {
		return nil, nil, ErrMissingInput
	}

	var invTable, orderTable *Table
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := inventory.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load inventory from %s: %w", inventory.Describe(), err)
		}
		invTable = t
		return nil
	})
	g.Go(func() error {
		t, err := orders.Load(gctx)
		if err != nil {
			return fmt.Errorf("failed to load orders from %s: %w", orders.Describe(), err)
		}
		orderTable = t
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return invTable, orderTable, nil
}
