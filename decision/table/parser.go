package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const utf8BOM = "\ufeff"

// ErrEmptyInput is returned when a CSV stream has no header line
var ErrEmptyInput = errors.New("input has no header row")

// Parser reads header-first CSV exports into Tables
type Parser struct {
	// Comma is the field delimiter
	Comma rune

	// SkipBlankRows drops rows whose cells are all empty
	SkipBlankRows bool
}

// NewParser creates a CSV parser with export defaults
func NewParser() *Parser {
	return &Parser{
		Comma:         ',',
		SkipBlankRows: true,
	}
}

// ParseFile parses a CSV file from disk
func (p *Parser) ParseFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return p.Parse(filepath.Base(path), f)
}

// ParseBytes parses CSV content held in memory
func (p *Parser) ParseBytes(name string, data []byte) (*Table, error) {
	return p.Parse(name, bytes.NewReader(data))
}

// Parse parses CSV content from a reader. The first record is the header.
func (p *Parser) Parse(name string, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = p.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyInput)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{
		Name:    name,
		Columns: header,
		Rows:    make([]Row, 0),
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if p.SkipBlankRows && isBlank(record) {
			continue
		}
		t.Rows = append(t.Rows, zip(header, record))
	}

	return t, nil
}

// zip pairs header names with cells; short records leave trailing columns blank
func zip(header, record []string) Row {
	row := make(Row, len(header))
	for i, col := range header {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
