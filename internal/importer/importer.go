// Package importer reads inventory seed files into normalized products.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rogerio-castellano/inventory-cli/internal/models"
	"github.com/rogerio-castellano/inventory-cli/internal/normalize"
)

const (
	ColumnName     = "product_name"
	ColumnPrice    = "product_price"
	ColumnQuantity = "product_quantity"
	ColumnDate     = "date_updated"
)

// Header is the column order used when writing inventory CSV files.
var Header = []string{ColumnName, ColumnPrice, ColumnQuantity, ColumnDate}

var ErrMissingColumn = errors.New("missing column")

// RowError reports the row and column a value could not be parsed from.
// Row numbers count the header as row 1.
type RowError struct {
	Row    int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ReadFile parses the CSV file at path.
func ReadFile(path string) ([]models.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a header-keyed inventory CSV. Prices that fail to parse become
// zero; quantities and dates that fail to parse abort the whole read.
func Parse(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("invalid CSV header: empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range Header {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var products []models.Product
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		quantity, err := normalize.ParseQuantity(record[index[ColumnQuantity]])
		if err != nil {
			return nil, &RowError{Row: rowNum, Column: ColumnQuantity, Err: err}
		}
		updated, err := normalize.ParseDate(record[index[ColumnDate]])
		if err != nil {
			return nil, &RowError{Row: rowNum, Column: ColumnDate, Err: err}
		}

		products = append(products, models.Product{
			Name:       record[index[ColumnName]],
			PriceCents: normalize.CurrencyToCents(record[index[ColumnPrice]]),
			Quantity:   quantity,
			UpdatedAt:  updated,
		})
	}
	return products, nil
}
