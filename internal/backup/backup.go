// Package backup writes the product store back out as an inventory CSV.
package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rogerio-castellano/inventory-cli/internal/importer"
	"github.com/rogerio-castellano/inventory-cli/internal/models"
	"github.com/rogerio-castellano/inventory-cli/internal/normalize"
	"github.com/rogerio-castellano/inventory-cli/internal/repo"
)

// Export writes every stored product to path, replacing any existing file,
// and returns how many products were written.
func Export(products repo.ProductRepository, path string) (int, error) {
	all, err := products.GetAll()
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := Write(f, all); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return len(all), nil
}

// Write encodes products with the importer's header, CRLF line endings,
// dollar prices and MM/DD/YYYY dates.
func Write(w io.Writer, products []models.Product) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	if err := writer.Write(importer.Header); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			p.Name,
			normalize.FormatCurrency(p.PriceCents),
			strconv.Itoa(p.Quantity),
			normalize.FormatDate(p.UpdatedAt),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
