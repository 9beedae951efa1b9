package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-cli/internal/normalize"
)

func TestParse(t *testing.T) {
	t.Run("File with valid products", func(t *testing.T) {
		csvData := `product_name,product_price,product_quantity,date_updated
Mouse,$25.99,10,01/02/2020
Keyboard,$45.00,5,12/31/2019`

		products, err := Parse(strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("expected 2 products, got %d", len(products))
		}

		mouse := products[0]
		if mouse.Name != "Mouse" || mouse.PriceCents != 2599 || mouse.Quantity != 10 {
			t.Errorf("unexpected first product %+v", mouse)
		}
		want := time.Date(2020, time.January, 2, 0, 0, 0, 0, time.UTC)
		if !mouse.UpdatedAt.Equal(want) {
			t.Errorf("expected date %v, got %v", want, mouse.UpdatedAt)
		}
		if products[1].Name != "Keyboard" || products[1].PriceCents != 4500 {
			t.Errorf("unexpected second product %+v", products[1])
		}
	})

	t.Run("Columns in a different order", func(t *testing.T) {
		csvData := "date_updated,product_quantity,product_name,product_price\n06/15/2021,3,Lamp,$9.50\n"

		products, err := Parse(strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 1 || products[0].Name != "Lamp" || products[0].PriceCents != 950 || products[0].Quantity != 3 {
			t.Errorf("unexpected products %+v", products)
		}
	})

	t.Run("Malformed price becomes zero", func(t *testing.T) {
		csvData := `product_name,product_price,product_quantity,date_updated
Mouse,free,10,01/02/2020`

		products, err := Parse(strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if products[0].PriceCents != 0 {
			t.Errorf("expected price 0, got %d", products[0].PriceCents)
		}
	})

	t.Run("Malformed quantity aborts the read", func(t *testing.T) {
		csvData := `product_name,product_price,product_quantity,date_updated
Mouse,$1.00,10,01/02/2020
Keyboard,$2.00,many,01/02/2020`

		_, err := Parse(strings.NewReader(csvData))
		var rowErr *RowError
		if !errors.As(err, &rowErr) {
			t.Fatalf("expected RowError, got %v", err)
		}
		if rowErr.Row != 3 || rowErr.Column != ColumnQuantity {
			t.Errorf("expected row 3 quantity error, got %v", rowErr)
		}
		if !errors.Is(err, normalize.ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("Malformed date aborts the read", func(t *testing.T) {
		csvData := `product_name,product_price,product_quantity,date_updated
Mouse,$1.00,10,2020-01-02`

		_, err := Parse(strings.NewReader(csvData))
		if !errors.Is(err, normalize.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
		if !strings.Contains(err.Error(), "row 2") {
			t.Errorf("expected error to mention row 2, got %v", err)
		}
	})

	t.Run("Missing column", func(t *testing.T) {
		csvData := "product_name,product_price,date_updated\nMouse,$1.00,01/02/2020\n"

		if _, err := Parse(strings.NewReader(csvData)); !errors.Is(err, ErrMissingColumn) {
			t.Errorf("expected ErrMissingColumn, got %v", err)
		}
	})

	t.Run("Empty file", func(t *testing.T) {
		if _, err := Parse(strings.NewReader("")); err == nil {
			t.Error("expected an error for an empty file")
		}
	})

	t.Run("Header only", func(t *testing.T) {
		products, err := Parse(strings.NewReader("product_name,product_price,product_quantity,date_updated\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 0 {
			t.Errorf("expected no products, got %d", len(products))
		}
	})
}

func TestReadFile(t *testing.T) {
	t.Run("Existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inventory.csv")
		data := "product_name,product_price,product_quantity,date_updated\nwidget,$5.00,10,01/01/2020\n"
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}

		products, err := ReadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 1 || products[0].Name != "widget" || products[0].PriceCents != 500 || products[0].Quantity != 10 {
			t.Errorf("unexpected products %+v", products)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected os.ErrNotExist, got %v", err)
		}
	})
}
