// Package inventory implements the upsert workflow shared by the startup
// import and the interactive Add screen.
package inventory

import (
	"errors"
	"fmt"

	"github.com/rogerio-castellano/inventory-cli/internal/config"
	"github.com/rogerio-castellano/inventory-cli/internal/importer"
	"github.com/rogerio-castellano/inventory-cli/internal/models"
	"github.com/rogerio-castellano/inventory-cli/internal/repo"
	"go.uber.org/zap"
)

// Outcome tells whether an upsert inserted a new row or updated an existing one.
type Outcome int

const (
	Created Outcome = iota + 1
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	}
	return "unknown"
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Created int
	Updated int
	// Skipped counts rows left unread after a legacy-mode conflict.
	Skipped int
}

type Service struct {
	products     repo.ProductRepository
	log          *zap.Logger
	conflictMode string
}

// NewService builds a Service. An empty conflictMode means config.ConflictLegacy.
func NewService(products repo.ProductRepository, log *zap.Logger, conflictMode string) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if conflictMode == "" {
		conflictMode = config.ConflictLegacy
	}
	return &Service{products: products, log: log, conflictMode: conflictMode}
}

// Upsert inserts candidate, or on a name conflict copies its price and
// quantity onto the existing record. ID, name and UpdatedAt of an existing
// record are left as they are.
func (s *Service) Upsert(candidate models.Product) (models.Product, Outcome, error) {
	created, err := s.products.Create(candidate)
	if err == nil {
		return created, Created, nil
	}
	if !errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return models.Product{}, 0, fmt.Errorf("create %q: %w", candidate.Name, err)
	}

	updated, err := s.overwrite(candidate.Name, candidate.PriceCents, candidate.Quantity)
	if err != nil {
		return models.Product{}, 0, err
	}
	return updated, Updated, nil
}

func (s *Service) overwrite(name string, priceCents, quantity int) (models.Product, error) {
	existing, err := s.products.GetByName(name)
	if err != nil {
		return models.Product{}, fmt.Errorf("load %q: %w", name, err)
	}
	existing.PriceCents = priceCents
	existing.Quantity = quantity

	updated, err := s.products.Update(existing)
	if err != nil {
		return models.Product{}, fmt.Errorf("update %q: %w", name, err)
	}
	s.log.Debug("resolved name conflict",
		zap.String("name", name),
		zap.Int("id", updated.ID),
		zap.Int("price_cents", priceCents),
		zap.Int("quantity", quantity),
	)
	return updated, nil
}

// Import writes records to the store using the configured conflict mode.
func (s *Service) Import(records []models.Product) (ImportResult, error) {
	if s.conflictMode == config.ConflictFixed {
		return s.importFixed(records)
	}
	return s.importLegacy(records)
}

func (s *Service) importFixed(records []models.Product) (ImportResult, error) {
	var res ImportResult
	for _, rec := range records {
		_, outcome, err := s.Upsert(rec)
		if err != nil {
			return res, err
		}
		if outcome == Created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return res, nil
}

// importLegacy keeps the historical import behavior: rows are created in
// order until the first name conflict. That conflict is resolved from the
// last iterated row with its already-normalized price scaled by 100 a second
// time, and the remaining rows are not imported.
func (s *Service) importLegacy(records []models.Product) (ImportResult, error) {
	var res ImportResult
	for i, rec := range records {
		_, err := s.products.Create(rec)
		if err == nil {
			res.Created++
			continue
		}
		if !errors.Is(err, repo.ErrDuplicatedValueUnique) {
			return res, fmt.Errorf("create %q: %w", rec.Name, err)
		}

		if _, err := s.overwrite(rec.Name, rec.PriceCents*100, rec.Quantity); err != nil {
			return res, err
		}
		res.Updated++
		res.Skipped = len(records) - i - 1
		s.log.Warn("import stopped at first duplicate name",
			zap.String("name", rec.Name),
			zap.Int("row", i+2),
			zap.Int("skipped", res.Skipped),
		)
		break
	}
	return res, nil
}

// Seed optionally clears the store and then imports the CSV at path when the
// store holds no products. Parse errors are returned unchanged.
func (s *Service) Seed(path string, reset bool) (ImportResult, error) {
	if reset {
		if err := s.products.DeleteAll(); err != nil {
			return ImportResult{}, fmt.Errorf("clear products: %w", err)
		}
	}

	records, err := importer.ReadFile(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read %s: %w", path, err)
	}

	n, err := s.products.Count()
	if err != nil {
		return ImportResult{}, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		s.log.Info("store already populated, skipping import", zap.Int("products", n))
		return ImportResult{}, nil
	}

	res, err := s.Import(records)
	if err != nil {
		return res, err
	}
	s.log.Info("import complete",
		zap.String("file", path),
		zap.String("mode", s.conflictMode),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}
