package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/inventory-cli/internal/models"
	"github.com/rogerio-castellano/inventory-cli/internal/normalize"
	"github.com/rogerio-castellano/inventory-cli/internal/repo"
	"go.uber.org/zap"
)

var ErrInvalidInput = errors.New("invalid product input")

// AddRequest carries the raw text typed on the Add screen.
type AddRequest struct {
	Name     string
	Price    string
	Quantity string
	// SwapFields stores the scaled price input as the quantity and the
	// quantity input as the price when a new record is created.
	SwapFields bool
}

// AddEntry converts the typed values and upserts them. Price is a plain
// decimal ("12.5"), scaled to cents and truncated; quantity must be a whole
// number. Both are checked before the store is touched.
//
// Only the create path honors SwapFields. A name conflict always writes the
// scaled price to PriceCents and the quantity to Quantity.
func (s *Service) AddEntry(req AddRequest) (models.Product, Outcome, error) {
	scaled, ok := normalize.ScaleToCents(req.Price)
	if !ok {
		return models.Product{}, 0, fmt.Errorf("%w: price %q is not a number", ErrInvalidInput, strings.TrimSpace(req.Price))
	}
	whole, err := normalize.ParseQuantity(req.Quantity)
	if err != nil {
		return models.Product{}, 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	candidate := models.Product{Name: req.Name, PriceCents: scaled, Quantity: whole}
	if req.SwapFields {
		candidate.PriceCents, candidate.Quantity = whole, scaled
	}

	created, err := s.products.Create(candidate)
	if err == nil {
		s.log.Info("product added", zap.String("name", created.Name), zap.Int("id", created.ID))
		return created, Created, nil
	}
	if !errors.Is(err, repo.ErrDuplicatedValueUnique) {
		return models.Product{}, 0, fmt.Errorf("create %q: %w", req.Name, err)
	}

	updated, err := s.overwrite(req.Name, scaled, whole)
	if err != nil {
		return models.Product{}, 0, err
	}
	s.log.Info("product updated", zap.String("name", updated.Name), zap.Int("id", updated.ID))
	return updated, Updated, nil
}

