package repo

import (
	"errors"

	"github.com/rogerio-castellano/inventory-cli/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	GetAll() ([]models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByName(name string) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	DeleteAll() error
	Count() (int, error)
}

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicatedValueUnique is returned when a product name is already taken.
	ErrDuplicatedValueUnique = errors.New("unique constraint violation: product name already exists")
)
