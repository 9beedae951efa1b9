package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-cli/internal/models"
	"gorm.io/gorm"
)

// SQLiteProductRepository stores products through gorm. It is meant for the
// sqlite dialector but only relies on portable gorm calls.
type SQLiteProductRepository struct {
	db *gorm.DB
}

func NewSQLiteProductRepository(db *gorm.DB) *SQLiteProductRepository {
	return &SQLiteProductRepository{db: db}
}

func (r *SQLiteProductRepository) Create(p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	p.ID = 0
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isDuplicatedKey(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r *SQLiteProductRepository) GetAll() ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id_product").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *SQLiteProductRepository) GetByID(id int) (models.Product, error) {
	return r.first("id_product = ?", id)
}

func (r *SQLiteProductRepository) GetByName(name string) (models.Product, error) {
	return r.first("product_name = ?", name)
}

func (r *SQLiteProductRepository) first(cond string, arg any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.WithContext(ctx).Where(cond, arg).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update writes every column by primary key. Save is avoided because it
// inserts when no row matches.
func (r *SQLiteProductRepository) Update(p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id_product = ?", p.ID).
		Updates(map[string]any{
			"product_name":     p.Name,
			"product_quantity": p.Quantity,
			"product_price":    p.PriceCents,
			"date_updated":     p.UpdatedAt,
		})
	if res.Error != nil {
		if isDuplicatedKey(res.Error) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *SQLiteProductRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id_product = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *SQLiteProductRepository) DeleteAll() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		// AUTOINCREMENT keeps counting after a delete; reset it so a reseed
		// starts at id 1 again.
		return tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", models.Product{}.TableName()).Error
	})
}

func (r *SQLiteProductRepository) Count() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error
	return int(n), err
}

// isDuplicatedKey matches gorm's translated error and, for connections
// opened without TranslateError, the raw sqlite message.
func isDuplicatedKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
