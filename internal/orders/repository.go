package orders

import (
	"context"

	"gorm.io/gorm"

	pkgdb "github.com/i9team/guilherme-ecommerce/pkg/db"
	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

// Repository persists submitted orders.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order with its items. A non-nil tx binds the insert to
// the caller's transaction.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	if err := db.WithContext(ctx).Create(order).Error; err != nil {
		if pkgdb.IsUniqueViolation(err, "order_ref") {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order already submitted")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
	}
	return nil
}

// List returns orders newest first with their items.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.Order, error) {
	var out []models.Order
	q := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return out, nil
}
