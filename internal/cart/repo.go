package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quartohq/quarto-backend/internal/repo"
	"github.com/quartohq/quarto-backend/pkg/db/models"
)

// Repository exposes persistence operations for cart records and their items.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{base: repo.NewBase(tx)}
}

// FindActiveByUser loads the user's cart with its items in insertion order.
func (r *Repository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.CartRecord, error) {
	var record models.CartRecord
	err := r.base.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Create inserts a new cart record for the user.
func (r *Repository) Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.base.DB(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CreateItem inserts a new cart item line.
func (r *Repository) CreateItem(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.base.DB(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItemQuantity sets the quantity on an existing line.
func (r *Repository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.base.DB(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// FindItemByID loads a single cart item.
func (r *Repository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.base.DB(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes one cart item. The owning cart record stays even when
// this was its last line.
func (r *Repository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.base.DB(ctx).
		Where("id = ?", itemID).
		Delete(&models.CartItem{}).Error
}

// DeleteByUser removes the user's cart record and, through the cascade, its
// items. Deleting a missing cart is a no-op.
func (r *Repository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	tx := r.base.DB(ctx)
	var record models.CartRecord
	err := tx.Where("user_id = ?", userID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if err := tx.Where("cart_id = ?", record.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return tx.Delete(&record).Error
}
