package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quartohq/quarto-backend/pkg/db/models"
)

func preloadDiscounts(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// CategoryByID loads a room category with its discounts in stored order.
func (r *Repository) CategoryByID(ctx context.Context, id uuid.UUID) (*models.RoomCategory, error) {
	var category models.RoomCategory
	err := r.base.DB(ctx).
		Preload("Discounts", preloadDiscounts).
		Where("id = ?", id).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoriesByIDs loads the given room categories keyed by id. Missing ids are
// simply absent from the map; callers decide whether that is an error.
func (r *Repository) CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.RoomCategory, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]models.RoomCategory{}, nil
	}
	var rows []models.RoomCategory
	err := r.base.DB(ctx).
		Preload("Discounts", preloadDiscounts).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	categories := make(map[uuid.UUID]models.RoomCategory, len(rows))
	for _, row := range rows {
		categories[row.ID] = row
	}
	return categories, nil
}
