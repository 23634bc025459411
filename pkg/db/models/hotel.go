package models

import (
	"time"

	"github.com/google/uuid"
)

// Hotel is the grouping unit for checkout: one booking is produced per hotel
// represented in a cart.
type Hotel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	City      string    `gorm:"column:city;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
