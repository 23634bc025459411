package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoomCategory is the sellable SKU: a class of fungible rooms in a hotel
// sharing a nightly price. Discounts are owned rows keyed back by category id;
// individual rooms reference the category but are not embedded here.
type RoomCategory struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	HotelID       uuid.UUID       `gorm:"column:hotel_id;type:uuid;not null;index"`
	Name          string          `gorm:"column:name;not null"`
	PricePerNight decimal.Decimal `gorm:"column:price_per_night;type:numeric(12,2);not null"`
	Discounts     []Discount      `gorm:"foreignKey:RoomCategoryID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
