package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one (room category, stay window, quantity) line pending
// checkout. Two lines with identical category and window never coexist in a
// cart; adds merge into the existing line's quantity.
type CartItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID         uuid.UUID `gorm:"column:cart_id;type:uuid;not null;index"`
	RoomCategoryID uuid.UUID `gorm:"column:room_category_id;type:uuid;not null"`
	CheckIn        time.Time `gorm:"column:check_in;not null"`
	CheckOut       time.Time `gorm:"column:check_out;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SameLine reports whether the item targets the given category and stay
// window, the merge identity for AddOrMerge.
func (c CartItem) SameLine(roomCategoryID uuid.UUID, checkIn, checkOut time.Time) bool {
	return c.RoomCategoryID == roomCategoryID && c.CheckIn.Equal(checkIn) && c.CheckOut.Equal(checkOut)
}
