package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingRoom links one allocated room unit to a booking. The category id is
// denormalized so availability counting can restrict the join without loading
// room rows.
type BookingRoom struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BookingID      uuid.UUID `gorm:"column:booking_id;type:uuid;not null;index"`
	RoomID         uuid.UUID `gorm:"column:room_id;type:uuid;not null;index"`
	RoomCategoryID uuid.UUID `gorm:"column:room_category_id;type:uuid;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
