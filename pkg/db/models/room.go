package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is one physical inventory unit of a category. A room is never reserved
// directly; it only becomes unavailable for a window through BookingRoom links
// to bookings overlapping that window.
type Room struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	RoomCategoryID uuid.UUID `gorm:"column:room_category_id;type:uuid;not null;index"`
	Number         string    `gorm:"column:number;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
