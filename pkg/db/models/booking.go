package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one confirmed per-hotel reservation produced by checkout. Its
// stay window spans the min check-in and max check-out across the cart items
// that formed it; its room links and payment row are owned and die with it.
type Booking struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	HotelID   uuid.UUID       `gorm:"column:hotel_id;type:uuid;not null;index"`
	CheckIn   time.Time       `gorm:"column:check_in;not null"`
	CheckOut  time.Time       `gorm:"column:check_out;not null"`
	Rooms     []BookingRoom   `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Payment   *PaymentDetails `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
