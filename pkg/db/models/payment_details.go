package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quartohq/quarto-backend/pkg/enums"
)

// PaymentDetails records the settled charge for a booking.
type PaymentDetails struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	BookingID uuid.UUID           `gorm:"column:booking_id;type:uuid;not null;uniqueIndex"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null"`
	Method    enums.PaymentMethod `gorm:"column:method;not null"`
	Status    enums.PaymentStatus `gorm:"column:status;not null;default:'paid'"`
	Reference string              `gorm:"column:reference;not null"`
	PaidAt    time.Time           `gorm:"column:paid_at;not null"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}
