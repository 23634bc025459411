package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount is a time-bounded percentage off a room category's nightly price.
// It applies to a stay only when [StartDate, EndDate] fully contains the stay
// window. When several rows qualify the first in stored order wins.
type Discount struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	RoomCategoryID uuid.UUID       `gorm:"column:room_category_id;type:uuid;not null;index"`
	Percentage     decimal.Decimal `gorm:"column:percentage;type:numeric(5,2);not null"`
	StartDate      time.Time       `gorm:"column:start_date;not null"`
	EndDate        time.Time       `gorm:"column:end_date;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}
