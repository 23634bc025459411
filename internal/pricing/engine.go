package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quartohq/quarto-backend/pkg/db/models"
	pkgerrors "github.com/quartohq/quarto-backend/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Engine prices cart lines: nightly price times quantity times nights, less
// the single best-matching discount per line.
type Engine struct{}

// NewEngine builds the pricing engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Nights returns the whole-day length of the half-open stay [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// LineTotal prices one cart item against its room category.
func (e *Engine) LineTotal(item models.CartItem, category models.RoomCategory) decimal.Decimal {
	nights := decimal.NewFromInt(int64(Nights(item.CheckIn, item.CheckOut)))
	qty := decimal.NewFromInt(int64(item.Quantity))
	line := category.PricePerNight.Mul(qty).Mul(nights)

	if discount := selectDiscount(category.Discounts, item.CheckIn, item.CheckOut); discount != nil {
		line = line.Sub(line.Mul(discount.Percentage).Div(hundred))
	}
	return line
}

// CalculateTotal sums the line totals for the provided items, rounded to the
// currency's minor unit. Categories are supplied by the caller so the engine
// never touches storage.
func (e *Engine) CalculateTotal(items []models.CartItem, categories map[uuid.UUID]models.RoomCategory) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		category, ok := categories[item.RoomCategoryID]
		if !ok {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeNotFound, "room category not found for cart item")
		}
		total = total.Add(e.LineTotal(item, category))
	}
	return total.Round(2), nil
}

// selectDiscount returns the first discount in stored order whose window
// fully contains the stay. First match wins even when a later discount is
// larger; stored order is the tie-break.
func selectDiscount(discounts []models.Discount, checkIn, checkOut time.Time) *models.Discount {
	for i := range discounts {
		d := discounts[i]
		if !d.StartDate.After(checkIn) && !d.EndDate.Before(checkOut) {
			return &d
		}
	}
	return nil
}
