package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quartohq/quarto-backend/pkg/db/models"
	pkgerrors "github.com/quartohq/quarto-backend/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func category(price string, discounts ...models.Discount) models.RoomCategory {
	return models.RoomCategory{
		ID:            uuid.New(),
		HotelID:       uuid.New(),
		Name:          "Deluxe",
		PricePerNight: decimal.RequireFromString(price),
		Discounts:     discounts,
	}
}

func item(cat models.RoomCategory, checkIn, checkOut time.Time, qty int) models.CartItem {
	return models.CartItem{
		ID:             uuid.New(),
		RoomCategoryID: cat.ID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		Quantity:       qty,
	}
}

func TestCalculateTotalWithoutDiscount(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	cat := category("100")
	line := item(cat, date(2025, 3, 1), date(2025, 3, 3), 3)

	total, err := engine.CalculateTotal(
		[]models.CartItem{line},
		map[uuid.UUID]models.RoomCategory{cat.ID: cat},
	)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	// 100 per night, 3 rooms, 2 nights.
	if !total.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("expected 600, got %s", total)
	}
}

func TestDiscountAppliesWhenWindowContainsStay(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	cat := category("100", models.Discount{
		ID:         uuid.New(),
		Percentage: decimal.RequireFromString("25"),
		StartDate:  date(2025, 1, 1),
		EndDate:    date(2025, 1, 10),
	})
	line := item(cat, date(2025, 1, 2), date(2025, 1, 5), 1)

	total, err := engine.CalculateTotal(
		[]models.CartItem{line},
		map[uuid.UUID]models.RoomCategory{cat.ID: cat},
	)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	// 3 nights at 100, minus 25%.
	if !total.Equal(decimal.RequireFromString("225")) {
		t.Fatalf("expected 225, got %s", total)
	}
}

func TestDiscountDoesNotApplyOneDayPastWindow(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	cat := category("100", models.Discount{
		ID:         uuid.New(),
		Percentage: decimal.RequireFromString("25"),
		StartDate:  date(2025, 1, 1),
		EndDate:    date(2025, 1, 10),
	})
	// Check-out one day past the discount window end.
	line := item(cat, date(2025, 1, 2), date(2025, 1, 11), 1)

	total, err := engine.CalculateTotal(
		[]models.CartItem{line},
		map[uuid.UUID]models.RoomCategory{cat.ID: cat},
	)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("900")) {
		t.Fatalf("expected undiscounted 900, got %s", total)
	}
}

func TestFirstStoredDiscountWinsOverLargerLaterOne(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	cat := category("100",
		models.Discount{
			ID:         uuid.New(),
			Percentage: decimal.RequireFromString("10"),
			StartDate:  date(2025, 1, 1),
			EndDate:    date(2025, 1, 31),
		},
		models.Discount{
			ID:         uuid.New(),
			Percentage: decimal.RequireFromString("50"),
			StartDate:  date(2025, 1, 1),
			EndDate:    date(2025, 1, 31),
		},
	)
	line := item(cat, date(2025, 1, 5), date(2025, 1, 7), 1)

	total, err := engine.CalculateTotal(
		[]models.CartItem{line},
		map[uuid.UUID]models.RoomCategory{cat.ID: cat},
	)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	// 200 minus 10%, not minus 50%.
	if !total.Equal(decimal.RequireFromString("180")) {
		t.Fatalf("expected 180, got %s", total)
	}
}

func TestCalculateTotalSumsMultipleLines(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	catA := category("99.95")
	catB := category("150")
	lineA := item(catA, date(2025, 4, 1), date(2025, 4, 4), 2) // 99.95 * 2 * 3 = 599.70
	lineB := item(catB, date(2025, 4, 1), date(2025, 4, 2), 1) // 150

	total, err := engine.CalculateTotal(
		[]models.CartItem{lineA, lineB},
		map[uuid.UUID]models.RoomCategory{catA.ID: catA, catB.ID: catB},
	)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("749.70")) {
		t.Fatalf("expected 749.70, got %s", total)
	}
}

func TestCalculateTotalRoundsToMinorUnit(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	cat := category("99.99", models.Discount{
		ID:         uuid.New(),
		Percentage: decimal.RequireFromString("33.33"),
		StartDate:  date(2025, 1, 1),
		EndDate:    date(2025, 12, 31),
	})
	line := item(cat, date(2025, 2, 1), date(2025, 2, 2), 1)

	total, err := engine.CalculateTotal(
		[]models.CartItem{line},
		map[uuid.UUID]models.RoomCategory{cat.ID: cat},
	)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	// 99.99 - 99.99*0.3333 = 66.663333 -> 66.66
	if !total.Equal(decimal.RequireFromString("66.66")) {
		t.Fatalf("expected 66.66, got %s", total)
	}
}

func TestCalculateTotalMissingCategory(t *testing.T) {
	t.Parallel()

	engine := NewEngine()
	cat := category("100")
	line := item(cat, date(2025, 4, 1), date(2025, 4, 2), 1)

	_, err := engine.CalculateTotal([]models.CartItem{line}, map[uuid.UUID]models.RoomCategory{})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestNights(t *testing.T) {
	t.Parallel()

	if got := Nights(date(2025, 1, 1), date(2025, 1, 2)); got != 1 {
		t.Fatalf("expected 1 night, got %d", got)
	}
	if got := Nights(date(2025, 1, 1), date(2025, 1, 8)); got != 7 {
		t.Fatalf("expected 7 nights, got %d", got)
	}
}
