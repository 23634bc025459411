package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quartohq/quarto-backend/pkg/db/models"
	"github.com/quartohq/quarto-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:checkout_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = conn.AutoMigrate(
		&models.RoomCategory{},
		&models.Room{},
		&models.Discount{},
		&models.CartRecord{},
		&models.CartItem{},
		&models.Booking{},
		&models.BookingRoom{},
		&models.PaymentDetails{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateBookingPersistsOwnedRows(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	ctx := context.Background()
	repo := NewRepository(conn)
	categoryID := uuid.New()

	booking, err := repo.CreateBooking(ctx, &models.Booking{
		UserID:   uuid.New(),
		HotelID:  uuid.New(),
		CheckIn:  date(2025, 8, 1),
		CheckOut: date(2025, 8, 4),
		Rooms: []models.BookingRoom{
			{RoomID: uuid.New(), RoomCategoryID: categoryID},
			{RoomID: uuid.New(), RoomCategoryID: categoryID},
		},
		Payment: &models.PaymentDetails{
			Amount:    decimal.RequireFromString("360"),
			Method:    enums.PaymentMethodCard,
			Status:    enums.PaymentStatusPaid,
			Reference: "QRT-TEST00000001",
			PaidAt:    time.Now().UTC(),
		},
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.ID == uuid.Nil {
		t.Fatal("create must assign a booking id")
	}

	loaded, err := repo.FindByID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("find booking: %v", err)
	}
	if len(loaded.Rooms) != 2 {
		t.Fatalf("expected 2 room links, got %d", len(loaded.Rooms))
	}
	for _, link := range loaded.Rooms {
		if link.BookingID != booking.ID {
			t.Fatalf("room link bound to %s, want %s", link.BookingID, booking.ID)
		}
	}
	if loaded.Payment == nil {
		t.Fatal("expected payment row")
	}
	if !loaded.Payment.Amount.Equal(decimal.RequireFromString("360")) {
		t.Fatalf("expected amount 360, got %s", loaded.Payment.Amount)
	}
}

func TestListByUserReturnsOwnBookingsOnly(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	ctx := context.Background()
	repo := NewRepository(conn)
	userID := uuid.New()

	for i := 0; i < 2; i++ {
		if _, err := repo.CreateBooking(ctx, &models.Booking{
			UserID:   userID,
			HotelID:  uuid.New(),
			CheckIn:  date(2025, 8, 1),
			CheckOut: date(2025, 8, 2),
		}); err != nil {
			t.Fatalf("create booking: %v", err)
		}
	}
	if _, err := repo.CreateBooking(ctx, &models.Booking{
		UserID:   uuid.New(),
		HotelID:  uuid.New(),
		CheckIn:  date(2025, 8, 1),
		CheckOut: date(2025, 8, 2),
	}); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	bookings, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(bookings))
	}
	for _, booking := range bookings {
		if booking.UserID != userID {
			t.Fatalf("foreign booking returned: %s", booking.UserID)
		}
	}
}
