package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quartohq/quarto-backend/internal/repo"
	"github.com/quartohq/quarto-backend/pkg/db/models"
)

// Repository persists bookings with their room links and payment rows.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a booking repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{base: repo.NewBase(tx)}
}

// CreateBooking inserts the booking together with its owned room links and
// payment details in one association write.
func (r *Repository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	for i := range booking.Rooms {
		if booking.Rooms[i].ID == uuid.Nil {
			booking.Rooms[i].ID = uuid.New()
		}
		booking.Rooms[i].BookingID = booking.ID
	}
	if booking.Payment != nil {
		if booking.Payment.ID == uuid.Nil {
			booking.Payment.ID = uuid.New()
		}
		booking.Payment.BookingID = booking.ID
	}
	if err := r.base.DB(ctx).Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

// FindByID loads a booking with its room links and payment row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.base.DB(ctx).
		Preload("Rooms").
		Preload("Payment").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByUser returns the user's bookings, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.base.DB(ctx).
		Preload("Rooms").
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
