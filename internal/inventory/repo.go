package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quartohq/quarto-backend/internal/repo"
	"github.com/quartohq/quarto-backend/pkg/db/models"
)

// Repository runs the room-counting queries behind the availability contract.
type Repository struct {
	base repo.Base
}

// NewRepository constructs an inventory repository bound to the provided DB.
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

// TotalRooms counts every room unit in the category.
func (r *Repository) TotalRooms(ctx context.Context, roomCategoryID uuid.UUID) (int64, error) {
	var total int64
	err := r.base.DB(ctx).
		Model(&models.Room{}).
		Where("room_category_id = ?", roomCategoryID).
		Count(&total).Error
	return total, err
}

// BookedRooms counts distinct room units of the category linked to any booking
// whose stay overlaps the half-open window [checkIn, checkOut).
func (r *Repository) BookedRooms(ctx context.Context, roomCategoryID uuid.UUID, checkIn, checkOut time.Time) (int64, error) {
	var booked int64
	err := r.base.DB(ctx).
		Model(&models.Room{}).
		Distinct("rooms.id").
		Joins("JOIN booking_rooms ON booking_rooms.room_id = rooms.id").
		Joins("JOIN bookings ON bookings.id = booking_rooms.booking_id").
		Where("rooms.room_category_id = ?", roomCategoryID).
		Where("bookings.check_in < ? AND bookings.check_out > ?", checkOut, checkIn).
		Count(&booked).Error
	return booked, err
}

// FreeRoomIDs returns up to limit room ids in the category that have no
// booking link overlapping [checkIn, checkOut). Checkout allocates from this
// set so a unit can never be attached to two overlapping bookings by the same
// transaction.
func (r *Repository) FreeRoomIDs(ctx context.Context, roomCategoryID uuid.UUID, checkIn, checkOut time.Time, limit int) ([]uuid.UUID, error) {
	occupied := r.base.DB(ctx).
		Model(&models.BookingRoom{}).
		Select("booking_rooms.room_id").
		Joins("JOIN bookings ON bookings.id = booking_rooms.booking_id").
		Where("bookings.check_in < ? AND bookings.check_out > ?", checkOut, checkIn)

	var ids []uuid.UUID
	err := r.base.DB(ctx).
		Model(&models.Room{}).
		Where("room_category_id = ?", roomCategoryID).
		Where("id NOT IN (?)", occupied).
		Order("number ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
