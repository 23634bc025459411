package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/quartohq/quarto-backend/pkg/errors"
)

// Counter computes how many room units of a category are free for a stay
// window: total units minus units committed to overlapping bookings.
type Counter struct {
	repo *Repository
}

// NewCounter builds the availability counter.
func NewCounter(repo *Repository) (*Counter, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &Counter{repo: repo}, nil
}

// CountAvailable is the dual-mode availability contract. With both dates nil
// it degrades to the category's total room count (the hotel-details "rooms"
// figure); with both set it returns free units for [checkIn, checkOut),
// clamped at zero. Exactly one nil date is rejected.
func (c *Counter) CountAvailable(ctx context.Context, roomCategoryID uuid.UUID, checkIn, checkOut *time.Time) (int, error) {
	if roomCategoryID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "room category id is required")
	}

	total, err := c.repo.TotalRooms(ctx, roomCategoryID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count rooms")
	}

	if checkIn == nil && checkOut == nil {
		return int(total), nil
	}
	if checkIn == nil || checkOut == nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "check-in and check-out must be provided together")
	}
	if !checkOut.After(*checkIn) {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidDateRange, "check-out must be after check-in")
	}

	booked, err := c.repo.BookedRooms(ctx, roomCategoryID, *checkIn, *checkOut)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count booked rooms")
	}

	available := total - booked
	if available < 0 {
		available = 0
	}
	return int(available), nil
}

// HasAvailableRooms reports whether at least qty units are free for the window.
func (c *Counter) HasAvailableRooms(ctx context.Context, roomCategoryID uuid.UUID, checkIn, checkOut time.Time, qty int) (bool, error) {
	if qty < 1 {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	available, err := c.CountAvailable(ctx, roomCategoryID, &checkIn, &checkOut)
	if err != nil {
		return false, err
	}
	return available >= qty, nil
}
