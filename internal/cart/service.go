package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quartohq/quarto-backend/pkg/db"
	"github.com/quartohq/quarto-backend/pkg/db/models"
	pkgerrors "github.com/quartohq/quarto-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type categoryLoader interface {
	CategoryByID(ctx context.Context, id uuid.UUID) (*models.RoomCategory, error)
	CategoriesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.RoomCategory, error)
}

type availabilityChecker interface {
	HasAvailableRooms(ctx context.Context, roomCategoryID uuid.UUID, checkIn, checkOut time.Time, qty int) (bool, error)
}

type linePricer interface {
	LineTotal(item models.CartItem, category models.RoomCategory) decimal.Decimal
}

// Line is one priced cart entry as returned to callers.
type Line struct {
	CartItemID     uuid.UUID
	RoomCategoryID uuid.UUID
	HotelID        uuid.UUID
	CheckIn        time.Time
	CheckOut       time.Time
	Quantity       int
	LineTotal      decimal.Decimal
}

// Service exposes the cart operations.
type Service interface {
	AddOrMerge(ctx context.Context, userID, roomCategoryID uuid.UUID, checkIn, checkOut time.Time, qty int) (*models.CartItem, error)
	Remove(ctx context.Context, cartItemID uuid.UUID) error
	GetCart(ctx context.Context, userID uuid.UUID) ([]Line, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo         *Repository
	tx           txRunner
	categories   categoryLoader
	availability availabilityChecker
	pricer       linePricer
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo *Repository, tx txRunner, categories categoryLoader, availability availabilityChecker, pricer linePricer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category loader required")
	}
	if availability == nil {
		return nil, fmt.Errorf("availability checker required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("line pricer required")
	}
	return &service{
		repo:         repo,
		tx:           tx,
		categories:   categories,
		availability: availability,
		pricer:       pricer,
	}, nil
}

// AddOrMerge puts qty rooms of a category for a stay window into the user's
// cart. An existing line with the same category and window absorbs the
// quantity; anything else appends a new line. The cart record itself is
// created on first use.
func (s *service) AddOrMerge(ctx context.Context, userID, roomCategoryID uuid.UUID, checkIn, checkOut time.Time, qty int) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if roomCategoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "room category id is required")
	}
	if qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	// Date sanity comes before any storage access.
	if !checkOut.After(checkIn) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidDateRange, "check-out must be after check-in")
	}

	if _, err := s.categories.CategoryByID(ctx, roomCategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load room category")
	}

	fits, err := s.availability.HasAvailableRooms(ctx, roomCategoryID, checkIn, checkOut, qty)
	if err != nil {
		return nil, err
	}
	if !fits {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficient, "not enough rooms available for the requested stay")
	}

	result, err := s.persistLine(ctx, userID, roomCategoryID, checkIn, checkOut, qty)
	if err != nil && db.IsUniqueViolation(err, "cart_records") {
		// Lost a first-add race: a concurrent add inserted this user's cart
		// between our lookup and create. The cart exists now, merge into it.
		result, err = s.persistLine(ctx, userID, roomCategoryID, checkIn, checkOut, qty)
	}
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart")
	}
	return result, nil
}

func (s *service) persistLine(ctx context.Context, userID, roomCategoryID uuid.UUID, checkIn, checkOut time.Time, qty int) (*models.CartItem, error) {
	var result *models.CartItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		record, err := txRepo.FindActiveByUser(ctx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			record, err = txRepo.Create(ctx, &models.CartRecord{UserID: userID})
			if err != nil {
				return err
			}
		}

		for i := range record.Items {
			existing := &record.Items[i]
			if existing.SameLine(roomCategoryID, checkIn, checkOut) {
				existing.Quantity += qty
				if err := txRepo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity); err != nil {
					return err
				}
				result = existing
				return nil
			}
		}

		item, err := txRepo.CreateItem(ctx, &models.CartItem{
			CartID:         record.ID,
			RoomCategoryID: roomCategoryID,
			CheckIn:        checkIn,
			CheckOut:       checkOut,
			Quantity:       qty,
		})
		if err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Remove deletes a single line. The cart record survives the removal of its
// last line.
func (s *service) Remove(ctx context.Context, cartItemID uuid.UUID) error {
	if cartItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}
	if _, err := s.repo.FindItemByID(ctx, cartItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}
	if err := s.repo.DeleteItem(ctx, cartItemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
	}
	return nil
}

// GetCart returns the user's priced lines. Prices reflect the catalog at read
// time; availability is deliberately not rechecked here, checkout owns that.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	record, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []Line{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if len(record.Items) == 0 {
		return []Line{}, nil
	}

	ids := make([]uuid.UUID, 0, len(record.Items))
	for _, item := range record.Items {
		ids = append(ids, item.RoomCategoryID)
	}
	categories, err := s.categories.CategoriesByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load room categories")
	}

	lines := make([]Line, 0, len(record.Items))
	for _, item := range record.Items {
		category, ok := categories[item.RoomCategoryID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room category not found for cart item")
		}
		lines = append(lines, Line{
			CartItemID:     item.ID,
			RoomCategoryID: item.RoomCategoryID,
			HotelID:        category.HotelID,
			CheckIn:        item.CheckIn,
			CheckOut:       item.CheckOut,
			Quantity:       item.Quantity,
			LineTotal:      s.pricer.LineTotal(item, category),
		})
	}
	return lines, nil
}

// Clear drops the user's cart. Clearing a user with no cart succeeds.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}
