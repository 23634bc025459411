package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quartohq/quarto-backend/internal/cart"
	"github.com/quartohq/quarto-backend/internal/inventory"
	"github.com/quartohq/quarto-backend/pkg/db"
	"github.com/quartohq/quarto-backend/pkg/db/models"
	"github.com/quartohq/quarto-backend/pkg/enums"
	pkgerrors "github.com/quartohq/quarto-backend/pkg/errors"
	"github.com/quartohq/quarto-backend/pkg/logger"
	"github.com/quartohq/quarto-backend/pkg/metrics"
)

type serializableTxRunner interface {
	WithSerializableTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type totalPricer interface {
	CalculateTotal(items []models.CartItem, categories map[uuid.UUID]models.RoomCategory) (decimal.Decimal, error)
}

// Service turns a cart into per-hotel bookings.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod) ([]uuid.UUID, error)
}

type service struct {
	tx        serializableTxRunner
	carts     *cart.Repository
	inventory *inventory.Repository
	bookings  *Repository
	pricer    totalPricer
	payments  PaymentGateway
	notifier  NotificationGateway
	logg      *logger.Logger
	metrics   *metrics.CheckoutMetrics
	refPrefix string
}

// NewService builds the checkout service.
func NewService(
	tx serializableTxRunner,
	carts *cart.Repository,
	inventoryRepo *inventory.Repository,
	bookings *Repository,
	pricer totalPricer,
	payments PaymentGateway,
	notifier NotificationGateway,
	logg *logger.Logger,
	checkoutMetrics *metrics.CheckoutMetrics,
	refPrefix string,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if bookings == nil {
		return nil, fmt.Errorf("booking repository required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notification gateway required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if refPrefix == "" {
		refPrefix = "QRT"
	}
	return &service{
		tx:        tx,
		carts:     carts,
		inventory: inventoryRepo,
		bookings:  bookings,
		pricer:    pricer,
		payments:  payments,
		notifier:  notifier,
		logg:      logg,
		metrics:   checkoutMetrics,
		refPrefix: refPrefix,
	}, nil
}

// Checkout converts the user's cart into one booking per hotel inside a
// single serializable transaction. Either every hotel books and pays, or
// nothing does and the cart survives.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod) ([]uuid.UUID, error) {
	start := time.Now()
	bookings, err := s.checkout(ctx, userID, method)
	s.metrics.ObserveAttempt(outcomeFor(err), time.Since(start))
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeInternal) {
			dumpCtx := s.logg.WithField(ctx, "dump", pkgerrors.Dump(err))
			s.logg.Error(dumpCtx, "checkout storage failure", err)
		}
		return nil, err
	}
	s.metrics.AddBookings(len(bookings))

	ids := make([]uuid.UUID, 0, len(bookings))
	for _, booking := range bookings {
		ids = append(ids, booking.ID)
		// Confirmations are best effort; the booking is already committed.
		if sendErr := s.notifier.SendConfirmation(ctx, booking); sendErr != nil {
			bookingCtx := s.logg.WithBookingID(ctx, booking.ID.String())
			s.logg.Error(bookingCtx, "booking confirmation delivery failed", sendErr)
		}
	}
	return ids, nil
}

func (s *service) checkout(ctx context.Context, userID uuid.UUID, method enums.PaymentMethod) ([]models.Booking, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	var created []models.Booking
	err := s.tx.WithSerializableTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.carts.WithTx(tx)
		invRepo := s.inventory.WithTx(tx)
		bookingRepo := s.bookings.WithTx(tx)

		record, err := cartRepo.FindActiveByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
			}
			return err
		}
		if len(record.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		categoryIDs := make([]uuid.UUID, 0, len(record.Items))
		for _, item := range record.Items {
			categoryIDs = append(categoryIDs, item.RoomCategoryID)
		}
		categories, err := invRepo.CategoriesByIDs(ctx, categoryIDs)
		if err != nil {
			return err
		}

		hotelOrder, grouped, err := groupByHotel(record.Items, categories)
		if err != nil {
			return err
		}

		allocated := map[uuid.UUID][]stayWindow{}
		created = created[:0]
		for _, hotelID := range hotelOrder {
			items := grouped[hotelID]

			links := make([]models.BookingRoom, 0, len(items))
			for _, item := range items {
				roomIDs, err := allocateRooms(ctx, invRepo, item, allocated)
				if err != nil {
					return err
				}
				for _, roomID := range roomIDs {
					links = append(links, models.BookingRoom{
						RoomID:         roomID,
						RoomCategoryID: item.RoomCategoryID,
					})
				}
			}

			total, err := s.pricer.CalculateTotal(items, categories)
			if err != nil {
				return err
			}
			reference, chargeErr := s.payments.Charge(ctx, userID, total, method)
			if chargeErr != nil {
				return pkgerrors.Wrap(pkgerrors.CodePaymentFailed, chargeErr, "payment declined")
			}
			if reference == "" {
				reference = s.paymentReference()
			}

			checkIn, checkOut := stayBounds(items)
			booking, err := bookingRepo.CreateBooking(ctx, &models.Booking{
				UserID:   userID,
				HotelID:  hotelID,
				CheckIn:  checkIn,
				CheckOut: checkOut,
				Rooms:    links,
				Payment: &models.PaymentDetails{
					Amount:    total,
					Method:    method,
					Status:    enums.PaymentStatusPaid,
					Reference: reference,
					PaidAt:    time.Now().UTC(),
				},
			})
			if err != nil {
				return err
			}
			created = append(created, *booking)
		}

		// The cart dies with the commit; a rollback leaves it intact.
		return cartRepo.DeleteByUser(ctx, userID)
	})
	if err != nil {
		return nil, mapCheckoutError(err)
	}
	return created, nil
}

// stayWindow is a half-open [checkIn, checkOut) claim on a room made by an
// earlier cart line of the same transaction.
type stayWindow struct {
	checkIn  time.Time
	checkOut time.Time
}

func (w stayWindow) overlaps(checkIn, checkOut time.Time) bool {
	return w.checkIn.Before(checkOut) && w.checkOut.After(checkIn)
}

// allocateRooms picks concrete free room units for one cart line. A unit
// claimed by an earlier line is skipped only when that claim's window overlaps
// this line's; disjoint stays may reuse the same physical room.
func allocateRooms(ctx context.Context, invRepo *inventory.Repository, item models.CartItem, allocated map[uuid.UUID][]stayWindow) ([]uuid.UUID, error) {
	free, err := invRepo.FreeRoomIDs(ctx, item.RoomCategoryID, item.CheckIn, item.CheckOut, item.Quantity+len(allocated))
	if err != nil {
		return nil, err
	}

	picked := make([]uuid.UUID, 0, item.Quantity)
	for _, roomID := range free {
		if claimsOverlap(allocated[roomID], item.CheckIn, item.CheckOut) {
			continue
		}
		picked = append(picked, roomID)
		if len(picked) == item.Quantity {
			break
		}
	}
	if len(picked) < item.Quantity {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficient, "not enough rooms left for the requested stay")
	}
	for _, roomID := range picked {
		allocated[roomID] = append(allocated[roomID], stayWindow{checkIn: item.CheckIn, checkOut: item.CheckOut})
	}
	return picked, nil
}

func claimsOverlap(claims []stayWindow, checkIn, checkOut time.Time) bool {
	for _, claim := range claims {
		if claim.overlaps(checkIn, checkOut) {
			return true
		}
	}
	return false
}

// groupByHotel buckets cart items by their category's hotel, preserving the
// order hotels first appear in the cart.
func groupByHotel(items []models.CartItem, categories map[uuid.UUID]models.RoomCategory) ([]uuid.UUID, map[uuid.UUID][]models.CartItem, error) {
	order := make([]uuid.UUID, 0, len(items))
	grouped := make(map[uuid.UUID][]models.CartItem, len(items))
	for _, item := range items {
		category, ok := categories[item.RoomCategoryID]
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "room category not found for cart item")
		}
		if _, seen := grouped[category.HotelID]; !seen {
			order = append(order, category.HotelID)
		}
		grouped[category.HotelID] = append(grouped[category.HotelID], item)
	}
	return order, grouped, nil
}

func stayBounds(items []models.CartItem) (time.Time, time.Time) {
	checkIn := items[0].CheckIn
	checkOut := items[0].CheckOut
	for _, item := range items[1:] {
		if item.CheckIn.Before(checkIn) {
			checkIn = item.CheckIn
		}
		if item.CheckOut.After(checkOut) {
			checkOut = item.CheckOut
		}
	}
	return checkIn, checkOut
}

func (s *service) paymentReference() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return s.refPrefix + "-" + token[:12]
}

func mapCheckoutError(err error) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if db.IsSerializationFailure(err) {
		return pkgerrors.Wrap(pkgerrors.CodeTxConflict, err, "checkout conflicted with a concurrent transaction")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout failed")
}

func outcomeFor(err error) string {
	if err == nil {
		return "success"
	}
	if typed := pkgerrors.As(err); typed != nil {
		return strings.ToLower(string(typed.Code()))
	}
	return strings.ToLower(string(pkgerrors.CodeInternal))
}
