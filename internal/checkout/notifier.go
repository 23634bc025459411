package checkout

import (
	"context"
	"fmt"

	"github.com/quartohq/quarto-backend/pkg/db/models"
	"github.com/quartohq/quarto-backend/pkg/logger"
)

// LogNotifier is the default NotificationGateway. It records the confirmation
// in the structured log instead of sending mail, which is enough for dev and
// for deployments that wire a real mailer elsewhere.
type LogNotifier struct {
	logg      *logger.Logger
	fromEmail string
}

// NewLogNotifier builds the log-backed notifier.
func NewLogNotifier(logg *logger.Logger, fromEmail string) (*LogNotifier, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &LogNotifier{logg: logg, fromEmail: fromEmail}, nil
}

// SendConfirmation logs the booking confirmation.
func (n *LogNotifier) SendConfirmation(ctx context.Context, booking models.Booking) error {
	ctx = n.logg.WithBookingID(ctx, booking.ID.String())
	ctx = n.logg.WithFields(ctx, map[string]any{
		"from":      n.fromEmail,
		"user_id":   booking.UserID.String(),
		"hotel_id":  booking.HotelID.String(),
		"check_in":  booking.CheckIn.Format("2006-01-02"),
		"check_out": booking.CheckOut.Format("2006-01-02"),
	})
	n.logg.Info(ctx, "booking confirmation sent")
	return nil
}
