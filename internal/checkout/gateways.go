package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quartohq/quarto-backend/pkg/db/models"
	"github.com/quartohq/quarto-backend/pkg/enums"
)

// PaymentGateway settles a charge with the payment provider. Implementations
// are opaque to checkout; a returned error aborts the transaction. The
// returned reference, when non-empty, is stored on the payment row.
type PaymentGateway interface {
	Charge(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, method enums.PaymentMethod) (string, error)
}

// NotificationGateway delivers booking confirmations. Checkout calls it after
// commit and tolerates failure.
type NotificationGateway interface {
	SendConfirmation(ctx context.Context, booking models.Booking) error
}
