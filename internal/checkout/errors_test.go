package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	pkgerrors "github.com/quartohq/quarto-backend/pkg/errors"
)

func TestMapCheckoutError(t *testing.T) {
	t.Parallel()

	typed := pkgerrors.New(pkgerrors.CodeInsufficient, "no rooms")
	require.Same(t, typed, mapCheckoutError(typed))

	serialization := errors.New("pq: could not serialize access due to concurrent update")
	mapped := mapCheckoutError(serialization)
	require.True(t, pkgerrors.IsCode(mapped, pkgerrors.CodeTxConflict))
	require.True(t, pkgerrors.Retryable(mapped))
	require.ErrorIs(t, mapped, serialization)

	plain := errors.New("connection reset")
	require.True(t, pkgerrors.IsCode(mapCheckoutError(plain), pkgerrors.CodeInternal))
}

func TestOutcomeFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "success", outcomeFor(nil))
	require.Equal(t, "empty_cart", outcomeFor(pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")))
	require.Equal(t, "transaction_conflict", outcomeFor(pkgerrors.New(pkgerrors.CodeTxConflict, "conflict")))
	require.Equal(t, "internal_error", outcomeFor(errors.New("boom")))
}
