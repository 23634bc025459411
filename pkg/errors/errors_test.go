package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("row not found")
	wrapped := Wrap(CodeNotFound, cause, "cart item lookup")

	if !errors.Is(wrapped, cause) {
		t.Fatal("expected wrapped error to match cause")
	}
	if wrapped.Code() != CodeNotFound {
		t.Fatalf("unexpected code: %s", wrapped.Code())
	}
	if wrapped.Error() != "NOT_FOUND: cart item lookup" {
		t.Fatalf("unexpected message: %s", wrapped.Error())
	}
}

func TestAsUnwrapsNestedError(t *testing.T) {
	t.Parallel()

	inner := New(CodeInsufficient, "only 2 rooms left")
	outer := fmt.Errorf("checkout: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error")
	}
	if typed.Code() != CodeInsufficient {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", meta.HTTPStatus)
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	if !Retryable(New(CodeTxConflict, "serialization failure")) {
		t.Fatal("transaction conflicts must be retryable")
	}
	if Retryable(New(CodeInsufficient, "sold out")) {
		t.Fatal("availability failures must not be retryable")
	}
	if Retryable(errors.New("plain")) {
		t.Fatal("untyped errors must not be retryable")
	}
}

func TestDumpCapturesChainAndCode(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	wrapped := Wrap(CodeInternal, cause, "create booking")

	d := Dump(wrapped)
	if d.Code != CodeInternal {
		t.Fatalf("unexpected code: %s", d.Code)
	}
	if d.TopMessage != "INTERNAL_ERROR: create booking" {
		t.Fatalf("unexpected top message: %s", d.TopMessage)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected the wrap and its cause in the chain, got %v", d.Chain)
	}

	if empty := Dump(nil); empty.TopMessage != "" || len(empty.Chain) != 0 {
		t.Fatalf("dump of nil must be empty, got %+v", empty)
	}
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", New(CodeEmptyCart, "no items"))
	if !IsCode(err, CodeEmptyCart) {
		t.Fatal("expected empty-cart code")
	}
	if IsCode(err, CodePaymentFailed) {
		t.Fatal("unexpected payment code match")
	}
}
