package application

import (
	"errors"
	"fmt"

	"github.com/openretail/pos-api-server/internal/domains/sales/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid sales input")
	// ErrDraftNotFound signals the identifier did not resolve to a
	// persisted draft order.
	ErrDraftNotFound = errors.New("draft order not found")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidLineItem) ||
		errors.Is(err, domain.ErrEmptyCart) ||
		errors.Is(err, domain.ErrBadSequenceValue) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
