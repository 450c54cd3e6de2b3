package application

import (
	"errors"
	"fmt"

	"github.com/openretail/pos-api-server/internal/domains/catalog/domain"
)

// ErrInvalidInput marks validation failures callers can surface as 4xx.
var ErrInvalidInput = errors.New("invalid catalog input")

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrInvalidName), errors.Is(err, domain.ErrInvalidPrice):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
