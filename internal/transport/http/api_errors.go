package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/openretail/pos-api-server/internal/domains/catalog/application"
	catalogports "github.com/openretail/pos-api-server/internal/domains/catalog/ports"
	salesapp "github.com/openretail/pos-api-server/internal/domains/sales/application"
	salesports "github.com/openretail/pos-api-server/internal/domains/sales/ports"
	settingsapp "github.com/openretail/pos-api-server/internal/domains/settings/application"
	settingsports "github.com/openretail/pos-api-server/internal/domains/settings/ports"
	userapp "github.com/openretail/pos-api-server/internal/domains/users/application"
	userports "github.com/openretail/pos-api-server/internal/domains/users/ports"
	problems "github.com/openretail/pos-api-server/internal/shared/errors"
)

var responder = problems.NewChainedResponder("", mapDomainError)

// mapDomainError translates application and port errors into RFC 7807
// problems. Anything unmatched falls through to a 500.
func mapDomainError(err error) (problems.ProblemDetail, bool) {
	switch {
	case errors.Is(err, salesports.ErrNotFound),
		errors.Is(err, salesapp.ErrDraftNotFound),
		errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, userports.ErrNotFound),
		errors.Is(err, settingsports.ErrNotFound):
		return problems.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, salesapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, userapp.ErrInvalidInput),
		errors.Is(err, settingsapp.ErrInvalidInput):
		return problems.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, userapp.ErrAuthentication):
		return problems.ErrUnauthorized.WithDetail(err.Error()), true
	}
	return problems.ProblemDetail{}, false
}

func respondError(c *gin.Context, err error) {
	responder.RespondError(c, err)
}
