// Package errcode traduce los errores de dominio a un código de transporte común
// para REST y GraphQL.
package errcode

import (
	"context"
	"errors"
	"net/http"

	"github.com/jhoicas/commodities-api/internal/domain"
)

// Códigos expuestos a los clientes (extensions.code en GraphQL, code en REST).
const (
	BadUserInput    = "BAD_USER_INPUT"
	Conflict        = "CONFLICT"
	Unauthenticated = "UNAUTHENTICATED"
	Forbidden       = "FORBIDDEN"
	NotFound        = "NOT_FOUND"
	Internal        = "INTERNAL"
)

// Classified resultado de clasificar un error.
type Classified struct {
	Code    string
	Status  int
	Message string
	Fields  []domain.FieldError
}

// Internal reporta si el error no es de dominio y debe registrarse en el log.
func (c Classified) Internal() bool { return c.Code == Internal }

// Classify mapea err a código, status HTTP y mensaje seguro para el cliente.
// Los errores no reconocidos se ocultan detrás de un mensaje genérico.
func Classify(err error) Classified {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return Classified{Code: BadUserInput, Status: http.StatusBadRequest, Message: domain.ErrValidation.Error(), Fields: verr.Fields}
	case errors.Is(err, domain.ErrValidation):
		return Classified{Code: BadUserInput, Status: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return Classified{Code: Conflict, Status: http.StatusConflict, Message: domain.ErrEmailAlreadyExists.Error()}
	case errors.Is(err, domain.ErrConflict):
		return Classified{Code: Conflict, Status: http.StatusConflict, Message: domain.ErrConflict.Error()}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return Classified{Code: Unauthenticated, Status: http.StatusUnauthorized, Message: domain.ErrInvalidCredentials.Error()}
	case errors.Is(err, domain.ErrUnauthenticated):
		return Classified{Code: Unauthenticated, Status: http.StatusUnauthorized, Message: domain.ErrUnauthenticated.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return Classified{Code: Forbidden, Status: http.StatusForbidden, Message: domain.ErrForbidden.Error()}
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return Classified{Code: NotFound, Status: http.StatusNotFound, Message: domain.ErrNotFound.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return Classified{Code: Internal, Status: http.StatusGatewayTimeout, Message: "tiempo de espera agotado"}
	default:
		return Classified{Code: Internal, Status: http.StatusInternalServerError, Message: "error interno del servidor"}
	}
}
