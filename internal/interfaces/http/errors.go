package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/interfaces/errcode"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

// ErrorHandler centraliza la respuesta de error: los handlers devuelven el error de dominio
// y aquí se traduce a {code, message, fields?} con el status correspondiente.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message})
		}

		cl := errcode.Classify(err)
		if cl.Internal() {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Interface("request_id", c.Locals(LocalRequestID)).
				Msg("error no controlado")
		}
		return c.Status(cl.Status).JSON(dto.ErrorResponse{Code: cl.Code, Message: cl.Message, Fields: cl.Fields})
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnprocessableEntity:
		return errcode.BadUserInput
	case fiber.StatusUnauthorized:
		return errcode.Unauthenticated
	case fiber.StatusForbidden:
		return errcode.Forbidden
	case fiber.StatusNotFound:
		return errcode.NotFound
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		return errcode.Internal
	}
}

// resolveError aplica el ErrorHandler de la app para que los middlewares externos
// (log, métricas, trazas) vean el status final. Devuelve nil cuando ya respondió.
func resolveError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	if h := c.App().Config().ErrorHandler; h != nil {
		return h(c, err)
	}
	return err
}
