package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-api/internal/application/validation"
	"github.com/jhoicas/commodities-api/internal/domain"
)

// bind parsea el body JSON en out y lo valida con sus tags `validate`.
func bind(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.NewValidationError("body", "json", "cuerpo inválido: se esperaba JSON")
	}
	return validation.Struct(out)
}
