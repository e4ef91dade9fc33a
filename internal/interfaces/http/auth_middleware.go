package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/domain"
)

// Locals keys de la identidad y del request id en Fiber.
const (
	LocalIdentity  = "identity"
	LocalRequestID = "requestid"
)

// AuthMiddleware valida el Bearer Token con el guard y deja la identidad en c.Locals
// y en c.UserContext() para los casos de uso.
func AuthMiddleware(guard *auth.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := guard.Authenticate(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}
		c.Locals(LocalIdentity, *identity)
		c.SetUserContext(auth.WithIdentity(c.UserContext(), identity))
		return c.Next()
	}
}

// RequireRole autoriza por rol. Debe ir después de AuthMiddleware; sin identidad responde 401.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := identityFrom(c)
		if !ok {
			return domain.ErrUnauthenticated
		}
		if err := auth.Authorize(&identity, roles...); err != nil {
			return err
		}
		return c.Next()
	}
}

func identityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(LocalIdentity).(auth.Identity)
	return id, ok
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	id, _ := identityFrom(c)
	return id.UserID
}

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	id, _ := identityFrom(c)
	return id.Role
}

// GetEmail devuelve el email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	id, _ := identityFrom(c)
	return id.Email
}
