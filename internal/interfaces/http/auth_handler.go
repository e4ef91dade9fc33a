package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/infrastructure/observability"
	"github.com/jhoicas/commodities-api/internal/interfaces/errcode"
)

// AuthHandler maneja registro, login y usuario actual.
type AuthHandler struct {
	uc   *auth.AuthUseCase
	prom *observability.Prom
}

// NewAuthHandler construye el handler de auth. prom puede ser nil.
func NewAuthHandler(uc *auth.AuthUseCase, prom *observability.Prom) *AuthHandler {
	return &AuthHandler{uc: uc, prom: prom}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea la cuenta y devuelve un token de acceso. El rol por defecto es STORE_KEEPER.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "name, email, password, role"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bind(c, &in); err != nil {
		h.observe("register", err)
		return err
	}
	out, err := h.uc.Register(c.UserContext(), in)
	h.observe("register", err)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		h.observe("login", err)
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	h.observe("login", err)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuario actual
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *AuthHandler) observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(errcode.Classify(err).Code)
	}
	h.prom.ObserveAuth(op, outcome)
}
