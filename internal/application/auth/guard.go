package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// Identity identidad autenticada extraída de un token válido. Se pasa por valor.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Level nivel de acceso de una operación.
type Level int

const (
	// Public no inspecciona el token (un token inválido se ignora).
	Public Level = iota
	// Authenticated exige token válido y, si Roles no está vacío, uno de esos roles.
	Authenticated
)

// Policy política de acceso de una operación.
type Policy struct {
	Level Level
	Roles []string // vacío = cualquier rol autenticado
}

// PublicPolicy política de operaciones abiertas (register, login).
func PublicPolicy() Policy { return Policy{Level: Public} }

// AuthenticatedPolicy política para usuarios autenticados, opcionalmente restringida a roles.
func AuthenticatedPolicy(roles ...string) Policy {
	return Policy{Level: Authenticated, Roles: roles}
}

// Guard control de acceso: autentica el header Authorization y autoriza por rol.
// Es de solo lectura; nunca toca el almacenamiento.
type Guard struct {
	verifier TokenVerifier
}

// NewGuard construye el guard con el verificador de tokens.
func NewGuard(verifier TokenVerifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authenticate valida "Bearer <token>" (esquema sin distinguir mayúsculas). Header ausente,
// formato incorrecto, token vacío o token inválido devuelven ErrUnauthenticated.
func (g *Guard) Authenticate(authorizationHeader string) (*Identity, error) {
	token, ok := BearerToken(authorizationHeader)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := g.verifier.Verify(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !entity.IsValidRole(claims.Role) {
		return nil, domain.ErrUnauthenticated
	}
	return &Identity{UserID: claims.UserID(), Email: claims.Email, Role: claims.Role}, nil
}

// Authorize devuelve ErrForbidden si el rol no está en allowedRoles. Lista vacía = cualquier rol.
func Authorize(identity *Identity, allowedRoles ...string) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if len(allowedRoles) == 0 {
		return nil
	}
	for _, r := range allowedRoles {
		if identity.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

// Check aplica la política a una petición: Unchecked -> Authenticated -> Authorized | Rejected.
// En políticas públicas devuelve (nil, nil) sin mirar el header.
func (g *Guard) Check(authorizationHeader string, p Policy) (*Identity, error) {
	if p.Level == Public {
		return nil, nil
	}
	identity, err := g.Authenticate(authorizationHeader)
	if err != nil {
		return nil, err
	}
	if err := Authorize(identity, p.Roles...); err != nil {
		return nil, err
	}
	return identity, nil
}

// BearerToken extrae el token de "Bearer <token>".
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

type identityKey struct{}

// WithIdentity guarda una copia de la identidad en el contexto.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, *identity)
}

// IdentityFrom devuelve la identidad del contexto, si existe.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
