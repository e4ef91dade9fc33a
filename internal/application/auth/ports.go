package auth

import "github.com/jhoicas/commodities-api/pkg/jwt"

// PasswordHasher puerto para hashear y verificar passwords (bcrypt en infraestructura).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// TokenIssuer emite tokens de acceso firmados.
type TokenIssuer interface {
	Sign(userID, email, role string) (string, error)
}

// TokenVerifier valida tokens de acceso. Debe ser puro: sin I/O ni estado.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}
