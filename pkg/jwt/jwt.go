package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret se devuelve cuando se intenta firmar o validar sin secret.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más email y role.
// Subject es el ID del usuario; el rol viaja en el token para que el RBAC no consulte la DB.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"` // "MANAGER" | "STORE_KEEPER"
}

// UserID devuelve el subject del token.
func (c *Claims) UserID() string { return c.Subject }

// Generate genera un token JWT HS256 firmado con userID (sub), email y role.
func Generate(secret, userID, email, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email: email,
		Role:  role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token está malformado, expirado, con firma incorrecta o firmado con otro algoritmo.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("claims inválidos: sub vacío")
	}
	return claims, nil
}

// Issuer firma y valida tokens con una configuración fija (secret, issuer, vigencia).
type Issuer struct {
	secret     string
	issuer     string
	expMinutes int
}

// NewIssuer construye el emisor de tokens.
func NewIssuer(secret, issuer string, expMinutes int) *Issuer {
	return &Issuer{secret: secret, issuer: issuer, expMinutes: expMinutes}
}

// Sign emite un token para la identidad dada.
func (i *Issuer) Sign(userID, email, role string) (string, error) {
	return Generate(i.secret, userID, email, role, i.issuer, i.expMinutes)
}

// Verify valida el token y devuelve sus claims.
func (i *Issuer) Verify(token string) (*Claims, error) {
	return Parse(i.secret, token)
}
