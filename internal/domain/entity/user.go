package entity

import "time"

// Roles válidos para User.
const (
	RoleManager     = "MANAGER"
	RoleStoreKeeper = "STORE_KEEPER"
)

// Roles devuelve los roles admitidos, en orden estable.
func Roles() []string {
	return []string{RoleManager, RoleStoreKeeper}
}

// IsValidRole indica si role es uno de los roles admitidos.
func IsValidRole(role string) bool {
	return role == RoleManager || role == RoleStoreKeeper
}

// User representa un usuario del sistema. El rol no cambia después del registro.
type User struct {
	ID           string
	Email        string // único, comparación exacta (sensible a mayúsculas)
	PasswordHash string // bcrypt hash, nunca sale de la capa de aplicación
	Name         string
	Role         string // MANAGER, STORE_KEEPER
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
