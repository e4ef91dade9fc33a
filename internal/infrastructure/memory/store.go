package memory

import "context"

// Store agrupa los repositorios en memoria (almacén embebido, sin persistencia).
type Store struct {
	Users    *UserRepository
	Products *ProductRepository
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{Users: NewUserRepository(), Products: NewProductRepository()}
}

// Ping siempre está disponible.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Reset vacía todas las tablas.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.Products.DeleteAll(ctx); err != nil {
		return err
	}
	return s.Users.DeleteAll(ctx)
}
