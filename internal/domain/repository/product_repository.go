package repository

import (
	"context"

	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// No hay transacciones entre productos ni relaciones en cascada.
type ProductRepository interface {
	// List devuelve todos los productos ordenados por created_at descendente.
	List(ctx context.Context) ([]*entity.Product, error)
	// GetByID devuelve (nil, nil) si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
