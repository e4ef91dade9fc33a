package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// ProductRepository implementación en memoria de repository.ProductRepository.
type ProductRepository struct {
	mu   sync.RWMutex
	rows map[string]*entity.Product // las entradas no se mutan; Update las reemplaza
}

// NewProductRepository crea el repositorio vacío.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{rows: make(map[string]*entity.Product)}
}

// List devuelve copias ordenadas por created_at descendente (el más reciente primero);
// los empates se resuelven por id descendente, igual que en Postgres.
func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	rows := make([]*entity.Product, 0, len(r.rows))
	for _, row := range r.rows {
		rows = append(rows, row)
	}
	r.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, cloneProduct(row))
	}
	return out, nil
}

// GetByID devuelve una copia del producto o (nil, nil).
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

// Create inserta el producto; un ID repetido es conflicto.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[p.ID]; ok {
		return domain.ErrConflict
	}
	r.rows[p.ID] = cloneProduct(p)
	return nil
}

// Update reemplaza el producto completo; ErrNotFound si no existe.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.rows[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneProduct(p)
	next.CreatedAt = current.CreatedAt
	r.rows[p.ID] = next
	return nil
}

// Delete elimina el producto; ErrNotFound si no existe.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// DeleteAll vacía el repositorio (seed).
func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[string]*entity.Product)
	return nil
}

// Len cantidad de productos almacenados.
func (r *ProductRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.Description != nil {
		d := *p.Description
		cp.Description = &d
	}
	if p.ImageURL != nil {
		u := *p.ImageURL
		cp.ImageURL = &u
	}
	return &cp
}
