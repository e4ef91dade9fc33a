package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnit unidad asignada cuando el producto se crea sin unidad.
const DefaultUnit = "pcs"

// Product representa una mercancía del inventario.
// Price y Quantity no negativos se validan en la entrada, no en el almacenamiento.
type Product struct {
	ID          string
	Name        string
	Description *string // opcional (NULL)
	SKU         string  // texto libre, sin restricción de unicidad
	Category    string  // texto libre, comparación exacta
	Price       decimal.Decimal
	Quantity    int
	Unit        string
	ImageURL    *string // opcional (NULL)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StockValue devuelve price × quantity con aritmética decimal exacta.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
