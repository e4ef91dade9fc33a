package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// LowStockThreshold un producto con quantity < LowStockThreshold cuenta como stock bajo.
const LowStockThreshold = 10

// CategoryStat acumulado de una categoría.
type CategoryStat struct {
	Category   string
	Count      int
	TotalValue decimal.Decimal // Σ price × quantity de la categoría
}

// Stats resumen del inventario completo.
type Stats struct {
	TotalProducts       int
	TotalQuantity       int
	TotalInventoryValue decimal.Decimal
	LowStockCount       int
	CategoriesCount     int
	CategoryBreakdown   []CategoryStat // orden de primera aparición
}

// ComputeStats recorre los productos una sola vez (servicio de dominio, sin estado).
// Las categorías se comparan de forma exacta: "Spices", "spices" y " Spices" son distintas.
// El orden de CategoryBreakdown sigue el orden de products.
func ComputeStats(products []*entity.Product) Stats {
	stats := Stats{
		TotalInventoryValue: decimal.Zero,
		CategoryBreakdown:   []CategoryStat{},
	}
	index := make(map[string]int) // categoría -> posición en CategoryBreakdown

	for _, p := range products {
		if p == nil {
			continue
		}
		value := p.StockValue()

		stats.TotalProducts++
		stats.TotalQuantity += p.Quantity
		stats.TotalInventoryValue = stats.TotalInventoryValue.Add(value)
		if p.Quantity < LowStockThreshold {
			stats.LowStockCount++
		}

		i, ok := index[p.Category]
		if !ok {
			i = len(stats.CategoryBreakdown)
			index[p.Category] = i
			stats.CategoryBreakdown = append(stats.CategoryBreakdown, CategoryStat{
				Category:   p.Category,
				TotalValue: decimal.Zero,
			})
		}
		stats.CategoryBreakdown[i].Count++
		stats.CategoryBreakdown[i].TotalValue = stats.CategoryBreakdown[i].TotalValue.Add(value)
	}

	stats.CategoriesCount = len(stats.CategoryBreakdown)
	return stats
}
