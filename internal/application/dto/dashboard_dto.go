package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts       int               `json:"totalProducts"`
	TotalQuantity       int               `json:"totalQuantity"`
	TotalInventoryValue decimal.Decimal   `json:"totalInventoryValue" swaggertype:"number"`
	LowStockCount       int               `json:"lowStockCount"`
	CategoriesCount     int               `json:"categoriesCount"`
	CategoryBreakdown   []CategoryStatDTO `json:"categoryBreakdown"`
}

// CategoryStatDTO conteo y valor por categoría.
type CategoryStatDTO struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	TotalValue decimal.Decimal `json:"totalValue" swaggertype:"number"`
}
