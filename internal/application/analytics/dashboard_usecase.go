// Package analytics contiene los casos de uso del dashboard y del reporte de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/ports"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/domain/inventory"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

// DashboardUseCase calcula los indicadores del inventario.
//
// Cada llamada vuelve a leer todos los productos; no hay caché ni estado entre peticiones.
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	reports     ports.InventoryReportGenerator
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso. reports puede ser nil si no se expone el PDF.
func NewDashboardUseCase(productRepo repository.ProductRepository, reports ports.InventoryReportGenerator) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, reports: reports, now: time.Now}
}

// GetStats lee el inventario completo y lo agrega en una sola pasada.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar productos: %w", err)
	}
	out := ToDashboardStatsDTO(inventory.ComputeStats(products))
	return &out, nil
}

// GenerateReport arma el PDF con los indicadores y la tabla de productos.
// Indicadores y tabla salen de la misma lectura, así el reporte es consistente.
func (uc *DashboardUseCase) GenerateReport(ctx context.Context, requestedBy string) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("dashboard: generador de reportes no configurado")
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: listar productos: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *usecase.ToProductResponse(p))
	}
	report := ports.InventoryReport{
		Title:       "Reporte de inventario",
		GeneratedAt: uc.now(),
		GeneratedBy: requestedBy,
		Stats:       ToDashboardStatsDTO(inventory.ComputeStats(products)),
		Products:    items,
	}
	doc, err := uc.reports.GenerateInventoryReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("dashboard: generar reporte: %w", err)
	}
	return doc, nil
}

// ToDashboardStatsDTO convierte el agregado de dominio a DTO.
func ToDashboardStatsDTO(s inventory.Stats) dto.DashboardStatsDTO {
	breakdown := make([]dto.CategoryStatDTO, 0, len(s.CategoryBreakdown))
	for _, c := range s.CategoryBreakdown {
		breakdown = append(breakdown, dto.CategoryStatDTO{
			Category:   c.Category,
			Count:      c.Count,
			TotalValue: c.TotalValue,
		})
	}
	return dto.DashboardStatsDTO{
		TotalProducts:       s.TotalProducts,
		TotalQuantity:       s.TotalQuantity,
		TotalInventoryValue: s.TotalInventoryValue,
		LowStockCount:       s.LowStockCount,
		CategoriesCount:     s.CategoriesCount,
		CategoryBreakdown:   breakdown,
	}
}
