package ports

import (
	"context"
	"time"

	"github.com/jhoicas/commodities-api/internal/application/dto"
)

// InventoryReport datos del reporte PDF de inventario.
type InventoryReport struct {
	Title       string
	GeneratedAt time.Time
	GeneratedBy string // email de quien lo pidió
	Stats       dto.DashboardStatsDTO
	Products    []dto.ProductResponse
}

// InventoryReportGenerator genera el documento del reporte y devuelve sus bytes.
type InventoryReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, report InventoryReport) ([]byte, error)
}
