package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/ports"
)

func TestMoney_FormatoEspanol(t *testing.T) {
	g := NewMarotoReportGenerator()

	assert.Equal(t, "$1.234.567,50", g.money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "$0,90", g.money(decimal.RequireFromString("0.9")))
	assert.Equal(t, "$125,00", g.money(decimal.NewFromInt(125)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "ñañ…", truncate("ñañañaña", 4))
}

func TestGenerateInventoryReport_DevuelvePDF(t *testing.T) {
	g := NewMarotoReportGenerator()
	desc := "Arroz"
	report := ports.InventoryReport{
		Title:       "Reporte de inventario",
		GeneratedAt: time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
		GeneratedBy: "manager@slooz.com",
		Stats: dto.DashboardStatsDTO{
			TotalProducts: 1, TotalQuantity: 5, TotalInventoryValue: decimal.RequireFromString("12.50"),
			LowStockCount: 1, CategoriesCount: 1,
			CategoryBreakdown: []dto.CategoryStatDTO{{Category: "Grains", Count: 1, TotalValue: decimal.RequireFromString("12.50")}},
		},
		Products: []dto.ProductResponse{{
			ID: "1", Name: "Basmati Rice", Description: &desc, SKU: "GR-001", Category: "Grains",
			Price: decimal.RequireFromString("2.50"), Quantity: 5, Unit: "kg",
		}},
	}

	doc, err := g.GenerateInventoryReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestGenerateInventoryReport_SinProductos(t *testing.T) {
	doc, err := NewMarotoReportGenerator().GenerateInventoryReport(context.Background(), ports.InventoryReport{
		Title: "Vacío", GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestGenerateInventoryReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoReportGenerator().GenerateInventoryReport(ctx, ports.InventoryReport{})
	assert.ErrorIs(t, err, context.Canceled)
}
