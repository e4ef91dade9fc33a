// Package pdf genera el reporte de inventario en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha │ solicitado por                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: productos | unidades | valor total | stock bajo      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA CATEGORÍAS: categoría | productos | valor            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA PRODUCTOS: SKU | nombre | categoría | cant | precio  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/ports"
	"github.com/jhoicas/commodities-api/internal/domain/inventory"
)

var _ ports.InventoryReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	fmt *message.Printer
}

// NewMarotoReportGenerator construye el generador; los números se formatean en español.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{fmt: message.NewPrinter(language.Spanish)}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(ctx context.Context, r ports.InventoryReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(r.Title, true).
		WithAuthor(r.GeneratedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.kpiRow(r.Stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VALOR POR CATEGORÍA"))
	m.AddRows(tableHeader([]string{"Categoría", "Productos", "Valor"}, []int{6, 2, 4}))
	m.AddRows(g.categoryRows(r.Stats.CategoryBreakdown)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle("PRODUCTOS"))
	m.AddRows(tableHeader([]string{"SKU", "Nombre", "Categoría", "Cant.", "Precio", "Valor"}, []int{2, 3, 2, 1, 2, 2}))
	m.AddRows(g.productRows(r.Products)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(r ports.InventoryReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(r.Title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Solicitado por", props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New(nonEmpty(r.GeneratedBy, "—"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func (g *MarotoReportGenerator) kpiRow(s dto.DashboardStatsDTO) core.Row {
	kpi := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Align: align.Center, Color: colorGray, Top: 2}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: c, Top: 7}),
		)
	}
	lowColor := colorPrimary
	if s.LowStockCount > 0 {
		lowColor = colorAlert
	}
	return row.New(16).Add(
		kpi("Productos", g.fmt.Sprintf("%d", s.TotalProducts), colorPrimary),
		kpi("Unidades", g.fmt.Sprintf("%d", s.TotalQuantity), colorPrimary),
		kpi("Valor del inventario", g.money(s.TotalInventoryValue), colorPrimary),
		kpi(fmt.Sprintf("Stock bajo (< %d)", inventory.LowStockThreshold), g.fmt.Sprintf("%d", s.LowStockCount), lowColor),
	)
}

func (g *MarotoReportGenerator) categoryRows(cats []dto.CategoryStatDTO) []core.Row {
	if len(cats) == 0 {
		return []core.Row{emptyRow("Sin productos registrados")}
	}
	rows := make([]core.Row, 0, len(cats))
	for _, c := range cats {
		rows = append(rows, row.New(6).Add(
			cell(nonEmpty(c.Category, "(sin categoría)"), 6, align.Left),
			cell(g.fmt.Sprintf("%d", c.Count), 2, align.Center),
			cell(g.money(c.TotalValue), 4, align.Right),
		))
	}
	return rows
}

func (g *MarotoReportGenerator) productRows(products []dto.ProductResponse) []core.Row {
	if len(products) == 0 {
		return []core.Row{emptyRow("Sin productos registrados")}
	}
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		value := p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
		qty := g.fmt.Sprintf("%d %s", p.Quantity, p.Unit)
		rows = append(rows, row.New(6).Add(
			cell(p.SKU, 2, align.Left),
			cell(truncate(p.Name, 40), 3, align.Left),
			cell(truncate(p.Category, 24), 2, align.Left),
			cellColored(qty, 1, align.Right, p.Quantity < inventory.LowStockThreshold),
			cell(g.money(p.Price), 2, align.Right),
			cell(g.money(value), 2, align.Right),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func cell(s string, size int, a align.Type) core.Col {
	return cellColored(s, size, a, false)
}

func cellColored(s string, size int, a align.Type, alert bool) core.Col {
	p := props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
	if alert {
		p.Color = colorAlert
		p.Style = fontstyle.Bold
	}
	return col.New(size).Add(text.New(s, p))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Align: align.Center, Top: 1}),
	))
}

// money formatea con separador de miles "." y decimales "," ("$1.234,50") sin pasar por float.
func (g *MarotoReportGenerator) money(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	whole, err := decimal.NewFromString(intPart)
	if err != nil {
		return "$" + fixed
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + "$" + g.fmt.Sprintf("%d", whole.IntPart()) + "," + frac
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
