// Package pdf genera la representación impresa de una factura emitida a partir de su snapshot.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón social + RUC   │  N° Factura + Fechas         │
//	│  CLIENTE(S) del snapshot + moneda                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Flete | Servicio | Placa | Ruta | Fecha | Monto      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Detracción / Neto / Cobrado / Saldo        │
//	│  FOOTER: QR + leyenda                                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/fletes-api/internal/application/billing"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

var _ billing.FacturaPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Emisor datos de la empresa que factura.
type Emisor struct {
	RazonSocial string
	RUC         string
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.FacturaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	emisor Emisor
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(emisor Emisor) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{emisor: emisor}
}

// GenerateFacturaPDF genera el PDF y devuelve sus bytes. gestion puede ser nil.
func (g *MarotoPDFGenerator) GenerateFacturaPDF(
	_ context.Context,
	factura *entity.Factura,
	snap *entity.FacturaSnapshot,
	gestion *entity.Gestion,
) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("pdf: factura %s sin snapshot", factura.CodigoFactura)
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+snap.NumeroFactura, true).
		WithAuthor(nonEmpty(g.emisor.RazonSocial, "—"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.emisor, factura, snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(snap)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(snap, gestion))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(g.emisor, snap))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(e Emisor, f *entity.Factura, snap *entity.FacturaSnapshot) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(e.RazonSocial, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+nonEmpty(e.RUC, "—"), props.Text{Size: 9, Top: 9, Color: colorGray}),
			text.New("Código interno: "+f.CodigoFactura, props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA DE SERVICIO DE TRANSPORTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(snap.NumeroFactura, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Emisión: "+snap.FechaEmision.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New("Vencimiento: "+snap.FechaVencimiento.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

func clienteRow(snap *entity.FacturaSnapshot) core.Row {
	clientes := strings.Join(snap.Clientes(), " / ")
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(clientes, "—"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Flete", 2, align.Left),
		h("Servicio", 2, align.Left),
		h("Placa", 1, align.Center),
		h("Ruta", 4, align.Left),
		h("Fecha", 1, align.Center),
		h("Monto", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows una fila por flete facturado, en el orden del snapshot.
func tableDetailRows(snap *entity.FacturaSnapshot) []core.Row {
	result := make([]core.Row, 0, len(snap.Fletes))
	for _, f := range snap.Fletes {
		s := f.Servicio
		fecha := "—"
		if s.FechaServicio != nil {
			fecha = s.FechaServicio.Format("02/01/2006")
		}
		ruta := nonEmpty(s.Origen, "—") + " - " + nonEmpty(s.Destino, "—")
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(f.CodigoFlete, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(s.CodigoServicio, "—"), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(nonEmpty(s.Placa, "—"), props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(ruta, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fecha, props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(snap.Moneda, f.MontoFlete), props.Text{
				Size: 7.5, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// totalsRow total del snapshot; con gestión se agregan detracción, neto, cobrado y saldo.
func totalsRow(snap *entity.FacturaSnapshot, g *entity.Gestion) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	labels := col.New(4)
	values := col.New(3)
	labels.Add(label("TOTAL:", 0))
	values.Add(value(formatMoney(snap.Moneda, snap.MontoTotal), 0))
	height := 8.0
	if g != nil {
		detr := "Detracción:"
		if g.TasaDetraccion.IsPositive() {
			detr = fmt.Sprintf("Detracción (%s%%):", g.TasaDetraccion.String())
		}
		filas := []struct {
			l string
			v decimal.Decimal
		}{
			{detr, g.MontoDetraccion},
			{"Neto a cobrar:", g.MontoNeto},
			{"Cobrado:", g.MontoPagadoAcumulado},
			{"Saldo pendiente:", g.SaldoPendiente()},
		}
		for i, f := range filas {
			top := float64(i+1) * 5
			labels.Add(label(f.l, top))
			values.Add(value(formatMoney(snap.Moneda, f.v), top))
		}
		height = 28
	}
	return row.New(height).Add(col.New(5), labels, values)
}

func footerRow(e Emisor, snap *entity.FacturaSnapshot) core.Row {
	qr := strings.Join([]string{
		e.RUC, snap.NumeroFactura, snap.FechaEmision.Format("2006-01-02"), snap.MontoTotal.StringFixed(2), snap.Moneda,
	}, "|")
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New(fmt.Sprintf("%d flete(s) facturado(s).", len(snap.Fletes)), props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Representación impresa generada a partir del registro histórico de emisión.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func simbolo(moneda string) string {
	switch moneda {
	case "PEN":
		return "S/ "
	case "USD":
		return "US$ "
	default:
		return moneda + " "
	}
}

// formatMoney dos decimales con separador de miles. Ej: 1234567.5 → "S/ 1,234,567.50".
func formatMoney(moneda string, d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	ent, dec, _ := strings.Cut(s, ".")

	n := len(ent)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(ent) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := simbolo(moneda) + string(buf) + "." + dec
	if neg {
		return "-" + out
	}
	return out
}
