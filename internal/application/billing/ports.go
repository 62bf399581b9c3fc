package billing

import (
	"context"

	"github.com/jhoicas/fletes-api/internal/application/sequence"
	"github.com/jhoicas/fletes-api/internal/domain/detraccion"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

// CodeGenerator emite los códigos internos (FAC-, GES-).
type CodeGenerator interface {
	Next(ctx context.Context, s sequence.Spec) (string, error)
}

// SpreadsheetExporter serializa filas a un libro .xlsx de una hoja.
type SpreadsheetExporter interface {
	Export(sheet string, headers []string, rows [][]any) ([]byte, error)
}

// FacturaPDFGenerator genera la representación gráfica de una factura emitida a partir de su snapshot.
// gestion puede ser nil si la factura aún no tiene registro de cobranza.
type FacturaPDFGenerator interface {
	GenerateFacturaPDF(ctx context.Context, factura *entity.Factura, snapshot *entity.FacturaSnapshot, gestion *entity.Gestion) ([]byte, error)
}

// Config parámetros de negocio de facturación.
type Config struct {
	DiasVencimiento int    // emisión + N días cuando no se indica vencimiento
	MonedaDefault   string // ISO 4217
	Detraccion      detraccion.Politica
}

// DefaultConfig 30 días, PEN, umbral 400 / tasa 4%.
func DefaultConfig() Config {
	return Config{DiasVencimiento: 30, MonedaDefault: "PEN", Detraccion: detraccion.PoliticaPorDefecto()}
}

// MaxExportRows tope de filas por exportación.
const MaxExportRows = 5000
