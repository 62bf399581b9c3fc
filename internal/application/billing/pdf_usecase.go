package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura emitida.
// Se arma desde el snapshot de la gestión para que el documento no cambie si los datos vivos se editan.
type PDFUseCase struct {
	facturaRepo repository.FacturaRepository
	gestionRepo repository.GestionRepository
	snapshots   *SnapshotBuilder
	generator   FacturaPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	facturaRepo repository.FacturaRepository,
	gestionRepo repository.GestionRepository,
	snapshots *SnapshotBuilder,
	generator FacturaPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		facturaRepo: facturaRepo,
		gestionRepo: gestionRepo,
		snapshots:   snapshots,
		generator:   generator,
	}
}

// DownloadFacturaPDF devuelve el PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound      si la factura no existe.
//   - domain.ErrIllegalState  si la factura sigue en Borrador (sin número legal).
func (uc *PDFUseCase) DownloadFacturaPDF(ctx context.Context, facturaID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar factura ─────────────────────────────────────────────────────
	f, err := uc.facturaRepo.GetByID(ctx, facturaID)
	if err != nil {
		return nil, "", domain.Upstream("pdf: obtener factura", err)
	}
	if f == nil {
		return nil, "", domain.NotFound("factura %s no existe", facturaID)
	}

	// ── 2. Validar que ya fue emitida ─────────────────────────────────────────
	if f.Estado == entity.EstadoFacturaBorrador || f.NumeroFactura == nil {
		return nil, "", domain.IllegalState("la factura %s está en Borrador; emítala antes de descargar el PDF", f.CodigoFactura)
	}

	// ── 3. Snapshot: el de la gestión o, si no existe, uno armado al vuelo ────
	g, err := uc.gestionRepo.GetByCodigoFactura(ctx, f.CodigoFactura)
	if err != nil {
		return nil, "", domain.Upstream("pdf: obtener gestión", err)
	}
	var snap entity.FacturaSnapshot
	if g != nil {
		snap = g.Snapshot
	} else {
		if f.FechaEmision == nil || f.FechaVencimiento == nil {
			return nil, "", domain.IllegalState("la factura %s no tiene fechas de emisión", f.CodigoFactura)
		}
		if snap, err = uc.snapshots.Build(ctx, f, f.Numero(), *f.FechaEmision, *f.FechaVencimiento); err != nil {
			return nil, "", err
		}
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.GenerateFacturaPDF(ctx, f, &snap, g)
	if err != nil {
		return nil, "", domain.Upstream("pdf: generación fallida", err)
	}

	filename = fmt.Sprintf("factura_%s.pdf", strings.ReplaceAll(f.Numero(), "/", "-"))
	return pdfBytes, filename, nil
}
