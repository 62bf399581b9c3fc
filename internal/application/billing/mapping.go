package billing

import (
	"time"

	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/application/filters"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

// ToFacturaResponse mapea la entidad al DTO.
func ToFacturaResponse(f *entity.Factura) *dto.FacturaResponse {
	refs := make([]dto.FleteRefResponse, 0, len(f.Fletes))
	for _, r := range f.Fletes {
		refs = append(refs, dto.FleteRefResponse{FleteID: r.FleteID, CodigoFlete: r.CodigoFlete})
	}
	return &dto.FacturaResponse{
		ID:                 f.ID,
		CodigoFactura:      f.CodigoFactura,
		NumeroFactura:      f.NumeroFactura,
		Fletes:             refs,
		FechaEmision:       filters.FormatDate(f.FechaEmision),
		FechaVencimiento:   filters.FormatDate(f.FechaVencimiento),
		FechaPago:          filters.FormatDate(f.FechaPago),
		Estado:             string(f.Estado),
		EsBorrador:         f.EsBorrador,
		MontoTotal:         f.MontoTotal,
		Moneda:             f.Moneda,
		Descripcion:        f.Descripcion,
		FechaCreacion:      filters.FormatTimestamp(f.FechaCreacion),
		FechaActualizacion: filters.FormatTimestamp(f.FechaActualizacion),
	}
}

// ToGestionResponse mapea la gestión al DTO; saldo y días vencidos se calculan respecto de now.
func ToGestionResponse(g *entity.Gestion, now time.Time) *dto.GestionResponse {
	pagos := make([]dto.PagoResponse, 0, len(g.Pagos))
	for _, p := range g.Pagos {
		pagos = append(pagos, dto.PagoResponse{
			Monto:        p.Monto,
			Fecha:        filters.FormatTimestamp(p.Fecha),
			NroOperacion: p.NroOperacion,
		})
	}
	return &dto.GestionResponse{
		ID:                      g.ID,
		CodigoGestion:           g.CodigoGestion,
		CodigoFactura:           g.CodigoFactura,
		FacturaID:               g.FacturaID,
		NumeroFactura:           g.NumeroFactura,
		DatosCompletos:          toSnapshotResponse(&g.Snapshot),
		MontoTotal:              g.MontoTotal,
		EstadoDetraccion:        string(g.EstadoDetraccion),
		TasaDetraccion:          g.TasaDetraccion,
		MontoDetraccion:         g.MontoDetraccion,
		FechaPagoDetraccion:     filters.FormatDate(g.FechaPagoDetraccion),
		NroConstanciaDetraccion: g.NroConstanciaDetraccion,
		EstadoPagoNeto:          string(g.EstadoPagoNeto),
		MontoNeto:               g.MontoNeto,
		MontoPagadoAcumulado:    g.MontoPagadoAcumulado,
		SaldoPendiente:          g.SaldoPendiente(),
		DiasVencido:             g.DiasVencido(now),
		FechaProbablePago:       filters.FormatDate(g.FechaProbablePago),
		FechaUltimoPago:         filters.FormatDate(g.FechaUltimoPago),
		NroOperacion:            g.NroOperacion,
		Pagos:                   pagos,
		Prioridad:               string(g.Prioridad),
		Responsable:             g.Responsable,
		Observaciones:           g.Observaciones,
		FechaCreacion:           filters.FormatTimestamp(g.FechaCreacion),
		UltimaActualizacion:     filters.FormatTimestamp(g.UltimaActualizacion),
	}
}

func toSnapshotResponse(s *entity.FacturaSnapshot) dto.FacturaSnapshotResponse {
	fletes := make([]dto.FleteSnapshotResponse, 0, len(s.Fletes))
	for _, f := range s.Fletes {
		sv := f.Servicio
		fletes = append(fletes, dto.FleteSnapshotResponse{
			FleteID:     f.FleteID,
			CodigoFlete: f.CodigoFlete,
			MontoFlete:  f.MontoFlete,
			Servicio: dto.ServicioSnapshotResponse{
				ServicioID:     sv.ServicioID,
				CodigoServicio: sv.CodigoServicio,
				Cliente:        sv.Cliente,
				Cuenta:         sv.Cuenta,
				Proveedor:      sv.Proveedor,
				Placa:          sv.Placa,
				Conductor:      sv.Conductor,
				Auxiliar:       sv.Auxiliar,
				M3:             sv.M3,
				TN:             sv.TN,
				TipoServicio:   sv.TipoServicio,
				Modalidad:      sv.Modalidad,
				Zona:           sv.Zona,
				FechaServicio:  filters.FormatDate(sv.FechaServicio),
				FechaSalida:    filters.FormatDate(sv.FechaSalida),
				GIARR:          sv.GIARR,
				GIART:          sv.GIART,
				Origen:         sv.Origen,
				Destino:        sv.Destino,
			},
		})
	}
	out := dto.FacturaSnapshotResponse{
		NumeroFactura: s.NumeroFactura,
		MontoTotal:    s.MontoTotal,
		Moneda:        s.Moneda,
		Fletes:        fletes,
	}
	if !s.FechaEmision.IsZero() {
		out.FechaEmision = s.FechaEmision.Format(filters.DateLayout)
	}
	if !s.FechaVencimiento.IsZero() {
		out.FechaVencimiento = s.FechaVencimiento.Format(filters.DateLayout)
	}
	return out
}

// dateCell celda de fecha para exportación ("" si no hay valor).
func dateCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(filters.DateLayout)
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
