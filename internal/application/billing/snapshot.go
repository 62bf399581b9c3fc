package billing

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// SnapshotBuilder congela los datos vivos de fletes y servicios al emitir una factura.
type SnapshotBuilder struct {
	fleteRepo    repository.FleteRepository
	servicioRepo repository.ServicioRepository
}

// NewSnapshotBuilder construye el builder.
func NewSnapshotBuilder(fleteRepo repository.FleteRepository, servicioRepo repository.ServicioRepository) *SnapshotBuilder {
	return &SnapshotBuilder{fleteRepo: fleteRepo, servicioRepo: servicioRepo}
}

// Build arma el snapshot en el orden de fletes de la factura.
// Un flete o servicio inexistente se omite con un warning; no es un error.
func (b *SnapshotBuilder) Build(ctx context.Context, f *entity.Factura, numero string, emision, vencimiento time.Time) (entity.FacturaSnapshot, error) {
	snap := entity.FacturaSnapshot{
		NumeroFactura:    numero,
		FechaEmision:     emision,
		FechaVencimiento: vencimiento,
		MontoTotal:       f.MontoTotal,
		Moneda:           f.Moneda,
		Fletes:           make([]entity.FleteSnapshot, 0, len(f.Fletes)),
	}
	fletes, err := b.fleteRepo.GetByIDs(ctx, f.FleteIDs())
	if err != nil {
		return snap, domain.Upstream("snapshot: obtener fletes", err)
	}
	byID := make(map[string]*entity.Flete, len(fletes))
	for _, fl := range fletes {
		byID[fl.ID] = fl
	}

	for _, ref := range f.Fletes {
		fl, ok := byID[ref.FleteID]
		if !ok {
			log.Warn().Str("factura_id", f.ID).Str("flete_id", ref.FleteID).Msg("snapshot: flete inexistente, se omite")
			continue
		}
		s, err := b.servicioRepo.GetByID(ctx, fl.ServicioID)
		if err != nil {
			return snap, domain.Upstream("snapshot: obtener servicio", err)
		}
		if s == nil {
			log.Warn().Str("factura_id", f.ID).Str("servicio_id", fl.ServicioID).Msg("snapshot: servicio inexistente, se omite el flete")
			continue
		}
		snap.Fletes = append(snap.Fletes, entity.FleteSnapshot{
			FleteID:     fl.ID,
			CodigoFlete: fl.CodigoFlete,
			MontoFlete:  fl.MontoFlete,
			Servicio:    servicioSnapshot(s),
		})
	}
	return snap, nil
}

func servicioSnapshot(s *entity.Servicio) entity.ServicioSnapshot {
	return entity.ServicioSnapshot{
		ServicioID:     s.ID,
		CodigoServicio: s.CodigoServicio,
		Cliente:        s.Cliente.RazonSocial,
		Cuenta:         s.Cuenta.Nombre,
		Proveedor:      s.Proveedor.RazonSocial,
		Placa:          s.Flota.Placa,
		Conductor:      s.ConductorPrincipal(),
		Auxiliar:       s.AuxiliarPrincipal(),
		M3:             s.M3,
		TN:             s.TN,
		TipoServicio:   s.TipoServicio,
		Modalidad:      s.Modalidad,
		Zona:           s.Zona,
		FechaServicio:  copyTime(s.FechaServicio),
		FechaSalida:    copyTime(s.FechaSalida),
		GIARR:          s.GIARR,
		GIART:          s.GIART,
		Origen:         s.Origen,
		Destino:        s.Destino,
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
