package fletes

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// ServicioUseCase transición del servicio a Completado, que habilita su flete.
type ServicioUseCase struct {
	servicioRepo repository.ServicioRepository
	fleteRepo    repository.FleteRepository
	fletes       *FleteUseCase
}

// NewServicioUseCase construye el caso de uso.
func NewServicioUseCase(servicioRepo repository.ServicioRepository, fleteRepo repository.FleteRepository, fletes *FleteUseCase) *ServicioUseCase {
	return &ServicioUseCase{servicioRepo: servicioRepo, fleteRepo: fleteRepo, fletes: fletes}
}

// Completar marca el servicio como Completado y crea su flete PENDIENTE si aún no tiene uno.
func (uc *ServicioUseCase) Completar(ctx context.Context, id string) (*dto.CompletarServicioResponse, error) {
	s, err := uc.servicioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Upstream("servicios: obtener", err)
	}
	if s == nil {
		return nil, domain.NotFound("servicio %s no existe", id)
	}
	if s.Estado == entity.EstadoServicioCancelado {
		return nil, domain.IllegalState("el servicio %s está cancelado", s.CodigoServicio)
	}
	if s.Estado != entity.EstadoServicioCompletado {
		if err := uc.servicioRepo.UpdateEstado(ctx, s.ID, entity.EstadoServicioCompletado, s.PuedeEditar, s.PuedeEliminar); err != nil {
			return nil, domain.Upstream("servicios: completar", err)
		}
	}

	out := &dto.CompletarServicioResponse{ServicioID: s.ID, Estado: string(entity.EstadoServicioCompletado)}
	exists, err := uc.fleteRepo.ExistsForServicio(ctx, s.ID)
	if err != nil {
		return nil, domain.Upstream("servicios: verificar flete", err)
	}
	if exists {
		return out, nil
	}
	f, err := uc.fletes.newFlete(ctx, s.ID, "")
	if err != nil {
		return nil, err
	}
	log.Info().Str("servicio_id", s.ID).Str("codigo_flete", f.CodigoFlete).Msg("servicio completado")
	out.FleteCreado = true
	out.Flete = ToFleteResponse(f)
	return out, nil
}
