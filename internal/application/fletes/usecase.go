// Package fletes casos de uso del libro de fletes (unidades facturables ligadas a un servicio).
package fletes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/application/filters"
	"github.com/jhoicas/fletes-api/internal/application/sequence"
	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// CodeGenerator emite códigos de secuencia.
type CodeGenerator interface {
	Next(ctx context.Context, s sequence.Spec) (string, error)
}

// FleteUseCase CRUD de fletes con las reglas de valorización y vínculo a factura.
type FleteUseCase struct {
	fleteRepo    repository.FleteRepository
	servicioRepo repository.ServicioRepository
	codes        CodeGenerator
	now          func() time.Time
}

// NewFleteUseCase construye el caso de uso.
func NewFleteUseCase(fleteRepo repository.FleteRepository, servicioRepo repository.ServicioRepository, codes CodeGenerator) *FleteUseCase {
	return &FleteUseCase{
		fleteRepo:    fleteRepo,
		servicioRepo: servicioRepo,
		codes:        codes,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *FleteUseCase) WithClock(now func() time.Time) *FleteUseCase {
	uc.now = now
	return uc
}

// Create registra un flete PENDIENTE con monto cero para el servicio.
func (uc *FleteUseCase) Create(ctx context.Context, in dto.CreateFleteRequest) (*dto.FleteResponse, error) {
	if _, err := uuid.Parse(in.ServicioID); err != nil {
		return nil, domain.Validation("servicio_id inválido: %s", in.ServicioID)
	}
	servicio, err := uc.servicioRepo.GetByID(ctx, in.ServicioID)
	if err != nil {
		return nil, domain.Upstream("fletes: obtener servicio", err)
	}
	if servicio == nil {
		return nil, domain.NotFound("servicio %s no existe", in.ServicioID)
	}
	f, err := uc.newFlete(ctx, servicio.ID, in.Observaciones)
	if err != nil {
		return nil, err
	}
	return ToFleteResponse(f), nil
}

func (uc *FleteUseCase) newFlete(ctx context.Context, servicioID, observaciones string) (*entity.Flete, error) {
	code, err := uc.codes.Next(ctx, sequence.Fletes)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	f := &entity.Flete{
		ID:                 uuid.New().String(),
		CodigoFlete:        code,
		ServicioID:         servicioID,
		EstadoFlete:        entity.EstadoFletePendiente,
		MontoFlete:         decimal.Zero,
		Observaciones:      observaciones,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	if err := uc.fleteRepo.Create(ctx, f); err != nil {
		return nil, domain.Upstream("fletes: crear", err)
	}
	log.Info().Str("flete_id", f.ID).Str("codigo_flete", code).Str("servicio_id", servicioID).Msg("flete creado")
	return f, nil
}

// SetMonto valoriza el flete. Un flete ya facturado tiene el monto congelado.
func (uc *FleteUseCase) SetMonto(ctx context.Context, id string, monto decimal.Decimal) (*dto.FleteResponse, error) {
	f, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.PerteneceAFactura {
		return nil, domain.IllegalState("el flete %s pertenece a la factura %s; su monto no puede cambiar", f.CodigoFlete, deref(f.CodigoFactura))
	}
	if f.EstadoFlete == entity.EstadoFleteCancelado {
		return nil, domain.IllegalState("el flete %s está cancelado", f.CodigoFlete)
	}
	if !f.SetMonto(monto) {
		return nil, domain.Validation("monto_flete no puede ser negativo")
	}
	f.FechaActualizacion = uc.now()
	if err := uc.fleteRepo.UpdateMonto(ctx, f); err != nil {
		return nil, domain.Upstream("fletes: actualizar monto", err)
	}
	return ToFleteResponse(f), nil
}

// Delete elimina un flete libre y cancela su servicio.
func (uc *FleteUseCase) Delete(ctx context.Context, id string) error {
	f, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if f.PerteneceAFactura {
		return domain.IllegalState("el flete %s pertenece a la factura %s; anule o elimine la factura primero", f.CodigoFlete, deref(f.CodigoFactura))
	}
	deleted, err := uc.fleteRepo.Delete(ctx, f.ID)
	if err != nil {
		return domain.Upstream("fletes: eliminar", err)
	}
	if !deleted {
		return domain.NotFound("flete %s no existe", id)
	}

	servicio, err := uc.servicioRepo.GetByID(ctx, f.ServicioID)
	if err != nil {
		return domain.Upstream("fletes: obtener servicio", err)
	}
	if servicio == nil {
		log.Warn().Str("flete_id", f.ID).Str("servicio_id", f.ServicioID).Msg("servicio del flete eliminado no existe")
		return nil
	}
	if err := uc.servicioRepo.UpdateEstado(ctx, servicio.ID, entity.EstadoServicioCancelado, false, false); err != nil {
		return domain.Upstream("fletes: cancelar servicio", err)
	}
	log.Info().Str("flete_id", f.ID).Str("servicio_id", servicio.ID).Msg("flete eliminado, servicio cancelado")
	return nil
}

// Get devuelve un flete por ID.
func (uc *FleteUseCase) Get(ctx context.Context, id string) (*dto.FleteResponse, error) {
	f, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToFleteResponse(f), nil
}

// List lista fletes paginados.
func (uc *FleteUseCase) List(ctx context.Context, in dto.FleteListRequest, page dto.PageRequest) (*dto.FleteListResponse, error) {
	page.DefaultPage()
	filter, err := fleteFilter(in)
	if err != nil {
		return nil, err
	}
	items, total, err := uc.fleteRepo.List(ctx, filter, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, domain.Upstream("fletes: listar", err)
	}
	out := make([]dto.FleteResponse, 0, len(items))
	for _, f := range items {
		out = append(out, *ToFleteResponse(f))
	}
	return &dto.FleteListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *FleteUseCase) load(ctx context.Context, id string) (*entity.Flete, error) {
	f, err := uc.fleteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Upstream("fletes: obtener", err)
	}
	if f == nil {
		return nil, domain.NotFound("flete %s no existe", id)
	}
	return f, nil
}

func fleteFilter(in dto.FleteListRequest) (repository.FleteFilter, error) {
	f := repository.FleteFilter{
		CodigoFlete:   in.CodigoFlete,
		ServicioID:    in.ServicioID,
		CodigoFactura: in.CodigoFactura,
	}
	if in.EstadoFlete != "" {
		estado := entity.EstadoFlete(in.EstadoFlete)
		if !estado.Valid() {
			return f, domain.Validation("estado_flete inválido: %s", in.EstadoFlete)
		}
		f.EstadoFlete = estado
	}
	var err error
	if f.PerteneceAFactura, err = filters.ParseBool("pertenece_a_factura", in.PerteneceAFactura); err != nil {
		return f, err
	}
	if f.Monto, err = filters.ParseAmountRange("monto_min", in.MontoMin, "monto_max", in.MontoMax); err != nil {
		return f, err
	}
	if f.FechaCreacion, err = filters.ParseDateRange("fecha_desde", in.FechaDesde, "fecha_hasta", in.FechaHasta); err != nil {
		return f, err
	}
	return f, nil
}

// ToFleteResponse mapea la entidad al DTO.
func ToFleteResponse(f *entity.Flete) *dto.FleteResponse {
	return &dto.FleteResponse{
		ID:                 f.ID,
		CodigoFlete:        f.CodigoFlete,
		ServicioID:         f.ServicioID,
		EstadoFlete:        string(f.EstadoFlete),
		MontoFlete:         f.MontoFlete,
		PerteneceAFactura:  f.PerteneceAFactura,
		FacturaID:          f.FacturaID,
		CodigoFactura:      f.CodigoFactura,
		Observaciones:      f.Observaciones,
		FechaCreacion:      filters.FormatTimestamp(f.FechaCreacion),
		FechaActualizacion: filters.FormatTimestamp(f.FechaActualizacion),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
