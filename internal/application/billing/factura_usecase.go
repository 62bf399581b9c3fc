package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// FacturaUseCase ciclo de vida de la factura: borrador, emisión, pago y eliminación.
type FacturaUseCase struct {
	facturaRepo repository.FacturaRepository
	fleteRepo   repository.FleteRepository
	gestionRepo repository.GestionRepository
	tx          repository.TxRunner
	codes       CodeGenerator
	snapshots   *SnapshotBuilder
	gestiones   *GestionUseCase
	exporter    SpreadsheetExporter
	cfg         Config
	now         func() time.Time
}

// NewFacturaUseCase construye el caso de uso.
func NewFacturaUseCase(
	facturaRepo repository.FacturaRepository,
	fleteRepo repository.FleteRepository,
	gestionRepo repository.GestionRepository,
	tx repository.TxRunner,
	codes CodeGenerator,
	snapshots *SnapshotBuilder,
	gestiones *GestionUseCase,
	exporter SpreadsheetExporter,
	cfg Config,
) *FacturaUseCase {
	return &FacturaUseCase{
		facturaRepo: facturaRepo,
		fleteRepo:   fleteRepo,
		gestionRepo: gestionRepo,
		tx:          tx,
		codes:       codes,
		snapshots:   snapshots,
		gestiones:   gestiones,
		exporter:    exporter,
		cfg:         cfg,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *FacturaUseCase) WithClock(now func() time.Time) *FacturaUseCase {
	uc.now = now
	return uc
}

// Create registra una factura en Borrador. No vincula los fletes: eso ocurre al emitir.
func (uc *FacturaUseCase) Create(ctx context.Context, in dto.CreateFacturaRequest) (*dto.FacturaResponse, error) {
	if len(in.Fletes) == 0 {
		return nil, domain.Validation("la factura debe incluir al menos un flete")
	}
	if in.MontoTotal.IsNegative() {
		return nil, domain.Validation("monto_total no puede ser negativo")
	}
	moneda, err := uc.moneda(in.Moneda)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(in.Fletes))
	for _, id := range in.Fletes {
		if _, err := uuid.Parse(id); err != nil {
			return nil, domain.Validation("id de flete inválido: %q", id)
		}
		if seen[id] {
			return nil, domain.Validation("el flete %s está repetido en la solicitud", id)
		}
		seen[id] = true
	}

	fletes, err := uc.fleteRepo.GetByIDs(ctx, in.Fletes)
	if err != nil {
		return nil, domain.Upstream("facturas: obtener fletes", err)
	}
	byID := make(map[string]*entity.Flete, len(fletes))
	for _, f := range fletes {
		byID[f.ID] = f
	}

	refs := make([]entity.FleteRef, 0, len(in.Fletes))
	suma := decimal.Zero
	for _, id := range in.Fletes {
		f, ok := byID[id]
		if !ok {
			return nil, domain.Validation("el flete %s no existe", id)
		}
		if f.PerteneceAFactura {
			return nil, domain.Validation("el flete %s ya pertenece a la factura %s", f.CodigoFlete, derefStr(f.CodigoFactura))
		}
		if f.EstadoFlete == entity.EstadoFleteCancelado {
			return nil, domain.Validation("el flete %s está cancelado", f.CodigoFlete)
		}
		refs = append(refs, entity.FleteRef{FleteID: f.ID, CodigoFlete: f.CodigoFlete})
		suma = suma.Add(f.MontoFlete)
	}

	total := in.MontoTotal
	if total.IsZero() {
		total = suma
	}

	code, err := uc.codes.Next(ctx, sequence.Facturas)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	f := &entity.Factura{
		ID:                 uuid.New().String(),
		CodigoFactura:      code,
		Fletes:             refs,
		Estado:             entity.EstadoFacturaBorrador,
		EsBorrador:         true,
		MontoTotal:         total.Round(2),
		Moneda:             moneda,
		Descripcion:        strings.TrimSpace(in.Descripcion),
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	if err := uc.facturaRepo.Create(ctx, f); err != nil {
		return nil, domain.Upstream("facturas: crear", err)
	}
	log.Info().Str("factura_id", f.ID).Str("codigo_factura", code).Int("fletes", len(refs)).Msg("factura borrador creada")
	return ToFacturaResponse(f), nil
}

func (uc *FacturaUseCase) moneda(in string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(in))
	if m == "" {
		return uc.cfg.MonedaDefault, nil
	}
	if len(m) != 3 {
		return "", domain.Validation("moneda inválida %q (código ISO de 3 letras)", in)
	}
	for _, r := range m {
		if r < 'A' || r > 'Z' {
			return "", domain.Validation("moneda inválida %q (código ISO de 3 letras)", in)
		}
	}
	return m, nil
}

// emisionTTL tiempo tras el cual una marca de emisión abandonada (proceso caído) deja de bloquear.
const emisionTTL = 5 * time.Minute

// Issue emite la factura: asigna número legal, congela el snapshot, vincula los fletes
// y crea el registro de gestión. Antes de tocar nada toma la factura con una escritura
// condicional, así dos emisiones del mismo borrador no se pisan. Con transacciones todo
// es atómico; sin ellas se compensa liberando solo los fletes vinculados en este intento.
func (uc *FacturaUseCase) Issue(ctx context.Context, id string, in dto.EmitirFacturaRequest) (*dto.FacturaResponse, error) {
	claim := uc.now()
	tomada, err := uc.facturaRepo.ClaimEmision(ctx, id, claim, emisionTTL)
	if err != nil {
		return nil, domain.Upstream("facturas: tomar emisión", err)
	}
	f, err := uc.load(ctx, id)
	if err != nil {
		if tomada {
			uc.liberarEmision(ctx, id, claim)
		}
		return nil, err
	}
	if !tomada {
		if f.Estado != entity.EstadoFacturaBorrador {
			return nil, domain.IllegalState("solo se puede emitir una factura en Borrador (estado actual: %s)", f.Estado)
		}
		return nil, domain.IllegalState("la factura %s tiene una emisión en curso", f.CodigoFactura)
	}

	out, err := uc.emitir(ctx, f, in)
	if err != nil {
		uc.liberarEmision(ctx, id, claim)
		return nil, err
	}
	return out, nil
}

func (uc *FacturaUseCase) emitir(ctx context.Context, f *entity.Factura, in dto.EmitirFacturaRequest) (*dto.FacturaResponse, error) {
	numero := strings.TrimSpace(in.NumeroFactura)
	if numero == "" {
		return nil, domain.Validation("numero_factura es obligatorio")
	}
	other, err := uc.facturaRepo.GetByNumero(ctx, numero)
	if err != nil {
		return nil, domain.Upstream("facturas: verificar número", err)
	}
	if other != nil && other.ID != f.ID {
		return nil, domain.Validation("numero_factura %s ya está registrado en %s", numero, other.CodigoFactura)
	}

	emision, vencimiento, err := uc.fechasEmision(in)
	if err != nil {
		return nil, err
	}

	fletes, err := uc.fleteRepo.GetByIDs(ctx, f.FleteIDs())
	if err != nil {
		return nil, domain.Upstream("facturas: obtener fletes", err)
	}
	for _, fl := range fletes {
		if fl.PerteneceAFactura && derefStr(fl.FacturaID) != f.ID {
			return nil, domain.Validation("el flete %s ya pertenece a la factura %s", fl.CodigoFlete, derefStr(fl.CodigoFactura))
		}
	}

	snap, err := uc.snapshots.Build(ctx, f, numero, emision, vencimiento)
	if err != nil {
		return nil, err
	}

	// Reintento de una emisión incompleta: se reutiliza la gestión existente.
	g, err := uc.gestionRepo.GetByCodigoFactura(ctx, f.CodigoFactura)
	if err != nil {
		return nil, domain.Upstream("facturas: obtener gestión", err)
	}
	createGestion := g == nil
	if createGestion {
		if g, err = uc.gestiones.prepare(ctx, f, snap); err != nil {
			return nil, err
		}
	}

	f.NumeroFactura = &numero
	f.FechaEmision = &emision
	f.FechaVencimiento = &vencimiento
	f.Estado = entity.EstadoFacturaEmitida
	f.EsBorrador = false
	f.FechaActualizacion = uc.now()

	// vinculados: fletes que estaban libres y este intento tomó
	var vinculados []string
	err = uc.tx.Run(ctx, func(ctx context.Context) error {
		for _, fl := range fletes {
			ok, err := uc.fleteRepo.Bind(ctx, fl.ID, f.ID, f.CodigoFactura)
			if err != nil {
				return domain.Upstream("facturas: vincular flete", err)
			}
			if !ok {
				return domain.Validation("el flete %s fue vinculado a otra factura", fl.CodigoFlete)
			}
			if !fl.PerteneceAFactura {
				vinculados = append(vinculados, fl.ID)
			}
		}
		if createGestion {
			if err := uc.gestionRepo.Create(ctx, g); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					return domain.IllegalState("la factura %s ya tiene registro de gestión", f.CodigoFactura)
				}
				return domain.Upstream("facturas: crear gestión", err)
			}
		}
		if err := uc.facturaRepo.Update(ctx, f); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Validation("numero_factura %s ya está registrado", numero)
			}
			return domain.Upstream("facturas: actualizar", err)
		}
		return nil
	})
	if err != nil {
		if !uc.tx.Transactional() {
			uc.compensarEmision(ctx, f, g, createGestion, vinculados)
		}
		return nil, err
	}

	log.Info().
		Str("factura_id", f.ID).
		Str("numero_factura", numero).
		Str("codigo_gestion", g.CodigoGestion).
		Int("fletes", len(snap.Fletes)).
		Msg("factura emitida")
	return ToFacturaResponse(f), nil
}

// compensarEmision deshace una emisión parcial sin transacción. Solo libera los fletes que
// este intento vinculó y que siguen apuntando a la factura.
func (uc *FacturaUseCase) compensarEmision(ctx context.Context, f *entity.Factura, g *entity.Gestion, gestionCreada bool, vinculados []string) {
	if n, err := uc.fleteRepo.Release(ctx, f.ID, vinculados); err != nil {
		log.Error().Err(err).Str("factura_id", f.ID).Msg("emisión: no se pudieron liberar los fletes")
	} else if n > 0 {
		log.Warn().Str("factura_id", f.ID).Int64("fletes", n).Msg("emisión fallida: fletes liberados")
	}
	if gestionCreada && g != nil {
		if _, err := uc.gestionRepo.Delete(ctx, g.ID); err != nil {
			log.Error().Err(err).Str("gestion_id", g.ID).Msg("emisión: no se pudo eliminar la gestión")
		}
	}
}

func (uc *FacturaUseCase) liberarEmision(ctx context.Context, id string, claim time.Time) {
	if err := uc.facturaRepo.ReleaseEmision(context.WithoutCancel(ctx), id, claim); err != nil {
		log.Error().Err(err).Str("factura_id", id).Msg("emisión: no se pudo liberar la marca")
	}
}

func (uc *FacturaUseCase) fechasEmision(in dto.EmitirFacturaRequest) (time.Time, time.Time, error) {
	emision := filters.StartOfDay(uc.now())
	if e, err := filters.ParseDate("fecha_emision", in.FechaEmision); err != nil {
		return time.Time{}, time.Time{}, err
	} else if e != nil {
		emision = *e
	}
	dias := uc.cfg.DiasVencimiento
	if dias <= 0 {
		dias = 30
	}
	vencimiento := emision.AddDate(0, 0, dias)
	if v, err := filters.ParseDate("fecha_vencimiento", in.FechaVencimiento); err != nil {
		return time.Time{}, time.Time{}, err
	} else if v != nil {
		vencimiento = *v
	}
	if vencimiento.Before(emision) {
		return time.Time{}, time.Time{}, domain.Validation("fecha_vencimiento no puede ser anterior a fecha_emision")
	}
	return emision, vencimiento, nil
}

// Delete libera los fletes y elimina la factura (y su gestión si no tiene cobros).
// Sin transacción el orden es liberar → gestión → factura: ante una falla intermedia
// queda a lo sumo una factura sin fletes, nunca un flete con doble vínculo.
func (uc *FacturaUseCase) Delete(ctx context.Context, id string) error {
	f, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	g, err := uc.gestionRepo.GetByCodigoFactura(ctx, f.CodigoFactura)
	if err != nil {
		return domain.Upstream("facturas: obtener gestión", err)
	}
	if g != nil && (len(g.Pagos) > 0 || g.MontoPagadoAcumulado.IsPositive()) {
		return domain.IllegalState("la factura %s tiene cobros registrados; anúlela en lugar de eliminarla", f.CodigoFactura)
	}

	var liberados int64
	err = uc.tx.Run(ctx, func(ctx context.Context) error {
		n, err := uc.fleteRepo.ReleaseByFactura(ctx, f.ID)
		if err != nil {
			return domain.Upstream("facturas: liberar fletes", err)
		}
		liberados = n
		if g != nil {
			if _, err := uc.gestionRepo.Delete(ctx, g.ID); err != nil {
				return domain.Upstream("facturas: eliminar gestión", err)
			}
		}
		deleted, err := uc.facturaRepo.Delete(ctx, f.ID)
		if err != nil {
			return domain.Upstream("facturas: eliminar", err)
		}
		if !deleted {
			return domain.NotFound("factura %s no existe", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Str("factura_id", f.ID).Int64("fletes_liberados", liberados).Msg("factura eliminada")
	return nil
}

// MarkPaid pasa la factura a Pagada y salda su gestión.
func (uc *FacturaUseCase) MarkPaid(ctx context.Context, id string, in dto.MarcarPagadaRequest) (*dto.FacturaResponse, error) {
	f, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.Estado.CanTransitionTo(entity.EstadoFacturaPagada) {
		return nil, domain.IllegalState("no se puede pasar de %s a %s", f.Estado, entity.EstadoFacturaPagada)
	}
	now := uc.now()
	fecha := filters.StartOfDay(now)
	if p, err := filters.ParseDate("fecha_pago", in.FechaPago); err != nil {
		return nil, err
	} else if p != nil {
		fecha = *p
	}
	g, err := uc.gestionRepo.GetByCodigoFactura(ctx, f.CodigoFactura)
	if err != nil {
		return nil, domain.Upstream("facturas: obtener gestión", err)
	}

	f.Estado = entity.EstadoFacturaPagada
	f.FechaPago = &fecha
	f.FechaActualizacion = now
	err = uc.tx.Run(ctx, func(ctx context.Context) error {
		if err := uc.facturaRepo.Update(ctx, f); err != nil {
			return domain.Upstream("facturas: marcar pagada", err)
		}
		if g == nil || g.EstadoPagoNeto == entity.EstadoPagoAnulado {
			return nil
		}
		if g.MontoPagadoAcumulado.LessThan(g.MontoNeto) {
			g.FechaUltimoPago = &fecha
		}
		g.EstadoPagoNeto = entity.EstadoPagoPagado
		g.MontoPagadoAcumulado = g.MontoNeto
		g.UltimaActualizacion = now
		if err := uc.gestionRepo.Update(ctx, g); err != nil {
			return errEscritura("facturas: saldar gestión", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("factura_id", f.ID).Str("fecha_pago", fecha.Format(filters.DateLayout)).Msg("factura pagada")
	return ToFacturaResponse(f), nil
}

// Get devuelve una factura por ID.
func (uc *FacturaUseCase) Get(ctx context.Context, id string) (*dto.FacturaResponse, error) {
	f, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToFacturaResponse(f), nil
}

// GetByNumero devuelve una factura por su número legal.
func (uc *FacturaUseCase) GetByNumero(ctx context.Context, numero string) (*dto.FacturaResponse, error) {
	f, err := uc.facturaRepo.GetByNumero(ctx, numero)
	if err != nil {
		return nil, domain.Upstream("facturas: obtener por número", err)
	}
	if f == nil {
		return nil, domain.NotFound("factura con número %s no existe", numero)
	}
	return ToFacturaResponse(f), nil
}

// List lista facturas paginadas.
func (uc *FacturaUseCase) List(ctx context.Context, in dto.FacturaListRequest, page dto.PageRequest) (*dto.FacturaListResponse, error) {
	page.DefaultPage()
	items, total, err := uc.list(ctx, in, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	out := make([]dto.FacturaResponse, 0, len(items))
	for _, f := range items {
		out = append(out, *ToFacturaResponse(f))
	}
	return &dto.FacturaListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *FacturaUseCase) list(ctx context.Context, in dto.FacturaListRequest, p repository.Page) ([]*entity.Factura, int64, error) {
	filter, err := uc.facturaFilter(ctx, in)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := uc.facturaRepo.List(ctx, filter, p)
	if err != nil {
		return nil, 0, domain.Upstream("facturas: listar", err)
	}
	return items, total, nil
}

func (uc *FacturaUseCase) facturaFilter(ctx context.Context, in dto.FacturaListRequest) (repository.FacturaFilter, error) {
	f := repository.FacturaFilter{
		NumeroFactura: strings.TrimSpace(in.NumeroFactura),
		Moneda:        strings.ToUpper(strings.TrimSpace(in.Moneda)),
		FleteID:       strings.TrimSpace(in.FleteID),
	}
	if in.Estado != "" {
		estado := entity.EstadoFactura(in.Estado)
		if !estado.Valid() {
			return f, domain.Validation("estado inválido: %s", in.Estado)
		}
		f.Estado = estado
	}
	var err error
	if f.EsBorrador, err = filters.ParseBool("es_borrador", in.EsBorrador); err != nil {
		return f, err
	}
	if f.FechaEmision, err = filters.ParseDateRange("fecha_emision_desde", in.FechaEmisionDesde, "fecha_emision_hasta", in.FechaEmisionHasta); err != nil {
		return f, err
	}
	if in.Periodo != "" {
		if !f.FechaEmision.Empty() {
			return f, domain.Validation("use periodo o fecha_emision_desde/hasta, no ambos")
		}
		if f.FechaEmision, err = filters.PeriodoRange(in.Periodo, uc.now()); err != nil {
			return f, err
		}
	}
	if f.FechaVencimiento, err = filters.ParseDateRange("fecha_vencimiento_desde", in.FechaVencimientoDesde, "fecha_vencimiento_hasta", in.FechaVencimientoHasta); err != nil {
		return f, err
	}
	if f.FechaPago, err = filters.ParseDateRange("fecha_pago_desde", in.FechaPagoDesde, "fecha_pago_hasta", in.FechaPagoHasta); err != nil {
		return f, err
	}
	if f.Monto, err = filters.ParseAmountRange("monto_min", in.MontoMin, "monto_max", in.MontoMax); err != nil {
		return f, err
	}
	if cliente := strings.TrimSpace(in.Cliente); cliente != "" {
		codigos, err := uc.gestionRepo.CodigosFacturaPorCliente(ctx, cliente)
		if err != nil {
			return f, domain.Upstream("facturas: filtrar por cliente", err)
		}
		if codigos == nil {
			codigos = []string{}
		}
		f.CodigosFactura = codigos
	}
	return f, nil
}

// Export genera un .xlsx con las facturas que cumplen el filtro (máximo MaxExportRows).
func (uc *FacturaUseCase) Export(ctx context.Context, in dto.FacturaListRequest) ([]byte, string, error) {
	items, _, err := uc.list(ctx, in, repository.Page{Limit: MaxExportRows})
	if err != nil {
		return nil, "", err
	}
	headers := []string{
		"Código", "Número", "Estado", "Moneda", "Monto total", "Fletes",
		"Fecha emisión", "Fecha vencimiento", "Fecha pago", "Descripción",
	}
	rows := make([][]any, 0, len(items))
	for _, f := range items {
		rows = append(rows, []any{
			f.CodigoFactura, f.Numero(), string(f.Estado), f.Moneda, f.MontoTotal.InexactFloat64(), len(f.Fletes),
			dateCell(f.FechaEmision), dateCell(f.FechaVencimiento), dateCell(f.FechaPago), f.Descripcion,
		})
	}
	data, err := uc.exporter.Export("Facturas", headers, rows)
	if err != nil {
		return nil, "", domain.Upstream("facturas: exportar", err)
	}
	return data, fmt.Sprintf("facturas_%s.xlsx", uc.now().Format("20060102_150405")), nil
}

func (uc *FacturaUseCase) load(ctx context.Context, id string) (*entity.Factura, error) {
	f, err := uc.facturaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Upstream("facturas: obtener", err)
	}
	if f == nil {
		return nil, domain.NotFound("factura %s no existe", id)
	}
	return f, nil
}
