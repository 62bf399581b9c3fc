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
	"github.com/jhoicas/fletes-api/internal/domain/detraccion"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

var maxTasa = decimal.NewFromInt(100)

// intentosPago reintentos de un abono que perdió la carrera contra otra escritura.
const intentosPago = 3

// errEscritura conserva el conflicto de versión; el resto es un fallo de infraestructura.
func errEscritura(op string, err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return err
	}
	return domain.Upstream(op, err)
}

// GestionUseCase libro de cobranzas: detracción, abonos, vencimientos y anulación.
type GestionUseCase struct {
	gestionRepo repository.GestionRepository
	facturaRepo repository.FacturaRepository
	fleteRepo   repository.FleteRepository
	tx          repository.TxRunner
	codes       CodeGenerator
	snapshots   *SnapshotBuilder
	exporter    SpreadsheetExporter
	politica    detraccion.Politica
	now         func() time.Time
}

// NewGestionUseCase construye el caso de uso.
func NewGestionUseCase(
	gestionRepo repository.GestionRepository,
	facturaRepo repository.FacturaRepository,
	fleteRepo repository.FleteRepository,
	tx repository.TxRunner,
	codes CodeGenerator,
	snapshots *SnapshotBuilder,
	exporter SpreadsheetExporter,
	politica detraccion.Politica,
) *GestionUseCase {
	return &GestionUseCase{
		gestionRepo: gestionRepo,
		facturaRepo: facturaRepo,
		fleteRepo:   fleteRepo,
		tx:          tx,
		codes:       codes,
		snapshots:   snapshots,
		exporter:    exporter,
		politica:    politica,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *GestionUseCase) WithClock(now func() time.Time) *GestionUseCase {
	uc.now = now
	return uc
}

// prepare genera el código y arma la gestión de una factura a partir de su snapshot. No persiste.
func (uc *GestionUseCase) prepare(ctx context.Context, f *entity.Factura, snap entity.FacturaSnapshot) (*entity.Gestion, error) {
	code, err := uc.codes.Next(ctx, sequence.Gestiones)
	if err != nil {
		return nil, err
	}
	return NewGestion(uuid.New().String(), code, f, snap, uc.politica, uc.now()), nil
}

// NewGestion registro de cobranza inicial: detracción según la política, neto = total - detracción,
// estado Pendiente, nada cobrado y fecha probable de pago igual al vencimiento.
func NewGestion(id, codigo string, f *entity.Factura, snap entity.FacturaSnapshot, politica detraccion.Politica, now time.Time) *entity.Gestion {
	res := politica.Calcular(f.MontoTotal)
	g := &entity.Gestion{
		ID:                   id,
		CodigoGestion:        codigo,
		CodigoFactura:        f.CodigoFactura,
		FacturaID:            f.ID,
		NumeroFactura:        snap.NumeroFactura,
		Snapshot:             snap,
		MontoTotal:           f.MontoTotal,
		EstadoDetraccion:     res.Estado,
		TasaDetraccion:       res.Tasa,
		MontoDetraccion:      res.Monto,
		EstadoPagoNeto:       entity.EstadoPagoPendiente,
		MontoNeto:            res.Neto,
		MontoPagadoAcumulado: decimal.Zero,
		Pagos:                []entity.Pago{},
		Prioridad:            entity.PrioridadMedia,
		FechaCreacion:        now,
		UltimaActualizacion:  now,
	}
	if !snap.FechaVencimiento.IsZero() {
		v := snap.FechaVencimiento
		g.FechaProbablePago = &v
	}
	return g
}

// CreateForFactura crea la gestión de una factura emitida que no la tiene.
func (uc *GestionUseCase) CreateForFactura(ctx context.Context, in dto.CreateGestionRequest) (*dto.GestionResponse, error) {
	if _, err := uuid.Parse(in.FacturaID); err != nil {
		return nil, domain.Validation("factura_id inválido: %s", in.FacturaID)
	}
	f, err := uc.facturaRepo.GetByID(ctx, in.FacturaID)
	if err != nil {
		return nil, domain.Upstream("gestion: obtener factura", err)
	}
	if f == nil {
		return nil, domain.NotFound("factura %s no existe", in.FacturaID)
	}
	if f.Estado == entity.EstadoFacturaBorrador || f.NumeroFactura == nil || f.FechaEmision == nil || f.FechaVencimiento == nil {
		return nil, domain.IllegalState("la factura %s aún no fue emitida", f.CodigoFactura)
	}
	if f.Estado == entity.EstadoFacturaAnulada {
		return nil, domain.IllegalState("la factura %s está anulada", f.CodigoFactura)
	}
	existing, err := uc.gestionRepo.GetByCodigoFactura(ctx, f.CodigoFactura)
	if err != nil {
		return nil, domain.Upstream("gestion: verificar existente", err)
	}
	if existing != nil {
		return nil, domain.IllegalState("ya existe gestión %s para la factura %s", existing.CodigoGestion, f.CodigoFactura)
	}

	snap, err := uc.snapshots.Build(ctx, f, f.Numero(), *f.FechaEmision, *f.FechaVencimiento)
	if err != nil {
		return nil, err
	}
	g, err := uc.prepare(ctx, f, snap)
	if err != nil {
		return nil, err
	}
	if in.Prioridad != "" {
		p := entity.Prioridad(in.Prioridad)
		if !p.Valid() {
			return nil, domain.Validation("prioridad inválida: %s", in.Prioridad)
		}
		g.Prioridad = p
	}
	if fp, err := filters.ParseDate("fecha_probable_pago", in.FechaProbablePago); err != nil {
		return nil, err
	} else if fp != nil {
		g.FechaProbablePago = fp
	}
	g.Responsable = strings.TrimSpace(in.Responsable)
	g.Observaciones = strings.TrimSpace(in.Observaciones)

	if err := uc.gestionRepo.Create(ctx, g); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.IllegalState("ya existe gestión para la factura %s", f.CodigoFactura)
		}
		return nil, domain.Upstream("gestion: crear", err)
	}
	log.Info().Str("gestion_id", g.ID).Str("codigo_factura", g.CodigoFactura).Msg("gestión creada")
	return ToGestionResponse(g, uc.now()), nil
}

// cambios versión tipada y validada de UpdateGestionRequest.
type cambios struct {
	estado              *entity.EstadoPagoNeto
	estadoDetraccion    *entity.EstadoDetraccion
	tasa                *decimal.Decimal
	pagado              *decimal.Decimal
	fechaPagoDetraccion *time.Time
	limpiarFechaDetr    bool
	fechaProbablePago   *time.Time
	prioridad           *entity.Prioridad
}

func parseCambios(in dto.UpdateGestionRequest) (cambios, error) {
	var c cambios
	if in.EstadoPagoNeto != nil {
		e := entity.EstadoPagoNeto(*in.EstadoPagoNeto)
		if !e.Valid() {
			return c, domain.Validation("estado_pago_neto inválido: %s", *in.EstadoPagoNeto)
		}
		c.estado = &e
	}
	if in.EstadoDetraccion != nil {
		e := entity.EstadoDetraccion(*in.EstadoDetraccion)
		if !e.Valid() {
			return c, domain.Validation("estado_detraccion inválido: %s", *in.EstadoDetraccion)
		}
		c.estadoDetraccion = &e
	}
	if in.Prioridad != nil {
		p := entity.Prioridad(*in.Prioridad)
		if !p.Valid() {
			return c, domain.Validation("prioridad inválida: %s", *in.Prioridad)
		}
		c.prioridad = &p
	}
	if in.TasaDetraccion != nil {
		if in.TasaDetraccion.IsNegative() || in.TasaDetraccion.GreaterThan(maxTasa) {
			return c, domain.Validation("tasa_detraccion debe estar entre 0 y 100")
		}
		c.tasa = in.TasaDetraccion
	}
	if in.MontoPagadoAcumulado != nil {
		if in.MontoPagadoAcumulado.IsNegative() {
			return c, domain.Validation("monto_pagado_acumulado no puede ser negativo")
		}
		c.pagado = in.MontoPagadoAcumulado
	}
	if in.FechaPagoDetraccion != nil {
		t, err := filters.ParseDate("fecha_pago_detraccion", *in.FechaPagoDetraccion)
		if err != nil {
			return c, err
		}
		c.fechaPagoDetraccion = t
		c.limpiarFechaDetr = t == nil
	}
	if in.FechaProbablePago != nil {
		t, err := filters.ParseDate("fecha_probable_pago", *in.FechaProbablePago)
		if err != nil {
			return c, err
		}
		c.fechaProbablePago = t
	}
	return c, nil
}

// Update aplica cambios parciales sobre la gestión. Un estado explícito prevalece sobre el
// derivado de los montos; Anulado dispara la cascada sobre factura y fletes.
func (uc *GestionUseCase) Update(ctx context.Context, id string, in dto.UpdateGestionRequest) (*dto.GestionResponse, error) {
	g, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.apply(ctx, g, in, nil); err != nil {
		return nil, err
	}
	return ToGestionResponse(g, uc.now()), nil
}

func (uc *GestionUseCase) apply(ctx context.Context, g *entity.Gestion, in dto.UpdateGestionRequest, pago *entity.Pago) error {
	if g.EstadoPagoNeto == entity.EstadoPagoAnulado {
		return domain.IllegalState("la gestión %s está anulada; no admite cambios", g.CodigoGestion)
	}
	c, err := parseCambios(in)
	if err != nil {
		return err
	}
	if c.estado != nil && !g.EstadoPagoNeto.CanTransitionTo(*c.estado) {
		return domain.IllegalState("no se puede pasar de %s a %s", g.EstadoPagoNeto, *c.estado)
	}
	now := uc.now()

	applyMetadata(g, in, c)
	if c.estado != nil && *c.estado == entity.EstadoPagoAnulado {
		return uc.anular(ctx, g, now)
	}

	pagadoPrevio := g.MontoPagadoAcumulado
	if c.tasa != nil {
		res := uc.politica.ConTasa(g.MontoTotal, *c.tasa)
		g.TasaDetraccion = res.Tasa
		g.MontoDetraccion = res.Monto
		g.MontoNeto = res.Neto
		if res.Estado == entity.EstadoDetraccionNoAplica {
			g.EstadoDetraccion = res.Estado
			g.FechaPagoDetraccion = nil
		} else if g.EstadoDetraccion != entity.EstadoDetraccionPagado {
			g.EstadoDetraccion = res.Estado
		}
	}
	if c.pagado != nil {
		g.MontoPagadoAcumulado = *c.pagado
	}

	switch {
	case c.estado != nil:
		g.EstadoPagoNeto = *c.estado
		switch *c.estado {
		case entity.EstadoPagoPagado:
			g.MontoPagadoAcumulado = g.MontoNeto
		case entity.EstadoPagoPendiente:
			g.MontoPagadoAcumulado = decimal.Zero
		}
	case c.pagado != nil || (c.tasa != nil && derivaDeMontos(g.EstadoPagoNeto)):
		g.EstadoPagoNeto = entity.EstadoPagoDesdeMontos(g.MontoPagadoAcumulado, g.MontoNeto)
	}

	if g.MontoPagadoAcumulado.GreaterThan(g.MontoNeto) {
		return domain.Validation("monto_pagado_acumulado (%s) excede el monto neto (%s)",
			g.MontoPagadoAcumulado.StringFixed(2), g.MontoNeto.StringFixed(2))
	}
	if g.MontoPagadoAcumulado.GreaterThan(pagadoPrevio) {
		t := now
		g.FechaUltimoPago = &t
	}

	if c.estadoDetraccion != nil {
		g.EstadoDetraccion = *c.estadoDetraccion
	}
	if c.limpiarFechaDetr {
		g.FechaPagoDetraccion = nil
	}
	// una fecha de pago de detracción la marca Pagado aunque el monto sea cero
	if c.fechaPagoDetraccion != nil {
		g.FechaPagoDetraccion = c.fechaPagoDetraccion
		g.EstadoDetraccion = entity.EstadoDetraccionPagado
	}

	if pago != nil {
		g.Pagos = append(g.Pagos, *pago)
	}
	g.UltimaActualizacion = now

	return uc.tx.Run(ctx, func(ctx context.Context) error {
		if err := uc.gestionRepo.Update(ctx, g); err != nil {
			return errEscritura("gestion: actualizar", err)
		}
		return uc.syncFactura(ctx, g, now)
	})
}

func applyMetadata(g *entity.Gestion, in dto.UpdateGestionRequest, c cambios) {
	if in.NroConstanciaDetraccion != nil {
		g.NroConstanciaDetraccion = nonEmpty(*in.NroConstanciaDetraccion)
	}
	if in.NroOperacion != nil {
		g.NroOperacion = nonEmpty(*in.NroOperacion)
	}
	if c.fechaProbablePago != nil {
		g.FechaProbablePago = c.fechaProbablePago
	}
	if c.prioridad != nil {
		g.Prioridad = *c.prioridad
	}
	if in.Responsable != nil {
		g.Responsable = strings.TrimSpace(*in.Responsable)
	}
	if in.Observaciones != nil {
		g.Observaciones = strings.TrimSpace(*in.Observaciones)
	}
}

// derivaDeMontos estados que se recalculan cuando cambia el neto.
func derivaDeMontos(e entity.EstadoPagoNeto) bool {
	return e == entity.EstadoPagoPendiente || e == entity.EstadoPagoPagadoParcial || e == entity.EstadoPagoPagado
}

// anular pone la gestión en Anulado, anula la factura y libera sus fletes.
// Sin transacción el orden factura → fletes → gestión hace que un reintento complete la cascada.
func (uc *GestionUseCase) anular(ctx context.Context, g *entity.Gestion, now time.Time) error {
	f, err := uc.facturaDeGestion(ctx, g)
	if err != nil {
		return err
	}
	if f != nil && f.Estado != entity.EstadoFacturaAnulada && !f.Estado.CanTransitionTo(entity.EstadoFacturaAnulada) {
		return domain.IllegalState("la factura %s está %s; no se puede anular", f.Numero(), f.Estado)
	}

	var liberados int64
	err = uc.tx.Run(ctx, func(ctx context.Context) error {
		if f != nil && f.Estado != entity.EstadoFacturaAnulada {
			f.Estado = entity.EstadoFacturaAnulada
			f.FechaActualizacion = now
			if err := uc.facturaRepo.Update(ctx, f); err != nil {
				return domain.Upstream("gestion: anular factura", err)
			}
		}
		n, err := uc.fleteRepo.ReleaseByCodigoFactura(ctx, g.CodigoFactura)
		if err != nil {
			return domain.Upstream("gestion: liberar fletes", err)
		}
		liberados = n

		g.EstadoPagoNeto = entity.EstadoPagoAnulado
		g.MontoPagadoAcumulado = decimal.Zero
		g.MontoNeto = decimal.Zero
		g.TasaDetraccion = decimal.Zero
		g.MontoDetraccion = decimal.Zero
		g.EstadoDetraccion = entity.EstadoDetraccionNoAplica
		g.FechaPagoDetraccion = nil
		g.UltimaActualizacion = now
		if err := uc.gestionRepo.Update(ctx, g); err != nil {
			return errEscritura("gestion: anular", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().
		Str("gestion_id", g.ID).
		Str("numero_factura", g.NumeroFactura).
		Int64("fletes_liberados", liberados).
		Msg("gestión anulada")
	return nil
}

func (uc *GestionUseCase) facturaDeGestion(ctx context.Context, g *entity.Gestion) (*entity.Factura, error) {
	if g.NumeroFactura != "" {
		f, err := uc.facturaRepo.GetByNumero(ctx, g.NumeroFactura)
		if err != nil {
			return nil, domain.Upstream("gestion: obtener factura", err)
		}
		if f != nil {
			return f, nil
		}
	}
	if g.FacturaID == "" {
		return nil, nil
	}
	f, err := uc.facturaRepo.GetByID(ctx, g.FacturaID)
	if err != nil {
		return nil, domain.Upstream("gestion: obtener factura", err)
	}
	return f, nil
}

// estadoFacturaPorPago refleja en la factura los estados de cobro que tienen equivalente.
var estadoFacturaPorPago = map[entity.EstadoPagoNeto]entity.EstadoFactura{
	entity.EstadoPagoPagado:        entity.EstadoFacturaPagada,
	entity.EstadoPagoPagadoParcial: entity.EstadoFacturaParcial,
	entity.EstadoPagoVencido:       entity.EstadoFacturaVencida,
}

// syncFactura mueve la factura al estado equivalente si la tabla de transiciones lo permite.
func (uc *GestionUseCase) syncFactura(ctx context.Context, g *entity.Gestion, now time.Time) error {
	target, ok := estadoFacturaPorPago[g.EstadoPagoNeto]
	if !ok {
		return nil
	}
	f, err := uc.facturaDeGestion(ctx, g)
	if err != nil {
		return err
	}
	if f == nil {
		log.Warn().Str("gestion_id", g.ID).Str("numero_factura", g.NumeroFactura).Msg("gestión sin factura asociada")
		return nil
	}
	if f.Estado == target || !f.Estado.CanTransitionTo(target) {
		return nil
	}
	f.Estado = target
	if target == entity.EstadoFacturaPagada {
		fecha := filters.StartOfDay(now)
		if g.FechaUltimoPago != nil {
			fecha = filters.StartOfDay(*g.FechaUltimoPago)
		}
		f.FechaPago = &fecha
	}
	f.FechaActualizacion = now
	if err := uc.facturaRepo.Update(ctx, f); err != nil {
		return domain.Upstream("gestion: sincronizar factura", err)
	}
	return nil
}

// PostPartialPayment registra un abono sobre el saldo pendiente. La escritura está condicionada
// a la versión leída: si otro pago se registró en medio, se relee y se vuelve a validar el saldo.
func (uc *GestionUseCase) PostPartialPayment(ctx context.Context, id string, in dto.PagoParcialRequest) (*dto.GestionResponse, error) {
	monto, err := filters.ParseAmount("monto_pago", in.MontoPago)
	if err != nil {
		return nil, err
	}
	if !monto.IsPositive() {
		return nil, domain.Validation("monto_pago debe ser mayor que cero")
	}
	nro := strings.TrimSpace(in.NroOperacion)

	for intento := 1; ; intento++ {
		g, err := uc.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if g.EstadoPagoNeto == entity.EstadoPagoAnulado {
			return nil, domain.IllegalState("la gestión %s está anulada; no admite pagos", g.CodigoGestion)
		}
		saldo := g.SaldoPendiente()
		if monto.GreaterThan(saldo) {
			return nil, domain.Validation("el pago de %s excede el saldo pendiente de %s", monto.StringFixed(2), saldo.StringFixed(2))
		}

		nuevo := g.MontoPagadoAcumulado.Add(monto)
		req := dto.UpdateGestionRequest{MontoPagadoAcumulado: &nuevo}
		if nro != "" {
			req.NroOperacion = &nro
		}
		pago := &entity.Pago{Monto: monto, Fecha: uc.now(), NroOperacion: nro}
		err = uc.apply(ctx, g, req, pago)
		if errors.Is(err, domain.ErrConflict) && intento < intentosPago {
			log.Debug().Str("gestion_id", id).Int("intento", intento).Msg("pago parcial: versión desactualizada, reintentando")
			continue
		}
		if err != nil {
			return nil, err
		}
		log.Info().Str("gestion_id", g.ID).Str("monto", monto.StringFixed(2)).Str("saldo", g.SaldoPendiente().StringFixed(2)).Msg("pago parcial registrado")
		return ToGestionResponse(g, uc.now()), nil
	}
}

// MarkOverdueBatch pasa a Vencido los registros con fecha probable de pago anterior a hoy
// y devuelve los que cambiaron. Tiene efectos secundarios aunque se exponga como consulta.
func (uc *GestionUseCase) MarkOverdueBatch(ctx context.Context) (*dto.MarcarVencidasResponse, error) {
	now := uc.now()
	candidatos, err := uc.gestionRepo.FindVencibles(ctx, filters.StartOfDay(now))
	if err != nil {
		return nil, domain.Upstream("gestion: buscar vencibles", err)
	}
	out := &dto.MarcarVencidasResponse{Items: make([]dto.GestionResponse, 0, len(candidatos))}
	for _, g := range candidatos {
		ok, err := uc.gestionRepo.MarkVencido(ctx, g.ID, now)
		if err != nil {
			return nil, domain.Upstream("gestion: marcar vencido", err)
		}
		if !ok {
			continue
		}
		g.EstadoPagoNeto = entity.EstadoPagoVencido
		g.UltimaActualizacion = now
		if err := uc.syncFactura(ctx, g, now); err != nil {
			log.Warn().Err(err).Str("gestion_id", g.ID).Msg("vencidos: no se pudo sincronizar la factura")
		}
		out.Items = append(out.Items, *ToGestionResponse(g, now))
	}
	out.Actualizadas = len(out.Items)
	if out.Actualizadas > 0 {
		log.Info().Int("actualizadas", out.Actualizadas).Msg("gestiones marcadas como vencidas")
	}
	return out, nil
}

// Get devuelve una gestión por ID.
func (uc *GestionUseCase) Get(ctx context.Context, id string) (*dto.GestionResponse, error) {
	g, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToGestionResponse(g, uc.now()), nil
}

// GetByCodigoFactura devuelve la gestión de una factura.
func (uc *GestionUseCase) GetByCodigoFactura(ctx context.Context, codigo string) (*dto.GestionResponse, error) {
	g, err := uc.gestionRepo.GetByCodigoFactura(ctx, codigo)
	if err != nil {
		return nil, domain.Upstream("gestion: obtener por factura", err)
	}
	if g == nil {
		return nil, domain.NotFound("no existe gestión para la factura %s", codigo)
	}
	return ToGestionResponse(g, uc.now()), nil
}

// List lista gestiones paginadas.
func (uc *GestionUseCase) List(ctx context.Context, in dto.GestionListRequest, page dto.PageRequest) (*dto.GestionListResponse, error) {
	page.DefaultPage()
	items, total, err := uc.list(ctx, in, repository.Page{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.GestionResponse, 0, len(items))
	for _, g := range items {
		out = append(out, *ToGestionResponse(g, now))
	}
	return &dto.GestionListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *GestionUseCase) list(ctx context.Context, in dto.GestionListRequest, p repository.Page) ([]*entity.Gestion, int64, error) {
	f := repository.GestionFilter{
		NumeroFactura: strings.TrimSpace(in.NumeroFactura),
		CodigoFactura: strings.TrimSpace(in.CodigoFactura),
		Cliente:       strings.TrimSpace(in.Cliente),
	}
	if in.EstadoPagoNeto != "" {
		e := entity.EstadoPagoNeto(in.EstadoPagoNeto)
		if !e.Valid() {
			return nil, 0, domain.Validation("estado_pago_neto inválido: %s", in.EstadoPagoNeto)
		}
		f.EstadoPagoNeto = e
	}
	if in.EstadoDetraccion != "" {
		e := entity.EstadoDetraccion(in.EstadoDetraccion)
		if !e.Valid() {
			return nil, 0, domain.Validation("estado_detraccion inválido: %s", in.EstadoDetraccion)
		}
		f.EstadoDetraccion = e
	}
	if in.Prioridad != "" {
		p := entity.Prioridad(in.Prioridad)
		if !p.Valid() {
			return nil, 0, domain.Validation("prioridad inválida: %s", in.Prioridad)
		}
		f.Prioridad = p
	}
	var err error
	if f.FechaProbablePago, err = filters.ParseDateRange("fecha_probable_pago_desde", in.FechaPagoDesde, "fecha_probable_pago_hasta", in.FechaPagoHasta); err != nil {
		return nil, 0, err
	}
	items, total, err := uc.gestionRepo.List(ctx, f, p)
	if err != nil {
		return nil, 0, domain.Upstream("gestion: listar", err)
	}
	return items, total, nil
}

// Export genera un .xlsx con la cartera filtrada (máximo MaxExportRows).
func (uc *GestionUseCase) Export(ctx context.Context, in dto.GestionListRequest) ([]byte, string, error) {
	items, _, err := uc.list(ctx, in, repository.Page{Limit: MaxExportRows})
	if err != nil {
		return nil, "", err
	}
	now := uc.now()
	headers := []string{
		"Código gestión", "Número factura", "Clientes", "Monto total", "Estado detracción", "Monto detracción",
		"Monto neto", "Cobrado", "Saldo pendiente", "Estado pago", "Fecha probable pago", "Días vencido",
		"Prioridad", "Responsable",
	}
	rows := make([][]any, 0, len(items))
	for _, g := range items {
		rows = append(rows, []any{
			g.CodigoGestion, g.NumeroFactura, strings.Join(g.Snapshot.Clientes(), ", "),
			g.MontoTotal.InexactFloat64(), string(g.EstadoDetraccion), g.MontoDetraccion.InexactFloat64(),
			g.MontoNeto.InexactFloat64(), g.MontoPagadoAcumulado.InexactFloat64(), g.SaldoPendiente().InexactFloat64(),
			string(g.EstadoPagoNeto), dateCell(g.FechaProbablePago), g.DiasVencido(now),
			string(g.Prioridad), g.Responsable,
		})
	}
	data, err := uc.exporter.Export("Gestión", headers, rows)
	if err != nil {
		return nil, "", domain.Upstream("gestion: exportar", err)
	}
	return data, fmt.Sprintf("gestion_cobranzas_%s.xlsx", now.Format("20060102_150405")), nil
}

func (uc *GestionUseCase) load(ctx context.Context, id string) (*entity.Gestion, error) {
	g, err := uc.gestionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Upstream("gestion: obtener", err)
	}
	if g == nil {
		return nil, domain.NotFound("gestión %s no existe", id)
	}
	return g, nil
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
