// Package testutil implementaciones en memoria de los puertos de repositorio para tests de casos de uso.
// Todas devuelven copias: mutar el resultado no altera el almacén.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// ── Sequence ──────────────────────────────────────────────────────────────────

// SequenceRepo contador en memoria. Codes simula códigos ya existentes por colección.
type SequenceRepo struct {
	mu       sync.Mutex
	counters map[string]int64
	Codes    map[string]map[string]bool // colección → código
	Err      error
}

func NewSequenceRepo() *SequenceRepo {
	return &SequenceRepo{counters: map[string]int64{}, Codes: map[string]map[string]bool{}}
}

func (r *SequenceRepo) Next(_ context.Context, sequence string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	r.counters[sequence]++
	return r.counters[sequence], nil
}

func (r *SequenceRepo) CodeExists(_ context.Context, collection, _ string, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Codes[collection][code], nil
}

// Seed fija el valor actual del contador.
func (r *SequenceRepo) Seed(sequence string, v int64) {
	r.mu.Lock()
	r.counters[sequence] = v
	r.mu.Unlock()
}

// MarkUsed registra un código como existente en collection.
func (r *SequenceRepo) MarkUsed(collection, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Codes[collection] == nil {
		r.Codes[collection] = map[string]bool{}
	}
	r.Codes[collection][code] = true
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner ejecuta fn directamente. Tx controla lo que informa Transactional.
type TxRunner struct {
	Tx    bool
	Calls int
}

func (t *TxRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

func (t *TxRunner) Transactional() bool { return t.Tx }

// ── Servicios ─────────────────────────────────────────────────────────────────

type ServicioRepo struct {
	mu    sync.Mutex
	items map[string]entity.Servicio
}

func NewServicioRepo() *ServicioRepo { return &ServicioRepo{items: map[string]entity.Servicio{}} }

// Put inserta o reemplaza un servicio.
func (r *ServicioRepo) Put(s *entity.Servicio) {
	r.mu.Lock()
	r.items[s.ID] = *s
	r.mu.Unlock()
}

// Remove borra un servicio (para simular referencias colgantes).
func (r *ServicioRepo) Remove(id string) {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
}

func (r *ServicioRepo) GetByID(_ context.Context, id string) (*entity.Servicio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *ServicioRepo) UpdateEstado(_ context.Context, id string, estado entity.EstadoServicio, puedeEditar, puedeEliminar bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Estado = estado
	s.PuedeEditar = puedeEditar
	s.PuedeEliminar = puedeEliminar
	r.items[id] = s
	return nil
}

// ── Fletes ────────────────────────────────────────────────────────────────────

type FleteRepo struct {
	mu      sync.Mutex
	items   map[string]*entity.Flete
	order   []string
	BindErr error
}

func NewFleteRepo() *FleteRepo { return &FleteRepo{items: map[string]*entity.Flete{}} }

func cloneFlete(f *entity.Flete) *entity.Flete {
	c := *f
	if f.FacturaID != nil {
		v := *f.FacturaID
		c.FacturaID = &v
	}
	if f.CodigoFactura != nil {
		v := *f.CodigoFactura
		c.CodigoFactura = &v
	}
	return &c
}

func (r *FleteRepo) Create(_ context.Context, f *entity.Flete) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[f.ID]; ok {
		return domain.Duplicate("flete %s ya existe", f.ID)
	}
	r.items[f.ID] = cloneFlete(f)
	r.order = append(r.order, f.ID)
	return nil
}

func (r *FleteRepo) GetByID(_ context.Context, id string) (*entity.Flete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneFlete(f), nil
}

func (r *FleteRepo) GetByIDs(_ context.Context, ids []string) ([]*entity.Flete, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Flete, 0, len(ids))
	for _, id := range ids {
		if f, ok := r.items[id]; ok {
			out = append(out, cloneFlete(f))
		}
	}
	return out, nil
}

func (r *FleteRepo) ExistsForServicio(_ context.Context, servicioID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.items {
		if f.ServicioID == servicioID {
			return true, nil
		}
	}
	return false, nil
}

func (r *FleteRepo) UpdateMonto(_ context.Context, f *entity.Flete) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[f.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.MontoFlete = f.MontoFlete
	cur.EstadoFlete = f.EstadoFlete
	cur.FechaActualizacion = f.FechaActualizacion
	return nil
}

func (r *FleteRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *FleteRepo) List(_ context.Context, f repository.FleteFilter, p repository.Page) ([]*entity.Flete, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Flete
	for _, id := range r.order {
		fl := r.items[id]
		if f.CodigoFlete != "" && !containsFold(fl.CodigoFlete, f.CodigoFlete) {
			continue
		}
		if f.ServicioID != "" && fl.ServicioID != f.ServicioID {
			continue
		}
		if f.EstadoFlete != "" && fl.EstadoFlete != f.EstadoFlete {
			continue
		}
		if f.PerteneceAFactura != nil && fl.PerteneceAFactura != *f.PerteneceAFactura {
			continue
		}
		if f.CodigoFactura != "" && (fl.CodigoFactura == nil || *fl.CodigoFactura != f.CodigoFactura) {
			continue
		}
		if !inAmount(f.Monto, fl.MontoFlete) || !inDates(f.FechaCreacion, &fl.FechaCreacion) {
			continue
		}
		all = append(all, cloneFlete(fl))
	}
	return paginate(all, p), int64(len(all)), nil
}

func (r *FleteRepo) Bind(_ context.Context, fleteID, facturaID, codigoFactura string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.BindErr != nil {
		return false, r.BindErr
	}
	fl, ok := r.items[fleteID]
	if !ok {
		return false, nil
	}
	if fl.PerteneceAFactura && (fl.FacturaID == nil || *fl.FacturaID != facturaID) {
		return false, nil
	}
	fid, cod := facturaID, codigoFactura
	fl.PerteneceAFactura = true
	fl.FacturaID = &fid
	fl.CodigoFactura = &cod
	return true, nil
}

func (r *FleteRepo) Release(_ context.Context, facturaID string, fleteIDs []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range fleteIDs {
		fl, ok := r.items[id]
		if ok && fl.FacturaID != nil && *fl.FacturaID == facturaID {
			fl.Liberar()
			n++
		}
	}
	return n, nil
}

func (r *FleteRepo) ReleaseByFactura(_ context.Context, facturaID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, fl := range r.items {
		if fl.FacturaID != nil && *fl.FacturaID == facturaID {
			fl.Liberar()
			n++
		}
	}
	return n, nil
}

func (r *FleteRepo) ReleaseByCodigoFactura(_ context.Context, codigo string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, fl := range r.items {
		if fl.CodigoFactura != nil && *fl.CodigoFactura == codigo {
			fl.Liberar()
			fl.EstadoFlete = entity.EstadoFleteValorizado
			n++
		}
	}
	return n, nil
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// FacturaRepo guarda la marca de emisión en curso aparte, como un campo fuera de la entidad.
type FacturaRepo struct {
	mu        sync.Mutex
	items     map[string]*entity.Factura
	order     []string
	claims    map[string]time.Time
	UpdateErr error
}

func NewFacturaRepo() *FacturaRepo {
	return &FacturaRepo{items: map[string]*entity.Factura{}, claims: map[string]time.Time{}}
}

func cloneFactura(f *entity.Factura) *entity.Factura {
	c := *f
	c.Fletes = append([]entity.FleteRef(nil), f.Fletes...)
	c.NumeroFactura = cloneStr(f.NumeroFactura)
	c.FechaEmision = cloneTime(f.FechaEmision)
	c.FechaVencimiento = cloneTime(f.FechaVencimiento)
	c.FechaPago = cloneTime(f.FechaPago)
	return &c
}

func (r *FacturaRepo) numeroTaken(numero, exceptID string) bool {
	for id, f := range r.items {
		if id != exceptID && f.NumeroFactura != nil && *f.NumeroFactura == numero {
			return true
		}
	}
	return false
}

func (r *FacturaRepo) Create(_ context.Context, f *entity.Factura) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[f.ID]; ok {
		return domain.Duplicate("factura %s ya existe", f.ID)
	}
	r.items[f.ID] = cloneFactura(f)
	r.order = append(r.order, f.ID)
	return nil
}

func (r *FacturaRepo) GetByID(_ context.Context, id string) (*entity.Factura, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneFactura(f), nil
}

func (r *FacturaRepo) GetByNumero(_ context.Context, numero string) (*entity.Factura, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.items {
		if f.NumeroFactura != nil && *f.NumeroFactura == numero {
			return cloneFactura(f), nil
		}
	}
	return nil, nil
}

func (r *FacturaRepo) Update(_ context.Context, f *entity.Factura) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	if _, ok := r.items[f.ID]; !ok {
		return domain.ErrNotFound
	}
	if f.NumeroFactura != nil && r.numeroTaken(*f.NumeroFactura, f.ID) {
		return domain.Duplicate("numero_factura %s ya existe", *f.NumeroFactura)
	}
	r.items[f.ID] = cloneFactura(f)
	delete(r.claims, f.ID)
	return nil
}

func (r *FacturaRepo) ClaimEmision(_ context.Context, id string, at time.Time, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.items[id]
	if !ok || f.Estado != entity.EstadoFacturaBorrador {
		return false, nil
	}
	if prev, taken := r.claims[id]; taken && !prev.Before(at.Add(-ttl)) {
		return false, nil
	}
	r.claims[id] = at
	return true, nil
}

func (r *FacturaRepo) ReleaseEmision(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.claims[id]; ok && prev.Equal(at) {
		delete(r.claims, id)
	}
	return nil
}

// EnEmision indica si la factura tiene una emisión en curso.
func (r *FacturaRepo) EnEmision(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.claims[id]
	return ok
}

func (r *FacturaRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	delete(r.claims, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *FacturaRepo) List(_ context.Context, f repository.FacturaFilter, p repository.Page) ([]*entity.Factura, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var codigos map[string]bool
	if f.CodigosFactura != nil {
		codigos = make(map[string]bool, len(f.CodigosFactura))
		for _, c := range f.CodigosFactura {
			codigos[c] = true
		}
	}
	var all []*entity.Factura
	for _, id := range r.order {
		fa := r.items[id]
		if f.NumeroFactura != "" && !containsFold(fa.Numero(), f.NumeroFactura) {
			continue
		}
		if f.Estado != "" && fa.Estado != f.Estado {
			continue
		}
		if f.Moneda != "" && fa.Moneda != f.Moneda {
			continue
		}
		if f.EsBorrador != nil && fa.EsBorrador != *f.EsBorrador {
			continue
		}
		if !inDates(f.FechaEmision, fa.FechaEmision) || !inDates(f.FechaVencimiento, fa.FechaVencimiento) ||
			!inDates(f.FechaPago, fa.FechaPago) || !inAmount(f.Monto, fa.MontoTotal) {
			continue
		}
		if f.FleteID != "" && !hasFlete(fa, f.FleteID) {
			continue
		}
		if codigos != nil && !codigos[fa.CodigoFactura] {
			continue
		}
		all = append(all, cloneFactura(fa))
	}
	return paginate(all, p), int64(len(all)), nil
}

func hasFlete(f *entity.Factura, id string) bool {
	for _, r := range f.Fletes {
		if r.FleteID == id {
			return true
		}
	}
	return false
}

// ── Gestión ───────────────────────────────────────────────────────────────────

type GestionRepo struct {
	mu        sync.Mutex
	items     map[string]*entity.Gestion
	order     []string
	CreateErr error
}

func NewGestionRepo() *GestionRepo { return &GestionRepo{items: map[string]*entity.Gestion{}} }

func cloneGestion(g *entity.Gestion) *entity.Gestion {
	c := *g
	c.Pagos = append([]entity.Pago(nil), g.Pagos...)
	c.Snapshot.Fletes = append([]entity.FleteSnapshot(nil), g.Snapshot.Fletes...)
	c.FechaPagoDetraccion = cloneTime(g.FechaPagoDetraccion)
	c.FechaProbablePago = cloneTime(g.FechaProbablePago)
	c.FechaUltimoPago = cloneTime(g.FechaUltimoPago)
	c.NroConstanciaDetraccion = cloneStr(g.NroConstanciaDetraccion)
	c.NroOperacion = cloneStr(g.NroOperacion)
	return &c
}

func (r *GestionRepo) Create(_ context.Context, g *entity.Gestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, cur := range r.items {
		if cur.CodigoFactura == g.CodigoFactura {
			return domain.Duplicate("ya existe gestión para la factura %s", g.CodigoFactura)
		}
	}
	r.items[g.ID] = cloneGestion(g)
	r.order = append(r.order, g.ID)
	return nil
}

func (r *GestionRepo) GetByID(_ context.Context, id string) (*entity.Gestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneGestion(g), nil
}

func (r *GestionRepo) GetByCodigoFactura(_ context.Context, codigo string) (*entity.Gestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.items {
		if g.CodigoFactura == codigo {
			return cloneGestion(g), nil
		}
	}
	return nil, nil
}

func (r *GestionRepo) Update(_ context.Context, g *entity.Gestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[g.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != g.Version {
		return domain.Conflict("la gestión %s fue modificada por otra operación; reintente", g.CodigoGestion)
	}
	g.Version++
	r.items[g.ID] = cloneGestion(g)
	return nil
}

func (r *GestionRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *GestionRepo) List(_ context.Context, f repository.GestionFilter, p repository.Page) ([]*entity.Gestion, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Gestion
	for _, id := range r.order {
		g := r.items[id]
		if f.EstadoPagoNeto != "" && g.EstadoPagoNeto != f.EstadoPagoNeto {
			continue
		}
		if f.EstadoDetraccion != "" && g.EstadoDetraccion != f.EstadoDetraccion {
			continue
		}
		if f.Prioridad != "" && g.Prioridad != f.Prioridad {
			continue
		}
		if f.NumeroFactura != "" && !containsFold(g.NumeroFactura, f.NumeroFactura) {
			continue
		}
		if f.CodigoFactura != "" && g.CodigoFactura != f.CodigoFactura {
			continue
		}
		if f.Cliente != "" && !snapshotHasCliente(g, f.Cliente) {
			continue
		}
		if !inDates(f.FechaProbablePago, g.FechaProbablePago) {
			continue
		}
		all = append(all, cloneGestion(g))
	}
	return paginate(all, p), int64(len(all)), nil
}

func (r *GestionRepo) CodigosFacturaPorCliente(_ context.Context, cliente string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []string{}
	for _, id := range r.order {
		g := r.items[id]
		if snapshotHasCliente(g, cliente) {
			out = append(out, g.CodigoFactura)
		}
	}
	return out, nil
}

func (r *GestionRepo) FindVencibles(_ context.Context, before time.Time) ([]*entity.Gestion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Gestion
	for _, id := range r.order {
		g := r.items[id]
		if g.EstadoPagoNeto.Vencible() && g.FechaProbablePago != nil && g.FechaProbablePago.Before(before) {
			out = append(out, cloneGestion(g))
		}
	}
	return out, nil
}

func (r *GestionRepo) MarkVencido(_ context.Context, id string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.items[id]
	if !ok || !g.EstadoPagoNeto.Vencible() {
		return false, nil
	}
	g.EstadoPagoNeto = entity.EstadoPagoVencido
	g.UltimaActualizacion = now
	g.Version++
	return true, nil
}

func snapshotHasCliente(g *entity.Gestion, cliente string) bool {
	for _, c := range g.Snapshot.Clientes() {
		if containsFold(c, cliente) {
			return true
		}
	}
	return false
}

// ── Analytics ─────────────────────────────────────────────────────────────────

// AnalyticsRepo devuelve resultados fijos; registra los argumentos recibidos.
type AnalyticsRepo struct {
	mu            sync.Mutex
	PorEstado     []repository.EstadoPagoResult
	Detraccion    []repository.DetraccionResult
	Vencidas      int64
	PorVencer     int64
	PorDimension  []repository.DimensionResult
	Tendencia     []repository.TendenciaResult
	Err           error
	LastDimension repository.Dimension
	LastEmision   repository.DateRange
	LastLimit     int
	LastDesde     time.Time
}

func (r *AnalyticsRepo) ResumenPorEstadoPago(context.Context) ([]repository.EstadoPagoResult, error) {
	return r.PorEstado, r.Err
}

func (r *AnalyticsRepo) ResumenDetraccion(context.Context) ([]repository.DetraccionResult, error) {
	return r.Detraccion, r.Err
}

func (r *AnalyticsRepo) ContarVencimientos(context.Context, time.Time, time.Time) (int64, int64, error) {
	return r.Vencidas, r.PorVencer, r.Err
}

func (r *AnalyticsRepo) ResumenPorDimension(_ context.Context, dim repository.Dimension, emision repository.DateRange, limit int) ([]repository.DimensionResult, error) {
	r.mu.Lock()
	r.LastDimension, r.LastEmision, r.LastLimit = dim, emision, limit
	r.mu.Unlock()
	return r.PorDimension, r.Err
}

func (r *AnalyticsRepo) TendenciaMensual(_ context.Context, desde time.Time) ([]repository.TendenciaResult, error) {
	r.mu.Lock()
	r.LastDesde = desde
	r.mu.Unlock()
	return r.Tendencia, r.Err
}

// ── helpers ───────────────────────────────────────────────────────────────────

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func inDates(r repository.DateRange, t *time.Time) bool {
	if r.Empty() {
		return true
	}
	if t == nil {
		return false
	}
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

func inAmount(r repository.AmountRange, v decimal.Decimal) bool {
	if r.Min != nil && v.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && v.GreaterThan(*r.Max) {
		return false
	}
	return true
}

func paginate[T any](all []T, p repository.Page) []T {
	if p.Offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return all[p.Offset:end]
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
