package mongodb

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// contains búsqueda parcial sin distinguir mayúsculas; el texto del usuario se escapa.
func contains(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func dateRange(r repository.DateRange) bson.M {
	m := bson.M{}
	if r.From != nil {
		m["$gte"] = *r.From
	}
	if r.To != nil {
		m["$lte"] = *r.To
	}
	return m
}

func amountRange(r repository.AmountRange) bson.M {
	m := bson.M{}
	if r.Min != nil {
		m["$gte"] = *r.Min
	}
	if r.Max != nil {
		m["$lte"] = *r.Max
	}
	return m
}

func fleteQuery(f repository.FleteFilter) bson.M {
	q := bson.M{}
	if f.CodigoFlete != "" {
		q["codigo_flete"] = contains(f.CodigoFlete)
	}
	if f.ServicioID != "" {
		q["servicio_id"] = f.ServicioID
	}
	if f.EstadoFlete != "" {
		q["estado_flete"] = f.EstadoFlete
	}
	if f.PerteneceAFactura != nil {
		q["pertenece_a_factura"] = *f.PerteneceAFactura
	}
	if f.CodigoFactura != "" {
		q["codigo_factura"] = f.CodigoFactura
	}
	if !f.Monto.Empty() {
		q["monto_flete"] = amountRange(f.Monto)
	}
	if !f.FechaCreacion.Empty() {
		q["fecha_creacion"] = dateRange(f.FechaCreacion)
	}
	return q
}

func facturaQuery(f repository.FacturaFilter) bson.M {
	q := bson.M{}
	if f.NumeroFactura != "" {
		q["numero_factura"] = contains(f.NumeroFactura)
	}
	if f.Estado != "" {
		q["estado"] = f.Estado
	}
	if f.Moneda != "" {
		q["moneda"] = f.Moneda
	}
	if f.EsBorrador != nil {
		q["es_borrador"] = *f.EsBorrador
	}
	if !f.FechaEmision.Empty() {
		q["fecha_emision"] = dateRange(f.FechaEmision)
	}
	if !f.FechaVencimiento.Empty() {
		q["fecha_vencimiento"] = dateRange(f.FechaVencimiento)
	}
	if !f.FechaPago.Empty() {
		q["fecha_pago"] = dateRange(f.FechaPago)
	}
	if !f.Monto.Empty() {
		q["monto_total"] = amountRange(f.Monto)
	}
	if f.FleteID != "" {
		q["fletes.flete_id"] = f.FleteID
	}
	if f.CodigosFactura != nil {
		q["codigo_factura"] = bson.M{"$in": f.CodigosFactura}
	}
	return q
}

const campoCliente = "datos_completos.fletes.servicio.cliente"

func gestionQuery(f repository.GestionFilter) bson.M {
	q := bson.M{}
	if f.EstadoPagoNeto != "" {
		q["estado_pago_neto"] = f.EstadoPagoNeto
	}
	if f.EstadoDetraccion != "" {
		q["estado_detraccion"] = f.EstadoDetraccion
	}
	if f.Prioridad != "" {
		q["prioridad"] = f.Prioridad
	}
	if f.NumeroFactura != "" {
		q["numero_factura"] = contains(f.NumeroFactura)
	}
	if f.CodigoFactura != "" {
		q["codigo_factura"] = f.CodigoFactura
	}
	if f.Cliente != "" {
		q[campoCliente] = contains(f.Cliente)
	}
	if !f.FechaProbablePago.Empty() {
		q["fecha_probable_pago"] = dateRange(f.FechaProbablePago)
	}
	return q
}

// findPage orden por creación descendente más limit/offset.
func findPage(p repository.Page) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "fecha_creacion", Value: -1}, {Key: "_id", Value: 1}})
	if p.Offset > 0 {
		opts.SetSkip(int64(p.Offset))
	}
	if p.Limit > 0 {
		opts.SetLimit(int64(p.Limit))
	}
	return opts
}

func estadosVencibles() bson.A {
	out := bson.A{}
	for _, e := range entity.EstadosVencibles() {
		out = append(out, e)
	}
	return out
}
