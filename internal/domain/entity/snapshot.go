package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServicioSnapshot copia inmutable de los datos del servicio al momento de emitir la factura.
type ServicioSnapshot struct {
	ServicioID     string          `bson:"servicio_id"`
	CodigoServicio string          `bson:"codigo_servicio"`
	Cliente        string          `bson:"cliente"`
	Cuenta         string          `bson:"cuenta"`
	Proveedor      string          `bson:"proveedor"`
	Placa          string          `bson:"placa"`
	Conductor      string          `bson:"conductor"`
	Auxiliar       string          `bson:"auxiliar"`
	M3             decimal.Decimal `bson:"m3"`
	TN             decimal.Decimal `bson:"tn"`
	TipoServicio   string          `bson:"tipo_servicio"`
	Modalidad      string          `bson:"modalidad"`
	Zona           string          `bson:"zona"`
	FechaServicio  *time.Time      `bson:"fecha_servicio"`
	FechaSalida    *time.Time      `bson:"fecha_salida"`
	GIARR          string          `bson:"gia_rr"`
	GIART          string          `bson:"gia_rt"`
	Origen         string          `bson:"origen"`
	Destino        string          `bson:"destino"`
}

// FleteSnapshot flete tal como fue facturado.
type FleteSnapshot struct {
	FleteID     string           `bson:"flete_id"`
	CodigoFlete string           `bson:"codigo_flete"`
	MontoFlete  decimal.Decimal  `bson:"monto_flete"`
	Servicio    ServicioSnapshot `bson:"servicio"`
}

// FacturaSnapshot registro histórico de la factura emitida.
// Se escribe una sola vez al emitir y nunca se recalcula desde los datos vivos.
type FacturaSnapshot struct {
	NumeroFactura    string          `bson:"numero_factura"`
	FechaEmision     time.Time       `bson:"fecha_emision"`
	FechaVencimiento time.Time       `bson:"fecha_vencimiento"`
	MontoTotal       decimal.Decimal `bson:"monto_total"`
	Moneda           string          `bson:"moneda"`
	Fletes           []FleteSnapshot `bson:"fletes"`
}

// Clientes nombres de cliente distintos presentes en el snapshot, en orden de aparición.
func (s *FacturaSnapshot) Clientes() []string {
	seen := make(map[string]struct{}, len(s.Fletes))
	var out []string
	for _, f := range s.Fletes {
		name := f.Servicio.Cliente
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
