package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoServicio estado operativo de un servicio (orden de transporte).
type EstadoServicio string

const (
	EstadoServicioProgramado EstadoServicio = "Programado"
	EstadoServicioEnCurso    EstadoServicio = "En Curso"
	EstadoServicioCompletado EstadoServicio = "Completado"
	EstadoServicioCancelado  EstadoServicio = "Cancelado"
)

// ClienteRef datos del cliente embebidos en el servicio.
type ClienteRef struct {
	ID          string `bson:"id,omitempty"`
	RazonSocial string `bson:"razon_social"`
	RUC         string `bson:"ruc,omitempty"`
}

// CuentaRef cuenta (sub-cliente o centro de costo) del servicio.
type CuentaRef struct {
	ID     string `bson:"id,omitempty"`
	Nombre string `bson:"nombre"`
}

// ProveedorRef transportista tercero que ejecuta el servicio.
type ProveedorRef struct {
	ID          string `bson:"id,omitempty"`
	RazonSocial string `bson:"razon_social"`
	RUC         string `bson:"ruc,omitempty"`
}

// FlotaRef vehículo asignado.
type FlotaRef struct {
	ID    string `bson:"id,omitempty"`
	Placa string `bson:"placa"`
}

// PersonaRef conductor o auxiliar.
type PersonaRef struct {
	ID     string `bson:"id,omitempty"`
	Nombre string `bson:"nombre"`
	DNI    string `bson:"dni,omitempty"`
}

// Servicio representa un servicio de transporte ("servicio principal").
type Servicio struct {
	ID                 string          `bson:"_id"`
	CodigoServicio     string          `bson:"codigo_servicio"`
	Cliente            ClienteRef      `bson:"cliente"`
	Cuenta             CuentaRef       `bson:"cuenta"`
	Proveedor          ProveedorRef    `bson:"proveedor"`
	Flota              FlotaRef        `bson:"flota"`
	Conductor          []PersonaRef    `bson:"conductor"`
	Auxiliar           []PersonaRef    `bson:"auxiliar"`
	M3                 decimal.Decimal `bson:"m3"`
	TN                 decimal.Decimal `bson:"tn"`
	TipoServicio       string          `bson:"tipo_servicio"`
	Modalidad          string          `bson:"modalidad"`
	Zona               string          `bson:"zona"`
	FechaServicio      *time.Time      `bson:"fecha_servicio"`
	FechaSalida        *time.Time      `bson:"fecha_salida"`
	GIARR              string          `bson:"gia_rr"`
	GIART              string          `bson:"gia_rt"`
	Origen             string          `bson:"origen"`
	Destino            string          `bson:"destino"`
	Estado             EstadoServicio  `bson:"estado"`
	PuedeEditar        bool            `bson:"puede_editar"`
	PuedeEliminar      bool            `bson:"puede_eliminar"`
	FechaCreacion      time.Time       `bson:"fecha_creacion"`
	FechaActualizacion time.Time       `bson:"fecha_actualizacion"`
}

// ConductorPrincipal nombre del primer conductor asignado.
func (s *Servicio) ConductorPrincipal() string {
	if len(s.Conductor) == 0 {
		return ""
	}
	return s.Conductor[0].Nombre
}

// AuxiliarPrincipal nombre del primer auxiliar asignado.
func (s *Servicio) AuxiliarPrincipal() string {
	if len(s.Auxiliar) == 0 {
		return ""
	}
	return s.Auxiliar[0].Nombre
}
