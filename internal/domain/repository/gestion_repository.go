package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

// GestionFilter criterios de búsqueda de registros de cobranza.
type GestionFilter struct {
	EstadoPagoNeto    entity.EstadoPagoNeto
	EstadoDetraccion  entity.EstadoDetraccion
	Prioridad         entity.Prioridad
	NumeroFactura     string
	CodigoFactura     string
	Cliente           string // coincidencia parcial, sin distinguir mayúsculas
	FechaProbablePago DateRange
}

// GestionRepository puerto de persistencia para "facturacion_gestion".
type GestionRepository interface {
	// Create inserta el registro; devuelve domain.ErrDuplicate si ya existe uno para la factura.
	Create(ctx context.Context, g *entity.Gestion) error
	GetByID(ctx context.Context, id string) (*entity.Gestion, error)
	GetByCodigoFactura(ctx context.Context, codigoFactura string) (*entity.Gestion, error)
	// Update reemplaza el registro si su versión no cambió desde la lectura e incrementa
	// g.Version. Si otra escritura ganó devuelve domain.ErrConflict.
	Update(ctx context.Context, g *entity.Gestion) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f GestionFilter, p Page) ([]*entity.Gestion, int64, error)
	// CodigosFacturaPorCliente códigos de factura cuyo snapshot contiene el cliente.
	CodigosFacturaPorCliente(ctx context.Context, cliente string) ([]string, error)
	// FindVencibles registros en estados no terminales con fecha probable de pago anterior a before.
	FindVencibles(ctx context.Context, before time.Time) ([]*entity.Gestion, error)
	// MarkVencido cambia a Vencido solo si el registro sigue en un estado vencible.
	MarkVencido(ctx context.Context, id string, now time.Time) (bool, error)
}
