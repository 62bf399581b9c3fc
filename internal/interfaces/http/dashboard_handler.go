package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/fletes-api/internal/application/analytics"
	"github.com/jhoicas/fletes-api/internal/application/dto"
)

// DashboardHandler maneja los reportes de cobranza.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetEstadisticas totales de facturación, cobranza y detracción.
//
// Respuesta: DashboardEstadisticasDTO (total_facturas, monto_facturado,
// saldo_pendiente, detraccion_pendiente, vencidas, por_vencer, por_estado[]).
// Las fechas de corte se calculan en el servidor.
// @Summary      Estadísticas de cobranza
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardEstadisticasDTO
// @Router       /api/facturacion-gestion/dashboard/estadisticas [get]
func (h *DashboardHandler) GetEstadisticas(c *fiber.Ctx) error {
	out, err := h.uc.GetEstadisticas(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetResumen totales agrupados por cliente, proveedor, placa o conductor.
// @Summary      Resumen por dimensión
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        dimension  path  string  true  "Eje de agrupación"  Enums(cliente, proveedor, placa, conductor)
// @Param        fecha_desde  query  string  false  "Emisión desde (YYYY-MM-DD)"
// @Param        fecha_hasta  query  string  false  "Emisión hasta (YYYY-MM-DD)"
// @Param        top  query  int  false  "Máximo de grupos (máx. 200)"  default(20)
// @Success      200  {object}  dto.ResumenDimensionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturacion-gestion/resumen/{dimension} [get]
func (h *DashboardHandler) GetResumen(c *fiber.Ctx) error {
	var in dto.ResumenRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.GetResumen(c.Context(), c.Params("dimension"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetTendencia facturación mensual de los últimos N meses.
// @Summary      Tendencia mensual de facturación
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        meses  query  int  false  "Meses hacia atrás (máx. 36)"  default(12)
// @Success      200  {object}  dto.TendenciaDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturacion-gestion/tendencia [get]
func (h *DashboardHandler) GetTendencia(c *fiber.Ctx) error {
	var in dto.TendenciaRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.GetTendencia(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
