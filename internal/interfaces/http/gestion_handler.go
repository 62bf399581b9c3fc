package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fletes-api/internal/application/billing"
	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

// GestionHandler maneja el libro de cobranzas (facturacion-gestion).
type GestionHandler struct {
	uc *billing.GestionUseCase
}

// NewGestionHandler construye el handler.
func NewGestionHandler(uc *billing.GestionUseCase) *GestionHandler {
	return &GestionHandler{uc: uc}
}

// Create crea la gestión de una factura emitida que aún no la tiene.
// @Summary      Crear gestión de una factura emitida
// @Tags         facturacion-gestion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGestionRequest  true  "Factura y datos de cobranza"
// @Success      201  {object}  dto.GestionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/facturacion-gestion [post]
func (h *GestionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateGestionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	out, err := h.uc.CreateForFactura(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista gestiones con filtros y paginación.
// @Summary      Listar gestiones de cobranza
// @Tags         facturacion-gestion
// @Security     Bearer
// @Produce      json
// @Param        estado_pago_neto  query  string  false  "Estado de cobro"
// @Param        estado_detraccion  query  string  false  "Estado de detracción"
// @Param        prioridad  query  string  false  "Prioridad"  Enums(Baja, Media, Alta, Urgente)
// @Param        numero_factura  query  string  false  "Número legal (contiene)"
// @Param        codigo_factura  query  string  false  "Código interno de factura"
// @Param        cliente  query  string  false  "Cliente del snapshot (contiene)"
// @Param        fecha_probable_pago_desde  query  string  false  "Fecha probable de pago desde (YYYY-MM-DD)"
// @Param        fecha_probable_pago_hasta  query  string  false  "Fecha probable de pago hasta (YYYY-MM-DD)"
// @Param        limit  query  int  false  "Límite (máx. 100)"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.GestionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturacion-gestion [get]
func (h *GestionHandler) List(c *fiber.Ctx) error {
	var in dto.GestionListRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	page, done, err := parsePage(c)
	if done {
		return err
	}
	out, err := h.uc.List(c.Context(), in, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportExcel descarga las gestiones filtradas como .xlsx.
// @Summary      Exportar gestiones a Excel
// @Tags         facturacion-gestion
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        estado_pago_neto  query  string  false  "Estado de cobro"
// @Param        estado_detraccion  query  string  false  "Estado de detracción"
// @Param        prioridad  query  string  false  "Prioridad"  Enums(Baja, Media, Alta, Urgente)
// @Param        numero_factura  query  string  false  "Número legal (contiene)"
// @Param        codigo_factura  query  string  false  "Código interno de factura"
// @Param        cliente  query  string  false  "Cliente del snapshot (contiene)"
// @Param        fecha_probable_pago_desde  query  string  false  "Fecha probable de pago desde (YYYY-MM-DD)"
// @Param        fecha_probable_pago_hasta  query  string  false  "Fecha probable de pago hasta (YYYY-MM-DD)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturacion-gestion/export/excel [get]
func (h *GestionHandler) ExportExcel(c *fiber.Ctx) error {
	var in dto.GestionListRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	data, filename, err := h.uc.Export(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimeXLSX, filename, data)
}

// MarcarVencidas pasa a Vencido las gestiones con fecha probable de pago anterior a hoy.
// @Summary      Marcar gestiones vencidas
// @Tags         facturacion-gestion
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarcarVencidasResponse
// @Router       /api/facturacion-gestion/marcar-vencidas [post]
func (h *GestionHandler) MarcarVencidas(c *fiber.Ctx) error {
	out, err := h.uc.MarkOverdueBatch(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una gestión.
// @Summary      Obtener gestión por ID
// @Tags         facturacion-gestion
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la gestión"
// @Success      200  {object}  dto.GestionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturacion-gestion/{id} [get]
func (h *GestionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update aplica cambios parciales. Anular exige rol admin o facturacion.
// @Summary      Actualizar gestión (anular exige admin o facturacion)
// @Tags         facturacion-gestion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID de la gestión"
// @Param        body  body  dto.UpdateGestionRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.GestionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/facturacion-gestion/{id} [put]
func (h *GestionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateGestionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	if in.EstadoPagoNeto != nil && *in.EstadoPagoNeto == string(entity.EstadoPagoAnulado) &&
		!HasRole(c, RoleAdmin, RoleFacturacion) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para anular"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PagoParcial registra un abono.
// @Summary      Registrar pago parcial
// @Tags         facturacion-gestion
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la gestión"
// @Param        monto_pago  query  number  true  "Monto del abono"
// @Param        nro_operacion  query  string  false  "Número de operación bancaria"
// @Success      200  {object}  dto.GestionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/facturacion-gestion/{id}/pago-parcial [post]
func (h *GestionHandler) PagoParcial(c *fiber.Ctx) error {
	var in dto.PagoParcialRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	out, err := h.uc.PostPartialPayment(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
