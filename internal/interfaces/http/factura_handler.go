package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fletes-api/internal/application/billing"
	"github.com/jhoicas/fletes-api/internal/application/dto"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// FacturaHandler maneja las peticiones HTTP de facturas.
type FacturaHandler struct {
	uc    *billing.FacturaUseCase
	pdfUC *billing.PDFUseCase
}

// NewFacturaHandler construye el handler.
func NewFacturaHandler(uc *billing.FacturaUseCase, pdfUC *billing.PDFUseCase) *FacturaHandler {
	return &FacturaHandler{uc: uc, pdfUC: pdfUC}
}

// Create crea una factura en Borrador y vincula sus fletes.
// @Summary      Crear factura en Borrador
// @Tags         facturas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFacturaRequest  true  "Fletes y datos de la factura"
// @Success      201  {object}  dto.FacturaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturas [post]
func (h *FacturaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFacturaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista facturas con filtros y paginación.
// @Summary      Listar facturas
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        numero_factura  query  string  false  "Número legal (contiene)"
// @Param        estado  query  string  false  "Estado"  Enums(Borrador, Emitida, Pagada, Vencida, Anulada, Parcial)
// @Param        moneda  query  string  false  "Código ISO de moneda"
// @Param        es_borrador  query  boolean  false  "Solo borradores / solo emitidas"
// @Param        periodo  query  string  false  "Periodo relativo sobre fecha de emisión"  Enums(hoy, semana, mes, año)
// @Param        fecha_emision_desde  query  string  false  "Emisión desde (YYYY-MM-DD)"
// @Param        fecha_emision_hasta  query  string  false  "Emisión hasta (YYYY-MM-DD)"
// @Param        fecha_vencimiento_desde  query  string  false  "Vencimiento desde (YYYY-MM-DD)"
// @Param        fecha_vencimiento_hasta  query  string  false  "Vencimiento hasta (YYYY-MM-DD)"
// @Param        fecha_pago_desde  query  string  false  "Pago desde (YYYY-MM-DD)"
// @Param        fecha_pago_hasta  query  string  false  "Pago hasta (YYYY-MM-DD)"
// @Param        monto_min  query  number  false  "Monto mínimo"
// @Param        monto_max  query  number  false  "Monto máximo"
// @Param        flete_id  query  string  false  "Contiene el flete"
// @Param        cliente  query  string  false  "Cliente del snapshot (contiene)"
// @Param        limit  query  int  false  "Límite (máx. 100)"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.FacturaListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturas [get]
func (h *FacturaHandler) List(c *fiber.Ctx) error {
	var in dto.FacturaListRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	page, done, err := parsePage(c)
	if done {
		return err
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	out, err := h.uc.List(c.Context(), in, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportExcel descarga las facturas filtradas como .xlsx.
// @Summary      Exportar facturas a Excel
// @Tags         facturas
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        numero_factura  query  string  false  "Número legal (contiene)"
// @Param        estado  query  string  false  "Estado"  Enums(Borrador, Emitida, Pagada, Vencida, Anulada, Parcial)
// @Param        moneda  query  string  false  "Código ISO de moneda"
// @Param        es_borrador  query  boolean  false  "Solo borradores / solo emitidas"
// @Param        periodo  query  string  false  "Periodo relativo sobre fecha de emisión"  Enums(hoy, semana, mes, año)
// @Param        fecha_emision_desde  query  string  false  "Emisión desde (YYYY-MM-DD)"
// @Param        fecha_emision_hasta  query  string  false  "Emisión hasta (YYYY-MM-DD)"
// @Param        fecha_vencimiento_desde  query  string  false  "Vencimiento desde (YYYY-MM-DD)"
// @Param        fecha_vencimiento_hasta  query  string  false  "Vencimiento hasta (YYYY-MM-DD)"
// @Param        fecha_pago_desde  query  string  false  "Pago desde (YYYY-MM-DD)"
// @Param        fecha_pago_hasta  query  string  false  "Pago hasta (YYYY-MM-DD)"
// @Param        monto_min  query  number  false  "Monto mínimo"
// @Param        monto_max  query  number  false  "Monto máximo"
// @Param        flete_id  query  string  false  "Contiene el flete"
// @Param        cliente  query  string  false  "Cliente del snapshot (contiene)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facturas/export/excel [get]
func (h *FacturaHandler) ExportExcel(c *fiber.Ctx) error {
	var in dto.FacturaListRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	data, filename, err := h.uc.Export(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimeXLSX, filename, data)
}

// GetByNumero busca por número legal.
// @Summary      Obtener factura por número legal
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        numero  path  string  true  "Número legal"
// @Success      200  {object}  dto.FacturaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/numero/{numero} [get]
func (h *FacturaHandler) GetByNumero(c *fiber.Ctx) error {
	out, err := h.uc.GetByNumero(c.Context(), c.Params("numero"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una factura.
// @Summary      Obtener factura por ID
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.FacturaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [get]
func (h *FacturaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF representación impresa de una factura emitida.
// @Summary      Descargar PDF de la factura emitida
// @Tags         facturas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/pdf [get]
func (h *FacturaHandler) DownloadPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfUC.DownloadFacturaPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimePDF, filename, data)
}

// Emitir asigna número legal, congela el snapshot y crea la gestión.
// @Summary      Emitir factura
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Param        numero_factura  query  string  true  "Número legal"
// @Param        fecha_emision  query  string  false  "YYYY-MM-DD; por defecto hoy"
// @Param        fecha_vencimiento  query  string  false  "YYYY-MM-DD; por defecto emisión + días de crédito"
// @Success      200  {object}  dto.FacturaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/emitir [post]
func (h *FacturaHandler) Emitir(c *fiber.Ctx) error {
	var in dto.EmitirFacturaRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	if done, err := validateStruct(c, in); done {
		return err
	}
	out, err := h.uc.Issue(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarcarPagada liquida la factura y su gestión.
// @Summary      Marcar factura como pagada
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Param        fecha_pago  query  string  false  "YYYY-MM-DD; por defecto hoy"
// @Success      200  {object}  dto.FacturaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id}/marcar-pagada [patch]
func (h *FacturaHandler) MarcarPagada(c *fiber.Ctx) error {
	var in dto.MarcarPagadaRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.MarkPaid(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina la factura y libera sus fletes.
// @Summary      Eliminar factura y liberar sus fletes (admin, facturacion)
// @Tags         facturas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facturas/{id} [delete]
func (h *FacturaHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DeleteResponse{ID: id, Deleted: true})
}

func sendFile(c *fiber.Ctx, contentType, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
