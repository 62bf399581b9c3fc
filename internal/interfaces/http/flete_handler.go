package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/application/fletes"
)

// FleteHandler maneja las peticiones HTTP de fletes.
type FleteHandler struct {
	uc *fletes.FleteUseCase
}

// NewFleteHandler construye el handler.
func NewFleteHandler(uc *fletes.FleteUseCase) *FleteHandler {
	return &FleteHandler{uc: uc}
}

// Create crea un flete PENDIENTE para un servicio.
// @Summary      Crear flete PENDIENTE para un servicio
// @Tags         fletes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFleteRequest  true  "Servicio del flete"
// @Success      201  {object}  dto.FleteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/fletes [post]
func (h *FleteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFleteRequest
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

// List lista fletes con filtros y paginación.
// @Summary      Listar fletes
// @Tags         fletes
// @Security     Bearer
// @Produce      json
// @Param        codigo_flete  query  string  false  "Código de flete (contiene)"
// @Param        servicio_id  query  string  false  "ID del servicio"
// @Param        estado_flete  query  string  false  "Estado"  Enums(PENDIENTE, VALORIZADO, CANCELADO)
// @Param        pertenece_a_factura  query  boolean  false  "Vinculado a una factura"
// @Param        codigo_factura  query  string  false  "Código interno de factura"
// @Param        monto_min  query  number  false  "Monto mínimo"
// @Param        monto_max  query  number  false  "Monto máximo"
// @Param        fecha_desde  query  string  false  "Creación desde (YYYY-MM-DD)"
// @Param        fecha_hasta  query  string  false  "Creación hasta (YYYY-MM-DD)"
// @Param        limit  query  int  false  "Límite (máx. 100)"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.FleteListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/fletes [get]
func (h *FleteHandler) List(c *fiber.Ctx) error {
	var in dto.FleteListRequest
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

// GetByID obtiene un flete.
// @Summary      Obtener flete por ID
// @Tags         fletes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del flete"
// @Success      200  {object}  dto.FleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fletes/{id} [get]
func (h *FleteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateMonto valoriza un flete.
// @Summary      Valorizar flete
// @Tags         fletes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del flete"
// @Param        body  body  dto.UpdateMontoFleteRequest  true  "Monto del flete"
// @Success      200  {object}  dto.FleteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fletes/{id}/monto [patch]
func (h *FleteHandler) UpdateMonto(c *fiber.Ctx) error {
	var in dto.UpdateMontoFleteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetMonto(c.Context(), c.Params("id"), in.MontoFlete)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un flete libre y cancela su servicio.
// @Summary      Eliminar flete libre (admin, facturacion)
// @Tags         fletes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del flete"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fletes/{id} [delete]
func (h *FleteHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DeleteResponse{ID: id, Deleted: true})
}

// parsePage lee limit/offset. Devuelve done=true si ya se respondió con error.
func parsePage(c *fiber.Ctx) (dto.PageRequest, bool, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, true, badQuery(c)
	}
	page.DefaultPage()
	if done, err := validateStruct(c, page); done {
		return page, true, err
	}
	return page, false, nil
}
