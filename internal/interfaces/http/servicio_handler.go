package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fletes-api/internal/application/fletes"
)

// ServicioHandler transiciones del servicio de transporte.
type ServicioHandler struct {
	uc *fletes.ServicioUseCase
}

// NewServicioHandler construye el handler.
func NewServicioHandler(uc *fletes.ServicioUseCase) *ServicioHandler {
	return &ServicioHandler{uc: uc}
}

// Completar marca el servicio como Completado y crea su flete si no tiene.
// @Summary      Completar servicio y crear su flete
// @Tags         servicios
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del servicio"
// @Success      200  {object}  dto.CompletarServicioResponse
// @Success      201  {object}  dto.CompletarServicioResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/servicios/{id}/completar [post]
func (h *ServicioHandler) Completar(c *fiber.Ctx) error {
	out, err := h.uc.Completar(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if out.FleteCreado {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}
