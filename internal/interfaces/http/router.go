package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/fletes-api/internal/application/analytics"
	"github.com/jhoicas/fletes-api/internal/application/billing"
	"github.com/jhoicas/fletes-api/internal/application/fletes"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	FleteUC     *fletes.FleteUseCase
	ServicioUC  *fletes.ServicioUseCase
	FacturaUC   *billing.FacturaUseCase
	GestionUC   *billing.GestionUseCase
	FacturaPDF  *billing.PDFUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API. Todo /api exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	destructive := RequireRole(RoleAdmin, RoleFacturacion)

	// Fletes
	fleteHandler := NewFleteHandler(deps.FleteUC)
	fletesGroup := api.Group("/fletes")
	fletesGroup.Post("/", fleteHandler.Create)
	fletesGroup.Get("/", fleteHandler.List)
	fletesGroup.Get("/:id", fleteHandler.GetByID)
	fletesGroup.Patch("/:id/monto", fleteHandler.UpdateMonto)
	fletesGroup.Delete("/:id", destructive, fleteHandler.Delete)

	// Servicios
	servicioHandler := NewServicioHandler(deps.ServicioUC)
	api.Post("/servicios/:id/completar", servicioHandler.Completar)

	// Facturas: rutas estáticas antes de /:id
	facturaHandler := NewFacturaHandler(deps.FacturaUC, deps.FacturaPDF)
	facturas := api.Group("/facturas")
	facturas.Post("/", facturaHandler.Create)
	facturas.Get("/", facturaHandler.List)
	facturas.Get("/export/excel", facturaHandler.ExportExcel)
	facturas.Get("/numero/:numero", facturaHandler.GetByNumero)
	facturas.Get("/:id", facturaHandler.GetByID)
	facturas.Get("/:id/pdf", facturaHandler.DownloadPDF)
	facturas.Post("/:id/emitir", facturaHandler.Emitir)
	facturas.Patch("/:id/marcar-pagada", facturaHandler.MarcarPagada)
	facturas.Delete("/:id", destructive, facturaHandler.Delete)

	// Gestión de cobranza y reportes
	gestionHandler := NewGestionHandler(deps.GestionUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	gestion := api.Group("/facturacion-gestion")
	gestion.Post("/", gestionHandler.Create)
	gestion.Get("/", gestionHandler.List)
	gestion.Get("/export/excel", gestionHandler.ExportExcel)
	gestion.Get("/dashboard/estadisticas", dashboardHandler.GetEstadisticas)
	gestion.Get("/resumen/:dimension", dashboardHandler.GetResumen)
	gestion.Get("/tendencia", dashboardHandler.GetTendencia)
	gestion.Post("/marcar-vencidas", gestionHandler.MarcarVencidas)
	gestion.Get("/:id", gestionHandler.GetByID)
	gestion.Put("/:id", gestionHandler.Update)
	gestion.Post("/:id/pago-parcial", gestionHandler.PagoParcial)
}
