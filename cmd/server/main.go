package main

import (
	"errors"
	stdlog "log"
	"strings"

	"proveedores-backend/internal/articulos"
	"proveedores-backend/internal/config"
	"proveedores-backend/internal/database"
	"proveedores-backend/internal/descuentos"
	"proveedores-backend/internal/dolar"
	"proveedores-backend/internal/logger"
	"proveedores-backend/internal/proveedores"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("no se pudo inicializar el logger: %v", err)
	}
	defer log.Sync()

	for _, aviso := range cfg.Warnings() {
		log.Warn(aviso)
	}

	db, err := database.Init(cfg, log)
	if err != nil {
		log.Fatal("error inicializando la base de datos", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(log),
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	registerRoutes(app, db)

	log.Info("servidor escuchando", zap.String("puerto", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("el servidor terminó con error", zap.Error(err))
	}
}

// errorHandler centraliza la respuesta de error: los *fiber.Error salen con
// su código y mensaje, cualquier otra cosa se loguea con detalle del lado
// del servidor y al cliente le llega un 500 genérico.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		log.Error("error inesperado",
			zap.String("metodo", c.Method()),
			zap.String("ruta", c.Path()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error interno del servidor",
		})
	}
}

func registerRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	// Proveedores
	prov := api.Group("/proveedores")
	prov.Get("/listar", proveedores.ListarHandler(db))
	prov.Post("/crear", proveedores.CrearHandler(db))
	prov.Put("/:id/actualizar", proveedores.ActualizarHandler(db))
	prov.Delete("/:id/eliminar", proveedores.EliminarHandler(db))

	// Artículos
	art := api.Group("/articulos")
	art.Get("/listar", articulos.ListarHandler(db))
	art.Post("/crear", articulos.CrearHandler(db))
	art.Get("/exportar", articulos.ExportarHandler(db))

	// Descuentos
	desc := api.Group("/descuentos")
	desc.Get("/listar", descuentos.ListarHandler(db))
	desc.Put("/actualizar/:id_proveedor", descuentos.ActualizarHandler(db))

	// Dólar
	dol := api.Group("/dolar")
	dol.Get("/listar", dolar.ListarHandler(db))
	dol.Post("/cargar/:id_proveedor", dolar.CargarProveedorHandler(db))
	dol.Post("/oficial/cargar", dolar.CargarOficialHandler(db))
	dol.Delete("/oficial/:fecha/eliminar", dolar.EliminarOficialHandler(db))

	// Las páginas del sistema original se sirven como JSON
	app.Get("/articulos", articulos.ListarHandler(db))
	app.Get("/descuentos", descuentos.ListarHandler(db))
	app.Get("/dolar", dolar.ListarHandler(db))
}
