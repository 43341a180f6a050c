package dolar

import (
	"errors"
	"strings"
	"time"

	"proveedores-backend/internal/models"
	"proveedores-backend/internal/proveedores"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// -------------------------
// Request/Response Types
// -------------------------

type CargarDolarRequest struct {
	Valor *decimal.Decimal `json:"valor"`
}

type CargarDolarOficialRequest struct {
	Valor *decimal.Decimal `json:"valor"`
	Fecha string           `json:"fecha"`
}

type DolarProveedorResponse struct {
	ProveedorID         uint            `json:"id_proveedor"`
	Proveedor           string          `json:"proveedor"`
	Valor               decimal.Decimal `json:"valor"`
	Fecha               string          `json:"fecha"`
	UltimaActualizacion string          `json:"ultima_actualizacion"`
}

type DolarOficialResponse struct {
	Valor decimal.Decimal `json:"valor"`
	Fecha string          `json:"fecha"`
}

type dolarProveedorFila struct {
	ProveedorID         uint
	Proveedor           string
	Valor               decimal.Decimal
	Fecha               time.Time
	UltimaActualizacion time.Time
}

const formatoFecha = "2006-01-02"

// fechaDia normaliza un instante al día calendario en UTC. Las claves de
// histórico se comparan siempre con esta forma.
func fechaDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GET /api/dolar/listar (también montado en GET /dolar)
// Tres listas independientes: cotizaciones por proveedor, cotización
// oficial y proveedores para el dropdown.
func ListarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filas []dolarProveedorFila
		err := db.Table("dolar_proveedor").
			Select("dolar_proveedor.id_proveedor AS proveedor_id, proveedores.nombre_proveedor AS proveedor, dolar_proveedor.dolar_proveedor AS valor, dolar_proveedor.fecha, dolar_proveedor.ultima_actualizacion").
			Joins("INNER JOIN proveedores ON proveedores.id_proveedor = dolar_proveedor.id_proveedor").
			Order("proveedores.nombre_proveedor asc, dolar_proveedor.fecha desc").
			Scan(&filas).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el dólar por proveedor")
		}

		porProveedor := make([]DolarProveedorResponse, 0, len(filas))
		for _, d := range filas {
			porProveedor = append(porProveedor, DolarProveedorResponse{
				ProveedorID:         d.ProveedorID,
				Proveedor:           d.Proveedor,
				Valor:               d.Valor,
				Fecha:               d.Fecha.Format(formatoFecha),
				UltimaActualizacion: d.UltimaActualizacion.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		var oficiales []models.DolarOficial
		if err := db.Order("fecha desc").Find(&oficiales).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el dólar oficial")
		}
		oficial := make([]DolarOficialResponse, 0, len(oficiales))
		for _, o := range oficiales {
			oficial = append(oficial, DolarOficialResponse{
				Valor: o.TipoCambio,
				Fecha: o.Fecha.Format(formatoFecha),
			})
		}

		provs, err := proveedores.ListarProveedores(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}

		return c.JSON(fiber.Map{
			"dolar_proveedor": porProveedor,
			"dolar_oficial":   oficial,
			"proveedores":     provs,
		})
	}
}

// POST /api/dolar/cargar/:id_proveedor
// Histórico por día: upsert con clave (id_proveedor, fecha). Recargar el
// mismo día pisa el valor del día, los días anteriores quedan.
func CargarProveedorHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id_proveedor")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var body CargarDolarRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if body.Valor == nil {
			return fiber.NewError(fiber.StatusBadRequest, "El valor es requerido")
		}
		if !body.Valor.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "El valor debe ser positivo")
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var prov models.Proveedor
			if err := tx.First(&prov, "id_proveedor = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
				}
				return err
			}

			ahora := time.Now()
			registro := models.DolarProveedor{
				ProveedorID:         uint(id),
				Valor:               *body.Valor,
				Fecha:               fechaDia(ahora),
				UltimaActualizacion: ahora,
			}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id_proveedor"}, {Name: "fecha"}},
				DoUpdates: clause.AssignmentColumns([]string{"dolar_proveedor", "ultima_actualizacion"}),
			}).Create(&registro).Error
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el dólar")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	}
}

// POST /api/dolar/oficial/cargar
// Upsert atómico con clave por fecha.
func CargarOficialHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CargarDolarOficialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if body.Valor == nil {
			return fiber.NewError(fiber.StatusBadRequest, "El valor es requerido")
		}
		if !body.Valor.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "El valor debe ser positivo")
		}
		if strings.TrimSpace(body.Fecha) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha es requerida")
		}
		fecha, err := time.ParseInLocation(formatoFecha, strings.TrimSpace(body.Fecha), time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, formato esperado AAAA-MM-DD")
		}

		registro := models.DolarOficial{
			Fecha:      fecha,
			TipoCambio: *body.Valor,
		}
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fecha"}},
			DoUpdates: clause.AssignmentColumns([]string{"tipo_cambio"}),
		}).Create(&registro).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el dólar oficial")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/dolar/oficial/:fecha/eliminar
func EliminarOficialHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fecha, err := time.ParseInLocation(formatoFecha, c.Params("fecha"), time.UTC)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, formato esperado AAAA-MM-DD")
		}

		res := db.Where("fecha = ?", fecha).Delete(&models.DolarOficial{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar la cotización")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "No existe cotización para esa fecha")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
