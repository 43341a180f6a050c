package descuentos

import (
	"errors"
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

type ActualizarDescuentosRequest struct {
	Descuento1    *decimal.Decimal `json:"descuento_1"`
	Descuento2    *decimal.Decimal `json:"descuento_2"`
	PagoContado   *decimal.Decimal `json:"pago_contado"`
	DtoFinanciero *decimal.Decimal `json:"dto_financiero"`
}

type DescuentoResponse struct {
	ProveedorID   uint            `json:"id_proveedor"`
	Proveedor     string          `json:"proveedor"`
	Descuento1    decimal.Decimal `json:"descuento_1"`
	Descuento2    decimal.Decimal `json:"descuento_2"`
	PagoContado   decimal.Decimal `json:"pago_contado"`
	DtoFinanciero decimal.Decimal `json:"dto_financiero"`
	Fecha         string          `json:"fecha"`
}

type descuentoFila struct {
	ProveedorID       uint
	Proveedor         string
	Descuento1        decimal.Decimal `gorm:"column:descuento_1"`
	Descuento2        decimal.Decimal `gorm:"column:descuento_2"`
	PagoContado       decimal.Decimal
	DtoFinanciero     decimal.Decimal
	FechaModificacion time.Time
}

// GET /api/descuentos/listar (también montado en GET /descuentos)
func ListarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filas []descuentoFila
		err := db.Table("descuentos_proveedor").
			Select("descuentos_proveedor.id_proveedor AS proveedor_id, proveedores.nombre_proveedor AS proveedor, descuentos_proveedor.descuento_1, descuentos_proveedor.descuento_2, descuentos_proveedor.pago_contado, descuentos_proveedor.dto_financiero, descuentos_proveedor.fecha_modificacion").
			Joins("INNER JOIN proveedores ON proveedores.id_proveedor = descuentos_proveedor.id_proveedor").
			Order("proveedores.nombre_proveedor asc").
			Scan(&filas).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los descuentos")
		}

		resp := make([]DescuentoResponse, 0, len(filas))
		for _, d := range filas {
			resp = append(resp, DescuentoResponse{
				ProveedorID:   d.ProveedorID,
				Proveedor:     d.Proveedor,
				Descuento1:    d.Descuento1,
				Descuento2:    d.Descuento2,
				PagoContado:   d.PagoContado,
				DtoFinanciero: d.DtoFinanciero,
				Fecha:         d.FechaModificacion.Format("2006-01-02T15:04:05Z07:00"),
			})
		}

		provs, err := proveedores.ListarProveedores(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}

		return c.JSON(fiber.Map{
			"descuentos":  resp,
			"proveedores": provs,
		})
	}
}

// PUT /api/descuentos/actualizar/:id_proveedor
// Upsert atómico: una sola sentencia con ON CONFLICT sobre id_proveedor,
// dos llamadas concurrentes para el mismo proveedor nunca dejan dos filas.
func ActualizarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id_proveedor")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var body ActualizarDescuentosRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}
		if body.Descuento1 == nil || body.Descuento2 == nil || body.PagoContado == nil || body.DtoFinanciero == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Los cuatro descuentos son requeridos")
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var prov models.Proveedor
			if err := tx.First(&prov, "id_proveedor = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
				}
				return err
			}

			desc := models.DescuentoProveedor{
				ProveedorID:       uint(id),
				Descuento1:        *body.Descuento1,
				Descuento2:        *body.Descuento2,
				PagoContado:       *body.PagoContado,
				DtoFinanciero:     *body.DtoFinanciero,
				FechaModificacion: time.Now(),
			}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id_proveedor"}},
				DoUpdates: clause.AssignmentColumns([]string{"descuento_1", "descuento_2", "pago_contado", "dto_financiero", "fecha_modificacion"}),
			}).Create(&desc).Error
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron actualizar los descuentos")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
