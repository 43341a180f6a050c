package proveedores

import (
	"errors"
	"strings"

	"proveedores-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type ProveedorRequest struct {
	Nombre string `json:"nombre"`
}

type ProveedorResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

// ListarProveedores consulta todos los proveedores ordenados por nombre.
// Lo comparten los handlers de artículos, descuentos y dólar para el
// dropdown de proveedores.
func ListarProveedores(db *gorm.DB) ([]ProveedorResponse, error) {
	var provs []models.Proveedor
	if err := db.Order("nombre_proveedor asc").Find(&provs).Error; err != nil {
		return nil, err
	}
	resp := make([]ProveedorResponse, 0, len(provs))
	for _, p := range provs {
		resp = append(resp, ProveedorResponse{ID: p.ID, Nombre: p.Nombre})
	}
	return resp, nil
}

// GET /api/proveedores/listar
func ListarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provs, err := ListarProveedores(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}
		return c.JSON(fiber.Map{"proveedores": provs})
	}
}

// POST /api/proveedores/crear
func CrearHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		nombre := strings.TrimSpace(body.Nombre)
		if nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es requerido")
		}

		// El id lo genera la base de datos
		prov := models.Proveedor{Nombre: nombre}
		if err := db.Create(&prov).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el proveedor")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"id":      prov.ID,
		})
	}
}

// PUT /api/proveedores/:id/actualizar
func ActualizarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		var body ProveedorRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		nombre := strings.TrimSpace(body.Nombre)
		if nombre == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El nombre es requerido")
		}

		var prov models.Proveedor
		if err := db.First(&prov, "id_proveedor = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el proveedor")
		}

		prov.Nombre = nombre
		if err := db.Save(&prov).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el proveedor")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}

// DELETE /api/proveedores/:id/eliminar
// El chequeo de artículos asociados y el borrado van en una misma
// transacción para que no entre un artículo nuevo entre medio.
func EliminarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identificador inválido")
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var prov models.Proveedor
			if err := tx.First(&prov, "id_proveedor = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Proveedor no encontrado")
				}
				return err
			}

			var cantidad int64
			if err := tx.Model(&models.Articulo{}).Where("id_proveedor = ?", id).Count(&cantidad).Error; err != nil {
				return err
			}
			if cantidad > 0 {
				return fiber.NewError(fiber.StatusBadRequest, "No se puede eliminar: el proveedor tiene artículos asociados")
			}

			return tx.Delete(&prov).Error
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el proveedor")
		}

		return c.JSON(fiber.Map{"success": true})
	}
}
